package utils

import (
	"errors"
	"io"
	"os"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseEnabled reports whether the bucket-backed picture storage is
// configured. When it is not, pictures live on the local disk.
func SupabaseEnabled() bool {
	return os.Getenv("SUPABASE_URL") != ""
}

// SupabaseStorage initializes the storage client and bucket name
func SupabaseStorage() (*storage_go.Client, string, error) {
	projectURL := os.Getenv("SUPABASE_URL")
	projectSecretAPIKey := os.Getenv("SUPABASE_KEY")
	bucketName := os.Getenv("BUCKET_NAME")

	if projectURL == "" || projectSecretAPIKey == "" || bucketName == "" {
		return nil, "", errors.New("missing SUPABASE_URL, SUPABASE_KEY, or BUCKET_NAME in environment variables")
	}

	storageClient := storage_go.NewClient(projectURL+"/storage/v1", projectSecretAPIKey, nil)
	return storageClient, bucketName, nil
}

// UploadToSupabaseStorage uploads a file to Supabase storage and returns
// its public URL.
func UploadToSupabaseStorage(path, contentType string, body io.Reader) (string, error) {
	storageClient, bucketName, err := SupabaseStorage()
	if err != nil {
		return "", err
	}

	_, err = storageClient.UploadFile(bucketName, path, body, storage_go.FileOptions{ContentType: &contentType})
	if err != nil {
		return "", err
	}

	response := storageClient.GetPublicUrl(bucketName, path)
	return response.SignedURL, nil
}
