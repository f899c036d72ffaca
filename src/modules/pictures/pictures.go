package pictures

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/png"

	"github.com/DaniPVargas/Wearvana/src/core/config"
	"github.com/DaniPVargas/Wearvana/src/core/helpers"
	"github.com/DaniPVargas/Wearvana/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Upload normalizes the uploaded image to JPEG and stores it, returning
// the public URL the client should reference in posts and searches.
func Upload(c *fiber.Ctx) error {
	userID := c.Params("user_id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, helpers.KindValidationError, "Missing file upload", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, helpers.KindInternalError, "Failed to open upload", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, helpers.KindValidationError, "Unsupported image format", err)
	}

	pictureID := uuid.NewString()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, helpers.KindInternalError, "Failed to encode image", err)
	}

	var imageURL string
	if utils.SupabaseEnabled() {
		path := fmt.Sprintf("%s/%s.jpg", userID, pictureID)
		imageURL, err = utils.UploadToSupabaseStorage(path, "image/jpeg", &buf)
		if err != nil {
			return helpers.HandleError(c, fiber.StatusInternalServerError, helpers.KindInternalError, "Failed to upload image", err)
		}
	} else {
		dir := filepath.Join(config.Config("PICTURES_DIR"), userID)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return helpers.HandleError(c, fiber.StatusInternalServerError, helpers.KindInternalError, "Failed to create picture directory", err)
		}
		if err := os.WriteFile(filepath.Join(dir, pictureID+".jpg"), buf.Bytes(), 0o644); err != nil {
			return helpers.HandleError(c, fiber.StatusInternalServerError, helpers.KindInternalError, "Failed to store image", err)
		}
		imageURL = fmt.Sprintf("%s/pictures/%s/%s", config.Config("PUBLIC_BASE_URL"), userID, pictureID)
	}

	return helpers.HandleSuccess(c, fiber.StatusCreated, "Image uploaded successfully", fiber.Map{
		"image_url": imageURL,
	})
}

// Serve returns a locally stored picture as JPEG.
func Serve(c *fiber.Ctx) error {
	// Base strips any path separators smuggled in through the params.
	userID := filepath.Base(c.Params("user_id"))
	pictureID := filepath.Base(c.Params("picture_id"))

	path := filepath.Join(config.Config("PICTURES_DIR"), userID, pictureID+".jpg")
	if _, err := os.Stat(path); err != nil {
		return helpers.HandleError(c, fiber.StatusNotFound, helpers.KindNotFound, "Picture not found", err)
	}

	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.SendFile(path)
}
