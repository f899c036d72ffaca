package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Every key the service cannot run without. Checked once at startup so a
// missing credential fails the deploy instead of the first request.
var requiredKeys = []string{
	"APP_PORT",
	"DB_HOST",
	"DB_PORT",
	"DB_USER",
	"DB_PASSWORD",
	"DB_NAME",
	"PICTURES_DIR",
	"PUBLIC_BASE_URL",
	"INDITEX_TOKEN_URL",
	"INDITEX_TEXT_SEARCH_URL",
	"INDITEX_IMAGE_SEARCH_URL",
	"INDITEX_CLIENT_ID",
	"INDITEX_CLIENT_PASSWORD",
	"PASSWORDLESS_API_URL",
	"PASSWORDLESS_DEV_SECRET",
	"JWT_SECRET",
}

func SetupEnv() {
	// .env is optional on the hosting platform, where variables come from
	// the dashboard instead.
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using process environment")
	}

	var missing []string
	for _, key := range requiredKeys {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		log.Fatalf("Missing required environment variables: %v", missing)
	}
}

// Config returns the environment variable or defaults to empty string
func Config(key string) string {
	return os.Getenv(key)
}
