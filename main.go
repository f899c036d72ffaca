package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/DaniPVargas/Wearvana/src/core/catalog"
	"github.com/DaniPVargas/Wearvana/src/core/config"
	"github.com/DaniPVargas/Wearvana/src/core/database"
	"github.com/DaniPVargas/Wearvana/src/core/passwordless"
	"github.com/DaniPVargas/Wearvana/src/core/router"
	"github.com/DaniPVargas/Wearvana/src/modules/authentication"
	"github.com/DaniPVargas/Wearvana/src/modules/clothing"
	"github.com/DaniPVargas/Wearvana/src/modules/users"
)

func main() {
	// Initialize the Fiber app
	app := fiber.New()

	// Middleware
	app.Use(recover.New())   // Recover middleware to handle panics
	app.Use(cors.New())      // CORS middleware for cross-origin requests
	app.Use(requestid.New()) // Middleware to generate unique request IDs

	// Setup and validate environment variables
	config.SetupEnv()

	// Connect to the database
	database.ConnectDB()

	// Upstream clients
	tokens := catalog.NewTokenSource(
		config.Config("INDITEX_TOKEN_URL"),
		config.Config("INDITEX_CLIENT_ID"),
		config.Config("INDITEX_CLIENT_PASSWORD"),
	)
	catalogClient := catalog.NewClient(
		tokens,
		config.Config("INDITEX_TEXT_SEARCH_URL"),
		config.Config("INDITEX_IMAGE_SEARCH_URL"),
	)
	pwlessClient := passwordless.NewClient(
		config.Config("PASSWORDLESS_API_URL"),
		config.Config("PASSWORDLESS_DEV_SECRET"),
	)

	// Set up routes
	router.InitialiseAndSetupRoutes(app, router.Handlers{
		Auth:     authentication.NewHandler(pwlessClient),
		Users:    users.NewHandler(pwlessClient),
		Clothing: clothing.NewHandler(catalogClient),
	})

	// Get port from config and start the server
	port := config.Config("APP_PORT")
	log.Fatal(app.Listen(fmt.Sprintf(":%s", port)))
}
