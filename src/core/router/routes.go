package router

import (
	"fmt"
	"sort"

	"github.com/DaniPVargas/Wearvana/src/core/middleware"
	"github.com/DaniPVargas/Wearvana/src/modules/authentication"
	"github.com/DaniPVargas/Wearvana/src/modules/clothing"
	connection "github.com/DaniPVargas/Wearvana/src/modules/connections"
	"github.com/DaniPVargas/Wearvana/src/modules/feed"
	"github.com/DaniPVargas/Wearvana/src/modules/pictures"
	"github.com/DaniPVargas/Wearvana/src/modules/posts"
	"github.com/DaniPVargas/Wearvana/src/modules/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// Handlers carries the stateful handlers; the rest of the modules expose
// package-level handler functions.
type Handlers struct {
	Auth     *authentication.Handler
	Users    *users.Handler
	Clothing *clothing.Handler
}

func InitialiseAndSetupRoutes(app *fiber.App, h Handlers) {
	root := app.Group("/", logger.New())

	root.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	// Authentication
	root.Post("/auth", h.Auth.Authenticate)

	// Users
	userGroup := root.Group("/users")
	userGroup.Get("/", h.Users.List)
	userGroup.Post("/", h.Users.Create)
	userGroup.Get("/:user_id", h.Users.Get)
	userGroup.Patch("/:user_id", middleware.Protected(), h.Users.Update)

	// Posts and feed
	userGroup.Get("/:user_id/posts", posts.ListUserPosts)
	userGroup.Post("/:user_id/posts", middleware.Protected(), posts.CreatePost)
	userGroup.Get("/:user_id/feed", middleware.Protected(), feed.FetchFeed)

	// Relationships
	userGroup.Get("/:user_id/followed", connection.GetFollowed)
	userGroup.Post("/:user_id/followed", middleware.Protected(), connection.Follow)
	userGroup.Get("/:user_id/followers", connection.GetFollowers)

	// Pictures
	userGroup.Post("/:user_id/pictures", middleware.Protected(), pictures.Upload)
	root.Get("/pictures/:user_id/:picture_id", pictures.Serve)

	// Catalog search (":" in the verb suffix is escaped for the router)
	root.Post("/clothing\\:text_search", middleware.Protected(), h.Clothing.TextSearch)
	root.Post("/clothing\\:image_search", middleware.Protected(), h.Clothing.ImageSearch)

	routes := app.GetRoutes()
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})
	for _, route := range routes {
		fmt.Printf("%s\t%s\n", route.Method, route.Path)
	}
}
