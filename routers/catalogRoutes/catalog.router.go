package catalogRoutes

import (
	catalogController "learnsphere/controllers/catalog"
	"learnsphere/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupCatalogRoutes(app *fiber.App) {
	catalogGroup := app.Group("/catalog")

	// Playlist import is restricted to course authors
	catalogGroup.Get("/youtube/playlist", middleware.JWTMiddleware,
		middleware.RequireRole("TEACHER", "ADMIN"), catalogController.GetPlaylistVideos)
}
