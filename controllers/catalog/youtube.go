package catalogController

import (
	"strings"

	"learnsphere/middleware"
	"learnsphere/utils"

	"github.com/gofiber/fiber/v2"
)

// GetPlaylistVideos fetches a YouTube playlist's items for course authoring.
// Teacher-only; the result is used to populate a course's video list.
func GetPlaylistVideos(c *fiber.Ctx) error {
	playlistID := strings.TrimSpace(c.Query("playlistId"))
	if playlistID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "playlistId is required!", nil)
	}

	videos, err := utils.FetchPlaylistVideos(playlistID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to fetch playlist from YouTube!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Playlist fetched successfully!", fiber.Map{
		"videos": videos,
		"total":  len(videos),
	})
}
