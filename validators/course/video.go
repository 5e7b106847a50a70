package courseValidator

import (
	"strconv"
	"strings"

	"learnsphere/middleware"

	"github.com/gofiber/fiber/v2"
)

func UnlockVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("course_id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		videoIDStr := strings.TrimSpace(c.Params("video_id"))
		videoID, err := strconv.Atoi(videoIDStr)
		if err != nil || videoID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Video ID!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("videoID", videoID)
		return c.Next()
	}
}
