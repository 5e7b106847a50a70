package controllers

import (
	"learnsphere/database"
	"learnsphere/middleware"
	"learnsphere/models"
	courseModels "learnsphere/models/course"
	"learnsphere/services"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses, optionally paginated
func GetAllCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ? AND status = ?", false, true, "ACTIVE")

	var total int64
	db.Count(&total)

	page := 1
	limit := int(total)
	if reqData, ok := c.Locals("validatedCourseList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	}); ok {
		page = *reqData.Page
		limit = *reqData.Limit
	}

	var courses []courseModels.Course
	query := db.Order("created_at desc")
	if limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}
	if err := query.Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails returns one course with its ordered video list. Each video
// carries a locked flag computed for the current viewer; the first videos of
// a course are free, later ones need a paid unlock.
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var videos []courseModels.Video
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&videos)

	gate := services.NewUnlockGate(database.Database.Db, services.NewRewardLedger(database.Database.Db))

	type VideoWithAccess struct {
		courseModels.Video
		Locked bool `json:"locked"`
	}

	videoList := make([]VideoWithAccess, len(videos))
	for i, video := range videos {
		canView, err := gate.CanView(userID, i, video.ID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve video access!", nil)
		}
		videoList[i] = VideoWithAccess{Video: video, Locked: !canView}
	}

	// Enrollment is optional; guests of the course still see the catalog view
	var enrollment *courseModels.Enrollment
	manager := services.NewEnrollmentManager(database.Database.Db)
	if e, err := manager.Get(userID, uint(courseID)); err == nil {
		enrollment = e
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":     course,
		"videos":     videoList,
		"enrollment": enrollment,
	})
}
