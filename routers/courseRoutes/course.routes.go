package courseRoutes

import (
	controllers "learnsphere/controllers/course"
	"learnsphere/middleware"
	validators "learnsphere/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Course listing and details (public published courses)
	userGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	userGroup.Get("/:id", middleware.JWTMiddleware, validators.GetCourseDetail(), controllers.GetCourseDetails)

	// Enrollment
	userGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.EnrollInCourse)

	// Section quizzes
	userGroup.Get("/:course_id/section/:section/quizzes", middleware.JWTMiddleware, validators.SectionQuizzes(), controllers.GetSectionQuizzes)
	userGroup.Get("/:course_id/quiz/:quiz_id", middleware.JWTMiddleware, validators.GetQuiz(), controllers.GetQuiz)
	userGroup.Post("/:course_id/quiz/:quiz_id/submit", middleware.JWTMiddleware, validators.SubmitQuiz(), controllers.SubmitQuiz)

	// Paid video unlock
	userGroup.Post("/:course_id/video/:video_id/unlock", middleware.JWTMiddleware, validators.UnlockVideo(), controllers.UnlockVideo)

	// Progress tracking
	userGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.GetCourseProgress(), controllers.GetUserProgress)

	// Certificate issuance
	userGroup.Post("/:course_id/certificate/generate", middleware.JWTMiddleware, validators.GenerateCertificate(), controllers.GenerateCertificate)

	// User enrollments and certificates
	userEnrollGroup := app.Group("/user")
	userEnrollGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollmentsList)
	userEnrollGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)

	// Certificate document rendering
	certGroup := app.Group("/certificate")
	certGroup.Get("/:number/download", middleware.JWTMiddleware, validators.DownloadCertificate(), controllers.DownloadCertificate)
}
