package courseValidator

import (
	"strconv"
	"strings"

	"learnsphere/middleware"

	"github.com/gofiber/fiber/v2"
)

// GenerateCertificateRequest carries the grade assigned to the completed
// course.
type GenerateCertificateRequest struct {
	Grade string `json:"grade" validate:"required,max=5"`
}

func GenerateCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("course_id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(GenerateCertificateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Grade = strings.TrimSpace(reqData.Grade)
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"grade": "Grade is required and must be at most 5 characters!",
			})
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCertificate", reqData)
		return c.Next()
	}
}

func DownloadCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := strings.TrimSpace(c.Params("number"))
		if number == "" || !strings.HasPrefix(number, "CERT-") {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate number!", nil)
		}

		c.Locals("certificateNumber", number)
		return c.Next()
	}
}
