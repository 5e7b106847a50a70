package courseValidator

import (
	"strconv"
	"strings"

	"learnsphere/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// SubmitQuizRequest is the body of a quiz submission. Keys of Answers are
// question indexes, values are chosen option indexes.
type SubmitQuizRequest struct {
	Answers map[int]int `json:"answers" validate:"required,min=1"`
}

func SectionQuizzes() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("course_id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		sectionStr := strings.TrimSpace(c.Params("section"))
		section, err := strconv.Atoi(sectionStr)
		if err != nil || section < 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid section number!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("section", section)
		return c.Next()
	}
}

func GetQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("course_id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		quizIDStr := strings.TrimSpace(c.Params("quiz_id"))
		quizID, err := strconv.Atoi(quizIDStr)
		if err != nil || quizID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Quiz ID!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("quizID", quizID)
		return c.Next()
	}
}

func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("course_id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		quizIDStr := strings.TrimSpace(c.Params("quiz_id"))
		quizID, err := strconv.Atoi(quizIDStr)
		if err != nil || quizID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Quiz ID!", nil)
		}

		reqData := new(SubmitQuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"answers": "At least one answer is required!",
			})
		}

		for questionIndex, option := range reqData.Answers {
			if questionIndex < 0 || option < 0 {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"answers": "Question and option indexes must not be negative!",
				})
			}
		}

		c.Locals("courseID", courseID)
		c.Locals("quizID", quizID)
		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}
