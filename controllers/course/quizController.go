package controllers

import (
	"encoding/json"
	"errors"

	"learnsphere/database"
	"learnsphere/middleware"
	"learnsphere/models"
	courseModels "learnsphere/models/course"
	"learnsphere/services"
	courseValidator "learnsphere/validators/course"

	"github.com/gofiber/fiber/v2"
)

// GetSectionQuizzes lists the quizzes of one course section
func GetSectionQuizzes(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	section := c.Locals("section").(int)

	var quizzes []courseModels.Quiz
	if err := database.Database.Db.
		Where("course_id = ? AND section = ? AND is_deleted = ?", courseID, section, false).
		Order("id asc").Find(&quizzes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quizzes!", nil)
	}

	// Mark which quizzes the caller already passed
	var completions []courseModels.QuizCompletion
	database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&completions)

	completedIDs := make(map[uint]bool, len(completions))
	for _, completion := range completions {
		completedIDs[completion.QuizID] = true
	}

	type QuizWithStatus struct {
		courseModels.Quiz
		Completed bool `json:"completed"`
	}

	result := make([]QuizWithStatus, len(quizzes))
	for i, quiz := range quizzes {
		result[i] = QuizWithStatus{Quiz: quiz, Completed: completedIDs[quiz.ID]}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quizzes fetched successfully!", fiber.Map{
		"quizzes": result,
	})
}

// GetQuiz returns one quiz with its questions. Correct options are never
// included in the response.
func GetQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.
		Where("id = ? AND course_id = ? AND is_deleted = ?", quizID, courseID, false).
		First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var questions []courseModels.QuizQuestion
	database.Database.Db.Where("quiz_id = ?", quizID).
		Order("order_index asc, id asc").Find(&questions)

	type QuestionView struct {
		Index        int      `json:"index"`
		QuestionText string   `json:"question_text"`
		Options      []string `json:"options"`
	}

	questionList := make([]QuestionView, len(questions))
	for i, q := range questions {
		var options []string
		json.Unmarshal(q.Options, &options)
		questionList[i] = QuestionView{
			Index:        i,
			QuestionText: q.QuestionText,
			Options:      options,
		}
	}

	var completed int64
	database.Database.Db.Model(&courseModels.QuizCompletion{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).Count(&completed)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":              quiz,
		"questions":         questionList,
		"already_completed": completed > 0,
	})
}

// SubmitQuiz scores a quiz submission and applies the first-pass reward
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	quizID := c.Locals("quizID").(int)

	reqData, ok := c.Locals("validatedSubmission").(*courseValidator.SubmitQuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	tracker := services.NewQuizTracker(db, services.NewRewardLedger(db), services.NewEnrollmentManager(db))

	result, err := tracker.SubmitAttempt(userID, uint(quizID), reqData.Answers)
	if err != nil {
		var partial *services.PartialWriteError
		switch {
		case errors.Is(err, services.ErrQuizNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
		case errors.Is(err, services.ErrNotEnrolled):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
		case errors.Is(err, services.ErrIncompleteSubmission):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please answer all questions!", nil)
		case errors.As(err, &partial):
			// The attempt is recorded; report the score along with which
			// follow-up step still needs a retry.
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false,
				"Quiz recorded but the \""+partial.Step+"\" step failed. It will be retried.", fiber.Map{
					"result": result,
				})
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
		}
	}

	message := "Quiz submitted!"
	if result.Passed && result.CoinsAwarded > 0 {
		message = "Congratulations! You passed the quiz and earned coins."
	} else if result.Passed && result.AlreadyCompleted {
		message = "You have already completed this quiz successfully."
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, result)
}
