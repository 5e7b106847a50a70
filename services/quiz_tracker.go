package services

import (
	"errors"
	"fmt"
	"time"

	courseModels "learnsphere/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Reward policy constants.
const (
	// PassThresholdPercent is the inclusive minimum score to pass a quiz.
	PassThresholdPercent = 70
	// QuizRewardCoins is credited once per (user, quiz) on first pass.
	QuizRewardCoins = 10
)

// AttemptResult is the outcome of one quiz submission. Score and Passed are
// always populated; the side-effect fields describe what this particular
// call changed.
type AttemptResult struct {
	Score            int  `json:"score"`
	TotalQuestions   int  `json:"total_questions"`
	ScorePercent     int  `json:"score_percent"`
	Passed           bool `json:"passed"`
	AlreadyCompleted bool `json:"already_completed"`
	CoinsAwarded     uint `json:"coins_awarded"`
	Progress         int  `json:"progress"`
}

// QuizTracker scores quiz submissions and, on a first pass, grants the coin
// reward exactly once. The QuizCompletion insert is the serialization point:
// its unique (user_id, quiz_id) index decides which of two racing
// submissions owns the reward, and the credit only happens after that insert
// succeeds. No cross-record transaction is assumed from the store.
type QuizTracker struct {
	db          *gorm.DB
	ledger      *RewardLedger
	enrollments *EnrollmentManager
}

func NewQuizTracker(db *gorm.DB, ledger *RewardLedger, enrollments *EnrollmentManager) *QuizTracker {
	return &QuizTracker{db: db, ledger: ledger, enrollments: enrollments}
}

// SubmitAttempt scores answers (question index -> chosen option index)
// against the quiz definition. Every question must be answered or
// ErrIncompleteSubmission is returned with no writes.
//
// On a first pass the side-effect sequence is: create the completion record,
// credit the reward, recompute enrollment progress. A step failing after the
// completion record committed is reported as *PartialWriteError alongside the
// scored result, so callers can still show the score and a reconciliation
// pass can finish the missing step.
func (t *QuizTracker) SubmitAttempt(userID, quizID uint, answers map[int]int) (*AttemptResult, error) {
	var quiz courseModels.Quiz
	err := t.db.Where("id = ? AND is_deleted = false", quizID).First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	var questions []courseModels.QuizQuestion
	err = t.db.Where("quiz_id = ?", quizID).
		Order("order_index asc, id asc").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrQuizNotFound
	}

	enrollment, err := t.enrollments.Get(userID, quiz.CourseID)
	if err != nil {
		return nil, err
	}

	for i := range questions {
		if _, ok := answers[i]; !ok {
			return nil, ErrIncompleteSubmission
		}
	}

	score := 0
	for i, q := range questions {
		if answers[i] == q.CorrectOption {
			score++
		}
	}

	percent := float64(score) / float64(len(questions)) * 100

	result := &AttemptResult{
		Score:          score,
		TotalQuestions: len(questions),
		ScorePercent:   int(percent + 0.5),
		Passed:         percent >= PassThresholdPercent,
		Progress:       enrollment.Progress,
	}

	// The flag is advisory for display; the insert below is the
	// authoritative gate.
	var existingCount int64
	err = t.db.Model(&courseModels.QuizCompletion{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&existingCount).Error
	if err != nil {
		return nil, err
	}
	result.AlreadyCompleted = existingCount > 0

	if !result.Passed || result.AlreadyCompleted {
		return result, nil
	}

	completion := courseModels.QuizCompletion{
		UserID:         userID,
		QuizID:         quizID,
		CourseID:       quiz.CourseID,
		Score:          score,
		TotalQuestions: len(questions),
		QuizTitle:      quiz.Title,
		CompletedAt:    time.Now(),
	}
	res := t.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "quiz_id"}},
		DoNothing: true,
	}).Create(&completion)
	if res.Error != nil {
		// Nothing committed yet; a plain failure, not a partial one.
		return nil, fmt.Errorf("create quiz completion: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// A concurrent submission won the insert; it owns the reward.
		result.AlreadyCompleted = true
		return result, nil
	}

	if err := t.ledger.Credit(userID, QuizRewardCoins); err != nil {
		return result, &PartialWriteError{Step: StepRewardCredit, Err: err}
	}
	result.CoinsAwarded = QuizRewardCoins

	progress, err := t.enrollments.RecomputeProgress(userID, quiz.CourseID)
	if err != nil {
		return result, &PartialWriteError{Step: StepProgressRecompute, Err: err}
	}
	result.Progress = progress

	return result, nil
}
