package services

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompleteSubmission is returned when a quiz submission does not answer every question.
	ErrIncompleteSubmission = errors.New("every question must be answered")
	// ErrQuizNotFound indicates the quiz does not exist or has no questions.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrCourseNotFound indicates the course does not exist or is not active.
	ErrCourseNotFound = errors.New("course not found")
	// ErrVideoNotFound indicates the video does not belong to the course.
	ErrVideoNotFound = errors.New("video not found")
	// ErrUserNotFound indicates the user record is missing or deleted.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotEnrolled is returned when an operation requires an enrollment that does not exist.
	ErrNotEnrolled = errors.New("user is not enrolled in this course")
	// ErrAlreadyEnrolled is returned when a user enrolls in the same course twice.
	ErrAlreadyEnrolled = errors.New("user is already enrolled in this course")
	// ErrInvalidAmount rejects zero or negative ledger adjustments.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrInsufficientBalance is returned when a debit exceeds the current coin balance.
	ErrInsufficientBalance = errors.New("insufficient coin balance")
	// ErrNotEligible is returned when a certificate is requested before 100% progress.
	ErrNotEligible = errors.New("course is not fully completed")
	// ErrAlreadyIssued is returned when a certificate already exists for the enrollment.
	ErrAlreadyIssued = errors.New("certificate already issued")
)

// Step names reported by PartialWriteError.
const (
	StepRewardCredit      = "reward credit"
	StepProgressRecompute = "progress recompute"
	StepUnlockRecord      = "unlock record"
	StepUnlockRefund      = "unlock refund"
)

// PartialWriteError reports that a multi-step side-effect sequence stopped
// partway: the steps before Step committed, Step itself did not. The store has
// no cross-record transactions, so callers recover by retrying the missing
// step (every step is individually idempotent), never by re-running the whole
// sequence.
type PartialWriteError struct {
	Step string
	Err  error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial write: step %q failed: %v", e.Step, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
