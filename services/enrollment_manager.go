package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	courseModels "learnsphere/models/course"

	"gorm.io/gorm"
)

// Enrollment status values.
const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
)

// EnrollmentManager owns the user<->course relationship and its derived
// progress percentage.
type EnrollmentManager struct {
	db *gorm.DB
}

func NewEnrollmentManager(db *gorm.DB) *EnrollmentManager {
	return &EnrollmentManager{db: db}
}

// Enroll creates the enrollment for (userID, courseID). One enrollment per
// pair; a second call returns ErrAlreadyEnrolled.
func (m *EnrollmentManager) Enroll(userID, courseID uint) (*courseModels.Enrollment, error) {
	var course courseModels.Course
	err := m.db.Where("id = ? AND is_deleted = false AND status = ? AND is_published = true",
		courseID, "ACTIVE").First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	var existing courseModels.Enrollment
	err = m.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyEnrolled
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := courseModels.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		Progress:   0,
		Status:     EnrollmentActive,
		EnrolledAt: time.Now(),
	}
	if err := m.db.Create(&enrollment).Error; err != nil {
		return nil, fmt.Errorf("create enrollment: %w", err)
	}
	return &enrollment, nil
}

// Get returns the enrollment for (userID, courseID) or ErrNotEnrolled.
func (m *EnrollmentManager) Get(userID, courseID uint) (*courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment
	err := m.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}
	return &enrollment, nil
}

// RecomputeProgress rederives the enrollment's progress percentage from quiz
// completion counts and stores it. The result is a pure function of current
// record counts, so the call is idempotent and safe to repeat any number of
// times. A course with zero quizzes keeps its stored progress: quizzes are
// the only progress driver, so there is nothing to recompute from.
func (m *EnrollmentManager) RecomputeProgress(userID, courseID uint) (int, error) {
	enrollment, err := m.Get(userID, courseID)
	if err != nil {
		return 0, err
	}

	var totalQuizzes int64
	err = m.db.Model(&courseModels.Quiz{}).
		Where("course_id = ? AND is_deleted = false", courseID).
		Count(&totalQuizzes).Error
	if err != nil {
		return 0, err
	}
	if totalQuizzes == 0 {
		return enrollment.Progress, nil
	}

	var completed int64
	err = m.db.Model(&courseModels.QuizCompletion{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&completed).Error
	if err != nil {
		return 0, err
	}

	progress := int(math.Round(float64(completed) / float64(totalQuizzes) * 100))
	if progress > 100 {
		progress = 100
	}

	status := EnrollmentActive
	if progress == 100 {
		status = EnrollmentCompleted
	}

	err = m.db.Model(&courseModels.Enrollment{}).
		Where("id = ?", enrollment.ID).
		UpdateColumns(map[string]interface{}{
			"progress": progress,
			"status":   status,
		}).Error
	if err != nil {
		return 0, fmt.Errorf("update enrollment progress: %w", err)
	}

	return progress, nil
}
