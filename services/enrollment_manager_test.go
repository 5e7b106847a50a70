package services

import (
	"testing"
	"time"

	courseModels "learnsphere/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollCreatesActiveEnrollment(t *testing.T) {
	db := setupTestDB(t)
	_, _, course := seedCatalog(t, db)
	student := seedStudent(t, db, "Mira Okafor", "mira@learnsphere.io", 0)
	manager := NewEnrollmentManager(db)

	enrollment, err := manager.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	assert.Equal(t, EnrollmentActive, enrollment.Status)
	assert.Equal(t, 0, enrollment.Progress)
	assert.False(t, enrollment.EnrolledAt.IsZero())
}

func TestEnrollTwiceReturnsAlreadyEnrolled(t *testing.T) {
	db := setupTestDB(t)
	_, _, course := seedCatalog(t, db)
	student := seedStudent(t, db, "Mira Okafor", "mira@learnsphere.io", 0)
	manager := NewEnrollmentManager(db)

	_, err := manager.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	_, err = manager.Enroll(student.ID, course.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	var count int64
	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnrollUnpublishedCourse(t *testing.T) {
	db := setupTestDB(t)
	teacher, _, _ := seedCatalog(t, db)
	student := seedStudent(t, db, "Mira Okafor", "mira@learnsphere.io", 0)

	draft := courseModels.Course{
		Title:       "Unreleased Course",
		TeacherID:   teacher.ID,
		Status:      "DRAFT",
		IsPublished: false,
	}
	require.NoError(t, db.Create(&draft).Error)

	_, err := NewEnrollmentManager(db).Enroll(student.ID, draft.ID)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestGetNotEnrolled(t *testing.T) {
	db := setupTestDB(t)
	_, _, course := seedCatalog(t, db)
	student := seedStudent(t, db, "Mira Okafor", "mira@learnsphere.io", 0)

	_, err := NewEnrollmentManager(db).Get(student.ID, course.ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestRecomputeProgressQuarterComplete(t *testing.T) {
	db := setupTestDB(t)
	_, _, course := seedCatalog(t, db)
	student := seedStudent(t, db, "Mira Okafor", "mira@learnsphere.io", 0)
	quizzes := seedQuizzes(t, db, course.ID, 4, 2)
	enroll(t, db, student.ID, course.ID)
	manager := NewEnrollmentManager(db)

	completion := courseModels.QuizCompletion{
		UserID:         student.ID,
		QuizID:         quizzes[0].ID,
		CourseID:       course.ID,
		Score:          2,
		TotalQuestions: 2,
		QuizTitle:      quizzes[0].Title,
		CompletedAt:    time.Now(),
	}
	require.NoError(t, db.Create(&completion).Error)

	progress, err := manager.RecomputeProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, progress)

	stored, err := manager.Get(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, stored.Progress)
	assert.Equal(t, EnrollmentActive, stored.Status)
}

func TestRecomputeProgressRounding(t *testing.T) {
	db := setupTestDB(t)
	_, _, course := seedCatalog(t, db)
	student := seedStudent(t, db, "Mira Okafor", "mira@learnsphere.io", 0)
	quizzes := seedQuizzes(t, db, course.ID, 3, 1)
	enroll(t, db, student.ID, course.ID)

	for _, quiz := range quizzes[:2] {
		completion := courseModels.QuizCompletion{
			UserID: student.ID, QuizID: quiz.ID, CourseID: course.ID,
			Score: 1, TotalQuestions: 1, QuizTitle: quiz.Title, CompletedAt: time.Now(),
		}
		require.NoError(t, db.Create(&completion).Error)
	}

	// 2 of 3 is 66.67, stored as the nearest integer.
	progress, err := NewEnrollmentManager(db).RecomputeProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 67, progress)
}

func TestRecomputeProgressCompletion(t *testing.T) {
	db := setupTestDB(t)
	_, _, course := seedCatalog(t, db)
	student := seedStudent(t, db, "Mira Okafor", "mira@learnsphere.io", 0)
	quizzes := seedQuizzes(t, db, course.ID, 2, 1)
	enroll(t, db, student.ID, course.ID)
	manager := NewEnrollmentManager(db)

	for _, quiz := range quizzes {
		completion := courseModels.QuizCompletion{
			UserID: student.ID, QuizID: quiz.ID, CourseID: course.ID,
			Score: 1, TotalQuestions: 1, QuizTitle: quiz.Title, CompletedAt: time.Now(),
		}
		require.NoError(t, db.Create(&completion).Error)
	}

	progress, err := manager.RecomputeProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, progress)

	stored, err := manager.Get(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, EnrollmentCompleted, stored.Status)
}

func TestRecomputeProgressIdempotent(t *testing.T) {
	db := setupTestDB(t)
	_, _, course := seedCatalog(t, db)
	student := seedStudent(t, db, "Mira Okafor", "mira@learnsphere.io", 0)
	quizzes := seedQuizzes(t, db, course.ID, 4, 1)
	enroll(t, db, student.ID, course.ID)
	manager := NewEnrollmentManager(db)

	completion := courseModels.QuizCompletion{
		UserID: student.ID, QuizID: quizzes[0].ID, CourseID: course.ID,
		Score: 1, TotalQuestions: 1, QuizTitle: quizzes[0].Title, CompletedAt: time.Now(),
	}
	require.NoError(t, db.Create(&completion).Error)

	first, err := manager.RecomputeProgress(student.ID, course.ID)
	require.NoError(t, err)
	second, err := manager.RecomputeProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRecomputeProgressNoQuizzes(t *testing.T) {
	db := setupTestDB(t)
	_, _, course := seedCatalog(t, db)
	student := seedStudent(t, db, "Mira Okafor", "mira@learnsphere.io", 0)
	enrollment := enroll(t, db, student.ID, course.ID)

	// Simulate progress accrued before the course's quizzes were removed.
	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("id = ?", enrollment.ID).
		UpdateColumn("progress", 40).Error)

	progress, err := NewEnrollmentManager(db).RecomputeProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, progress)

	stored, err := NewEnrollmentManager(db).Get(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, stored.Progress)
}
