package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"learnsphere/models"
	courseModels "learnsphere/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory SQLite database for one test and runs
// the full schema migration. The database is named after the test so parallel
// tests never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Department{},
		&courseModels.Course{},
		&courseModels.Video{},
		&courseModels.Quiz{},
		&courseModels.QuizQuestion{},
		&courseModels.QuizCompletion{},
		&courseModels.VideoUnlock{},
		&courseModels.Enrollment{},
		&courseModels.Certificate{},
	))

	return db
}

func seedStudent(t *testing.T, db *gorm.DB, name, email string, coins uint) *models.User {
	t.Helper()

	user := models.User{Name: name, Email: email, Role: "STUDENT", Coins: coins}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// seedCatalog creates a department, a teacher and one active published course.
func seedCatalog(t *testing.T, db *gorm.DB) (*models.User, *models.Department, *courseModels.Course) {
	t.Helper()

	department := models.Department{Name: "Computer Science " + t.Name()}
	require.NoError(t, db.Create(&department).Error)

	teacher := models.User{Name: "Dr. Ada Zewail", Email: "ada+" + t.Name() + "@learnsphere.io", Role: "TEACHER"}
	require.NoError(t, db.Create(&teacher).Error)

	course := courseModels.Course{
		Title:        "Distributed Systems 101",
		Description:  "Consensus, replication and failure",
		TeacherID:    teacher.ID,
		DepartmentID: &department.ID,
		Status:       "ACTIVE",
		IsPublished:  true,
	}
	require.NoError(t, db.Create(&course).Error)

	return &teacher, &department, &course
}

func seedVideos(t *testing.T, db *gorm.DB, courseID uint, count int) []courseModels.Video {
	t.Helper()

	videos := make([]courseModels.Video, count)
	for i := 0; i < count; i++ {
		videos[i] = courseModels.Video{
			CourseID:   courseID,
			Title:      fmt.Sprintf("Lecture %d", i+1),
			YoutubeID:  fmt.Sprintf("yt-%d", i+1),
			OrderIndex: i,
		}
		require.NoError(t, db.Create(&videos[i]).Error)
	}
	return videos
}

// seedQuizzes creates quizzes with questionsEach questions each. Every
// question has four options and testCorrectOption is the right one.
const testCorrectOption = 2

func seedQuizzes(t *testing.T, db *gorm.DB, courseID uint, count, questionsEach int) []courseModels.Quiz {
	t.Helper()

	quizzes := make([]courseModels.Quiz, count)
	for i := 0; i < count; i++ {
		quizzes[i] = courseModels.Quiz{
			CourseID: courseID,
			Title:    fmt.Sprintf("Section %d Quiz", i+1),
			Section:  i,
		}
		require.NoError(t, db.Create(&quizzes[i]).Error)

		for j := 0; j < questionsEach; j++ {
			question := courseModels.QuizQuestion{
				QuizID:        quizzes[i].ID,
				QuestionText:  fmt.Sprintf("Question %d", j+1),
				Options:       datatypes.JSON(`["North","South","East","West"]`),
				CorrectOption: testCorrectOption,
				OrderIndex:    j,
			}
			require.NoError(t, db.Create(&question).Error)
		}
	}
	return quizzes
}

func enroll(t *testing.T, db *gorm.DB, userID, courseID uint) *courseModels.Enrollment {
	t.Helper()

	enrollment := courseModels.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		Status:     EnrollmentActive,
		EnrolledAt: time.Now(),
	}
	require.NoError(t, db.Create(&enrollment).Error)
	return &enrollment
}

// answersScoring builds a submission answering the first correct questions
// right and the remainder wrong, out of total questions.
func answersScoring(correct, total int) map[int]int {
	answers := make(map[int]int, total)
	for i := 0; i < total; i++ {
		if i < correct {
			answers[i] = testCorrectOption
		} else {
			answers[i] = 0
		}
	}
	return answers
}

func balanceOf(t *testing.T, db *gorm.DB, userID uint) uint {
	t.Helper()

	balance, err := NewRewardLedger(db).Balance(userID)
	require.NoError(t, err)
	return balance
}
