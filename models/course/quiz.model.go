package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz is a section-level multiple choice quiz. Quiz content is authored by
// teachers and is read-only to the progress engine.
type Quiz struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Section     int    `json:"section" gorm:"default:0"` // section ordinal within the course
	IsDeleted   bool   `gorm:"default:false"`
}

// QuizQuestion is a single question of a quiz. Options is a JSON array of
// option texts; CorrectOption indexes into it.
type QuizQuestion struct {
	gorm.Model
	QuizID        uint           `json:"quiz_id" gorm:"index;not null"`
	QuestionText  string         `json:"question_text"`
	Options       datatypes.JSON `json:"options"`
	CorrectOption int            `json:"-"`
	OrderIndex    int            `json:"order_index" gorm:"default:0"`
}

// QuizCompletion is the durable at-most-once record that a user passed a quiz.
// The composite unique index on (user_id, quiz_id) is the serialization point
// for concurrent submissions: whichever insert wins the conflict owns the
// reward. Rows are never updated or deleted.
type QuizCompletion struct {
	gorm.Model
	UserID         uint      `json:"user_id" gorm:"uniqueIndex:idx_completion_user_quiz;not null"`
	QuizID         uint      `json:"quiz_id" gorm:"uniqueIndex:idx_completion_user_quiz;not null"`
	CourseID       uint      `json:"course_id" gorm:"index;not null"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	QuizTitle      string    `json:"quiz_title"`
	CompletedAt    time.Time `json:"completed_at"`
}
