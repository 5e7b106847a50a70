package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a user's participation in a course with progress.
// One row per (user, course) pair; uniqueness is enforced check-then-create
// by the enrollment manager. Progress is a derived value recomputed from
// quiz completion counts, never edited directly.
type Enrollment struct {
	gorm.Model
	UserID     uint      `json:"user_id" gorm:"index;not null"`
	CourseID   uint      `json:"course_id" gorm:"index;not null"`
	Progress   int       `json:"progress" gorm:"default:0"`       // 0-100
	Status     string    `json:"status" gorm:"default:'active'"` // active, completed
	EnrolledAt time.Time `json:"enrolled_at"`
}
