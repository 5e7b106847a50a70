package course

import (
	"time"

	"gorm.io/gorm"
)

// VideoUnlock records that a user paid coins to unlock one gated video.
// Existence of the row grants permanent access regardless of the video's
// position in the course. Rows are never updated or deleted; the composite
// unique index makes a racing double-unlock detectable.
type VideoUnlock struct {
	gorm.Model
	UserID     uint      `json:"user_id" gorm:"uniqueIndex:idx_unlock_user_video;not null"`
	VideoID    uint      `json:"video_id" gorm:"uniqueIndex:idx_unlock_user_video;not null"`
	CourseID   uint      `json:"course_id" gorm:"index;not null"`
	VideoTitle string    `json:"video_title"`
	UnlockedAt time.Time `json:"unlocked_at"`
}
