package course

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Title        string `json:"title"`
	Description  string `json:"description"`
	TeacherID    uint   `json:"teacher_id" gorm:"index;not null"`
	DepartmentID *uint  `json:"department_id" gorm:"index"`
	ThumbnailURL string `json:"thumbnail_url"`
	Status       string `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	IsPublished  bool   `json:"is_published" gorm:"default:false"`
	IsDeleted    bool   `gorm:"default:false"`
}

// Video is one item of a course's ordered video list. Playback content lives on
// YouTube; only metadata is stored here.
type Video struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	YoutubeID  string `json:"youtube_id"`
	Duration   int64  `json:"duration" gorm:"default:0"` // seconds
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}
