package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is an immutable record of course completion and the single
// source of truth for the rendered document. Student, course, teacher and
// department names are snapshotted at issuance so later profile or catalog
// edits never alter an issued certificate. At most one row exists per
// (user, course); the composite unique index backs concurrent issue calls.
type Certificate struct {
	gorm.Model
	CertificateNumber string    `json:"certificate_number" gorm:"unique;not null"`
	UserID            uint      `json:"user_id" gorm:"uniqueIndex:idx_certificate_user_course;not null"`
	CourseID          uint      `json:"course_id" gorm:"uniqueIndex:idx_certificate_user_course;not null"`
	StudentName       string    `json:"student_name"`
	CourseName        string    `json:"course_name"`
	TeacherName       string    `json:"teacher_name"`
	DepartmentName    string    `json:"department_name"`
	Grade             string    `json:"grade"`
	IssuedAt          time.Time `json:"issued_at"`
}
