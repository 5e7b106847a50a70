package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"learnsphere/models"
	courseModels "learnsphere/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CertificateIssuer is the sole writer of certificate records. Eligibility is
// 100% enrollment progress, exactly; at most one certificate ever exists per
// (user, course), backed by the composite unique index.
type CertificateIssuer struct {
	db          *gorm.DB
	enrollments *EnrollmentManager

	// Notify, when set, is called after a certificate is created. Failures
	// are logged, never propagated; the certificate record is the source of
	// truth, the email is a courtesy.
	Notify func(cert *courseModels.Certificate, recipientEmail string) error
}

func NewCertificateIssuer(db *gorm.DB, enrollments *EnrollmentManager) *CertificateIssuer {
	return &CertificateIssuer{db: db, enrollments: enrollments}
}

// Issue creates the certificate for (userID, courseID) with the given grade.
// Student, course, teacher and department names are snapshotted at issuance;
// later edits to any of them never alter the certificate. If a certificate
// already exists it is returned together with ErrAlreadyIssued instead of
// creating a duplicate, including when two concurrent calls race on the
// insert.
func (i *CertificateIssuer) Issue(userID, courseID uint, grade string) (*courseModels.Certificate, error) {
	enrollment, err := i.enrollments.Get(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment.Progress != 100 {
		return nil, ErrNotEligible
	}

	if existing, err := i.find(userID, courseID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, ErrAlreadyIssued
	}

	var student models.User
	if err := i.db.Where("id = ? AND is_deleted = false", userID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var course courseModels.Course
	if err := i.db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	teacherName := "Unknown Instructor"
	var teacher models.User
	if err := i.db.Where("id = ? AND is_deleted = false", course.TeacherID).First(&teacher).Error; err == nil {
		teacherName = teacher.Name
	}

	departmentName := "N/A"
	if course.DepartmentID != nil {
		var department models.Department
		if err := i.db.Where("id = ? AND is_deleted = false", *course.DepartmentID).First(&department).Error; err == nil {
			departmentName = department.Name
		}
	}

	cert := courseModels.Certificate{
		CertificateNumber: newCertificateNumber(),
		UserID:            userID,
		CourseID:          courseID,
		StudentName:       student.Name,
		CourseName:        course.Title,
		TeacherName:       teacherName,
		DepartmentName:    departmentName,
		Grade:             grade,
		IssuedAt:          time.Now(),
	}
	res := i.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(&cert)
	if res.Error != nil {
		return nil, fmt.Errorf("create certificate: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// A concurrent Issue won the insert; report its certificate.
		existing, err := i.find(userID, courseID)
		if err != nil {
			return nil, err
		}
		return existing, ErrAlreadyIssued
	}

	if i.Notify != nil {
		if err := i.Notify(&cert, student.Email); err != nil {
			log.Printf("[CERTIFICATE-ISSUER] notification for %s failed: %v", cert.CertificateNumber, err)
		}
	}

	return &cert, nil
}

func (i *CertificateIssuer) find(userID, courseID uint) (*courseModels.Certificate, error) {
	var cert courseModels.Certificate
	err := i.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&cert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cert, nil
}

// newCertificateNumber builds a human-readable certificate id. Collisions on
// an 8-hex-char suffix are improbable enough that no retry loop exists; the
// unique constraint on certificate_number is the backstop.
func newCertificateNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "CERT-" + suffix
}
