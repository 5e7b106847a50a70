package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"learnsphere/models"
	courseModels "learnsphere/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var certificateNumberPattern = regexp.MustCompile(`^CERT-[0-9A-F]{8}$`)

func completeEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) {
	t.Helper()

	enrollment := enroll(t, db, userID, courseID)
	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("id = ?", enrollment.ID).
		UpdateColumns(map[string]interface{}{
			"progress": 100,
			"status":   EnrollmentCompleted,
		}).Error)
}

func TestIssueSnapshotsNames(t *testing.T) {
	db := setupTestDB(t)
	teacher, department, course := seedCatalog(t, db)
	student := seedStudent(t, db, "Mira Okafor", "mira@learnsphere.io", 0)
	completeEnrollment(t, db, student.ID, course.ID)
	issuer := NewCertificateIssuer(db, NewEnrollmentManager(db))

	cert, err := issuer.Issue(student.ID, course.ID, "A")
	require.NoError(t, err)

	assert.Regexp(t, certificateNumberPattern, cert.CertificateNumber)
	assert.Equal(t, "Mira Okafor", cert.StudentName)
	assert.Equal(t, course.Title, cert.CourseName)
	assert.Equal(t, teacher.Name, cert.TeacherName)
	assert.Equal(t, department.Name, cert.DepartmentName)
	assert.Equal(t, "A", cert.Grade)
	assert.False(t, cert.IssuedAt.IsZero())
}

func TestIssueSnapshotSurvivesRenames(t *testing.T) {
	db := setupTestDB(t)
	_, _, course := seedCatalog(t, db)
	student := seedStudent(t, db, "Mira Okafor", "mira@learnsphere.io", 0)
	completeEnrollment(t, db, student.ID, course.ID)
	issuer := NewCertificateIssuer(db, NewEnrollmentManager(db))

	cert, err := issuer.Issue(student.ID, course.ID, "A")
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", student.ID).UpdateColumn("name", "Mira Adeyemi").Error)
	require.NoError(t, db.Model(&courseModels.Course{}).
		Where("id = ?", course.ID).UpdateColumn("title", "Renamed Course").Error)

	var stored courseModels.Certificate
	require.NoError(t, db.First(&stored, cert.ID).Error)
	assert.Equal(t, "Mira Okafor", stored.StudentName)
	assert.Equal(t, course.Title, stored.CourseName)
}

func TestIssueFallbackNames(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "Mira Okafor", "mira@learnsphere.io", 0)

	// Course whose teacher record is gone and that has no department.
	course := courseModels.Course{
		Title: "Orphaned Course", TeacherID: 9999, Status: "ACTIVE", IsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)
	completeEnrollment(t, db, student.ID, course.ID)

	cert, err := NewCertificateIssuer(db, NewEnrollmentManager(db)).Issue(student.ID, course.ID, "B")
	require.NoError(t, err)

	assert.Equal(t, "Unknown Instructor", cert.TeacherName)
	assert.Equal(t, "N/A", cert.DepartmentName)
}

func TestIssueNotEligibleBelowComplete(t *testing.T) {
	db := setupTestDB(t)
	_, _, course := seedCatalog(t, db)
	student := seedStudent(t, db, "Mira Okafor", "mira@learnsphere.io", 0)
	enrollment := enroll(t, db, student.ID, course.ID)
	issuer := NewCertificateIssuer(db, NewEnrollmentManager(db))

	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("id = ?", enrollment.ID).UpdateColumn("progress", 99).Error)

	_, err := issuer.Issue(student.ID, course.ID, "A")
	assert.ErrorIs(t, err, ErrNotEligible)

	// Crossing to exactly 100 flips eligibility.
	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("id = ?", enrollment.ID).UpdateColumn("progress", 100).Error)

	cert, err := issuer.Issue(student.ID, course.ID, "A")
	require.NoError(t, err)
	assert.NotEmpty(t, cert.CertificateNumber)
}

func TestIssueNotEnrolled(t *testing.T) {
	db := setupTestDB(t)
	_, _, course := seedCatalog(t, db)
	student := seedStudent(t, db, "Mira Okafor", "mira@learnsphere.io", 0)

	_, err := NewCertificateIssuer(db, NewEnrollmentManager(db)).Issue(student.ID, course.ID, "A")
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestIssueTwiceReturnsExisting(t *testing.T) {
	db := setupTestDB(t)
	_, _, course := seedCatalog(t, db)
	student := seedStudent(t, db, "Mira Okafor", "mira@learnsphere.io", 0)
	completeEnrollment(t, db, student.ID, course.ID)
	issuer := NewCertificateIssuer(db, NewEnrollmentManager(db))

	first, err := issuer.Issue(student.ID, course.ID, "A")
	require.NoError(t, err)

	second, err := issuer.Issue(student.ID, course.ID, "B")
	assert.ErrorIs(t, err, ErrAlreadyIssued)
	require.NotNil(t, second)
	assert.Equal(t, first.CertificateNumber, second.CertificateNumber)
	assert.Equal(t, "A", second.Grade)

	var count int64
	require.NoError(t, db.Model(&courseModels.Certificate{}).
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// A certificate row inserted out of band stands in for a concurrent Issue
// that already won; the call must return it instead of minting another.
func TestIssueExistingCertificateWins(t *testing.T) {
	db := setupTestDB(t)
	_, _, course := seedCatalog(t, db)
	student := seedStudent(t, db, "Mira Okafor", "mira@learnsphere.io", 0)
	completeEnrollment(t, db, student.ID, course.ID)

	winner := courseModels.Certificate{
		CertificateNumber: "CERT-0F0F0F0F",
		UserID:            student.ID,
		CourseID:          course.ID,
		StudentName:       "Mira Okafor",
		CourseName:        course.Title,
		TeacherName:       "Dr. Ada Zewail",
		DepartmentName:    "Computer Science",
		Grade:             "A",
		IssuedAt:          time.Now(),
	}
	require.NoError(t, db.Create(&winner).Error)

	cert, err := NewCertificateIssuer(db, NewEnrollmentManager(db)).Issue(student.ID, course.ID, "B")
	assert.ErrorIs(t, err, ErrAlreadyIssued)
	require.NotNil(t, cert)
	assert.Equal(t, "CERT-0F0F0F0F", cert.CertificateNumber)
}

func TestIssueNotifyFailureDoesNotFailIssue(t *testing.T) {
	db := setupTestDB(t)
	_, _, course := seedCatalog(t, db)
	student := seedStudent(t, db, "Mira Okafor", "mira@learnsphere.io", 0)
	completeEnrollment(t, db, student.ID, course.ID)

	issuer := NewCertificateIssuer(db, NewEnrollmentManager(db))
	notified := ""
	issuer.Notify = func(cert *courseModels.Certificate, recipientEmail string) error {
		notified = recipientEmail
		return errors.New("smtp unreachable")
	}

	cert, err := issuer.Issue(student.ID, course.ID, "A")
	require.NoError(t, err)
	assert.NotNil(t, cert)
	assert.Equal(t, "mira@learnsphere.io", notified)
}
