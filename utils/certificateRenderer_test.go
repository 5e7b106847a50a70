package utils

import (
	"testing"
	"time"

	courseModels "learnsphere/models/course"

	"github.com/stretchr/testify/assert"
)

func TestRenderCertificateHTML(t *testing.T) {
	cert := &courseModels.Certificate{
		CertificateNumber: "CERT-1A2B3C4D",
		StudentName:       "Mira Okafor",
		CourseName:        "Distributed Systems 101",
		TeacherName:       "Dr. Ada Zewail",
		DepartmentName:    "Computer Science",
		Grade:             "A",
		IssuedAt:          time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
	}

	html := string(RenderCertificateHTML(cert))

	assert.Contains(t, html, "Mira Okafor")
	assert.Contains(t, html, "Distributed Systems 101")
	assert.Contains(t, html, "Dr. Ada Zewail")
	assert.Contains(t, html, "Computer Science")
	assert.Contains(t, html, "CERT-1A2B3C4D")
	assert.Contains(t, html, "March 14, 2026")
	// Sprintf must not leave stray verbs behind from CSS percent signs.
	assert.NotContains(t, html, "%!")
}
