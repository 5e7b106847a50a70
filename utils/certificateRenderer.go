package utils

import (
	"fmt"

	courseModels "learnsphere/models/course"
)

// RenderCertificateHTML turns an issued certificate record into the printable
// A4-landscape document. The record is the source of truth; the document is
// regenerated on every request and never stored.
func RenderCertificateHTML(cert *courseModels.Certificate) []byte {
	issued := cert.IssuedAt.Format("January 2, 2006")

	html := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>Certificate of Achievement</title>
	<link href="https://fonts.googleapis.com/css2?family=Playfair+Display:wght@400;700;900&family=Inter:wght@300;400;500;600;700&display=swap" rel="stylesheet">
	<style>
		@page { margin: 0; size: A4 landscape; }
		* { margin: 0; padding: 0; box-sizing: border-box; }
		body {
			font-family: 'Inter', sans-serif;
			width: 297mm; height: 210mm;
			background: linear-gradient(135deg, #FFF9E6 0%%, #FFF3CD 100%%);
		}
		.certificate-container {
			width: 100%%; height: 100%%;
			border: 15px solid transparent;
			border-image: linear-gradient(45deg, #FFD700, #FFA500, #FFD700) 1;
			padding: 40px; background: white; text-align: center;
		}
		.title { font-family: 'Playfair Display', serif; font-size: 52px; font-weight: 900; color: #1E2A5A; margin-top: 30px; }
		.subtitle { font-size: 18px; color: #888; letter-spacing: 4px; text-transform: uppercase; margin-top: 10px; }
		.student-name { font-family: 'Playfair Display', serif; font-size: 44px; color: #B8860B; margin: 40px 0 10px; border-bottom: 2px solid #FFD700; display: inline-block; padding: 0 40px 10px; }
		.course-name { font-size: 26px; font-weight: 600; color: #1E2A5A; margin-top: 20px; }
		.detail { font-size: 16px; color: #555; margin-top: 10px; }
		.grade { font-size: 22px; font-weight: 700; color: #1E2A5A; margin-top: 20px; }
		.footer { display: flex; justify-content: space-between; margin-top: 60px; padding: 0 80px; font-size: 14px; color: #555; }
		.cert-number { letter-spacing: 2px; }
	</style>
</head>
<body>
	<div class="certificate-container">
		<div class="title">Certificate of Achievement</div>
		<div class="subtitle">This certificate is proudly presented to</div>
		<div><span class="student-name">%s</span></div>
		<div class="subtitle">for successfully completing</div>
		<div class="course-name">%s</div>
		<div class="detail">Department of %s</div>
		<div class="grade">Grade: %s</div>
		<div class="footer">
			<div>Instructor: %s</div>
			<div>Issued: %s</div>
			<div class="cert-number">%s</div>
		</div>
	</div>
</body>
</html>`,
		cert.StudentName,
		cert.CourseName,
		cert.DepartmentName,
		cert.Grade,
		cert.TeacherName,
		issued,
		cert.CertificateNumber,
	)

	return []byte(html)
}
