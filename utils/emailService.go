package utils

import (
	"fmt"
	"log"
	"net/http"

	"learnsphere/config"
	courseModels "learnsphere/models/course"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends a single HTML email through SendGrid.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("--- Skipping email to %s (no SendGrid key configured) ---", toEmail)
		return nil
	}

	from := sgmail.NewEmail("LearnSphere", config.AppConfig.EmailSender)
	to := sgmail.NewEmail(toName, toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid responded with status %d", resp.StatusCode)
	}
	return nil
}

// SendCertificateIssuedEmail notifies a student that their course certificate
// is ready for download.
func SendCertificateIssuedEmail(cert *courseModels.Certificate, recipientEmail string) error {
	downloadURL := fmt.Sprintf("%s/certificate/%s/download", config.AppConfig.AppBaseURL, cert.CertificateNumber)

	body := getEmailTemplate("Your Certificate Is Ready!", fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on completing <strong>%s</strong>! Your certificate of achievement has been issued.</p>
		<div class="info-box">
			Certificate Number: <strong>%s</strong><br>
			Grade: <strong>%s</strong><br>
			Instructor: %s
		</div>
		<a class="btn" href="%s">Download Certificate</a>
	`, cert.StudentName, cert.CourseName, cert.CertificateNumber, cert.Grade, cert.TeacherName, downloadURL))

	return SendEmail(cert.StudentName, recipientEmail, "Certificate of Achievement - "+cert.CourseName, body)
}

// HTML wrapper shared by all outgoing mail
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1E2A5A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1E2A5A; line-height: 1.6; }
			.content h2 { color: #1E2A5A; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #F5A623; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #F5A623; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LEARNSPHERE</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 LearnSphere. All rights reserved.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}
