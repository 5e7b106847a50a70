package controllers

import (
	"errors"

	"learnsphere/database"
	"learnsphere/middleware"
	"learnsphere/models"
	courseModels "learnsphere/models/course"
	"learnsphere/services"
	"learnsphere/utils"
	courseValidator "learnsphere/validators/course"

	"github.com/gofiber/fiber/v2"
)

// GenerateCertificate issues the certificate for a fully completed course
func GenerateCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedCertificate").(*courseValidator.GenerateCertificateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	issuer := services.NewCertificateIssuer(db, services.NewEnrollmentManager(db))
	issuer.Notify = utils.SendCertificateIssuedEmail

	cert, err := issuer.Issue(userID, uint(courseID), reqData.Grade)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotEnrolled):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
		case errors.Is(err, services.ErrNotEligible):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
				"You must complete 100% of the course to unlock the certificate.", nil)
		case errors.Is(err, services.ErrAlreadyIssued):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already issued!", fiber.Map{
				"certificate": cert,
			})
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate certificate!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate generated successfully!", cert)
}

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ?", userID).
		Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
		"total":        len(certificates),
	})
}

// DownloadCertificate renders the certificate document from its immutable
// record. The document is regenerated on every request, never cached.
func DownloadCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	number := c.Locals("certificateNumber").(string)

	var cert courseModels.Certificate
	if err := database.Database.Db.Where("certificate_number = ?", number).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	// Only the certificate owner may download it
	if cert.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this certificate!", nil)
	}

	c.Type("html")
	return c.Send(utils.RenderCertificateHTML(&cert))
}
