package controllers

import (
	"errors"

	"learnsphere/database"
	"learnsphere/middleware"
	"learnsphere/models"
	"learnsphere/services"

	"github.com/gofiber/fiber/v2"
)

// UnlockVideo spends coins to permanently unlock one gated video
func UnlockVideo(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	videoID := c.Locals("videoID").(int)

	db := database.Database.Db
	ledger := services.NewRewardLedger(db)
	gate := services.NewUnlockGate(db, ledger)

	result, err := gate.Unlock(userID, uint(courseID), uint(videoID))
	if err != nil {
		var partial *services.PartialWriteError
		switch {
		case errors.Is(err, services.ErrVideoNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
		case errors.Is(err, services.ErrInsufficientBalance):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
				"You need at least 10 coins to unlock this video. Take a quiz to earn more coins!", nil)
		case errors.As(err, &partial):
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false,
				"Unlock could not be completed (step \""+partial.Step+"\" failed). Please retry.", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unlock video!", nil)
		}
	}

	balance, _ := ledger.Balance(userID)

	message := "Video unlocked! Coins deducted."
	if result.AlreadyUnlocked {
		message = "Video is already unlocked."
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"already_unlocked": result.AlreadyUnlocked,
		"coins_charged":    result.CoinsCharged,
		"balance":          balance,
	})
}
