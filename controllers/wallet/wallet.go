package walletController

import (
	"learnsphere/database"
	"learnsphere/middleware"
	"learnsphere/models"
	"learnsphere/services"

	"github.com/gofiber/fiber/v2"
)

// GetWalletBalance returns user's current coin balance
func GetWalletBalance(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	ledger := services.NewRewardLedger(database.Database.Db)
	balance, err := ledger.Balance(userId)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet balance fetched!", fiber.Map{
		"balance":  balance,
		"currency": "coins",
	})
}

// GetLeaderboard returns the top coin holders
func GetLeaderboard(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	type LeaderboardEntry struct {
		ID           uint   `json:"id"`
		Name         string `json:"name"`
		ProfileImage string `json:"profile_image"`
		Coins        uint   `json:"coins"`
	}

	var entries []LeaderboardEntry
	if err := database.Database.Db.Model(&models.User{}).
		Select("id, name, profile_image, coins").
		Where("is_deleted = false AND role = ?", "STUDENT").
		Order("coins desc").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch leaderboard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Leaderboard fetched!", fiber.Map{
		"leaderboard": entries,
	})
}
