package walletRoutes

import (
	walletController "learnsphere/controllers/wallet"
	"learnsphere/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupWalletRoutes(app *fiber.App) {
	walletGroup := app.Group("/wallet")

	walletGroup.Get("/balance", middleware.JWTMiddleware, walletController.GetWalletBalance)
	walletGroup.Get("/leaderboard", middleware.JWTMiddleware, walletController.GetLeaderboard)
}
