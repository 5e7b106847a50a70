package main

import (
	"log"

	"learnsphere/config"
	"learnsphere/database"
	catalogRoutes "learnsphere/routers/catalogRoutes"
	courseRoutes "learnsphere/routers/courseRoutes"
	walletRoutes "learnsphere/routers/walletRoutes"
	"learnsphere/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Nightly reconciliation of enrollment progress
	utils.InitializeProgressScheduler()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	courseRoutes.SetupCourseRoutes(app)
	walletRoutes.SetupWalletRoutes(app)
	catalogRoutes.SetupCatalogRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
