package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"labelbox/auth"
	"labelbox/config"
	"labelbox/handlers/api"
	"labelbox/middleware"
	"labelbox/storage"
	"labelbox/utils"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.toml")
	if err != nil {
		utils.Log.Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := storage.Open(context.Background(), cfg.Database.DSN)
	if err != nil {
		utils.Log.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	tokens := auth.NewTokenManager(cfg.JWT.Secret, auth.SessionTTL)

	app := fiber.New(fiber.Config{
		ErrorHandler: api.ErrorHandler,
	})

	// Add global middleware
	app.Use(recover.New()) // Recover from panics
	app.Use(logger.New())  // Request logging
	app.Use(helmet.New())  // Security headers

	// Initialize handlers
	authHandler := api.NewAuthHandler(storage.NewUserStorage(db), tokens)
	labelHandler := api.NewLabelHandler(storage.NewLabelStorage(db))

	app.Get("/", func(c *fiber.Ctx) error {
		return api.Respond(c, fiber.StatusOK, fiber.Map{"greet": "Hello"})
	})

	// Auth routes
	authRoutes := app.Group("/auth")
	authRoutes.Post("/sign-up", authHandler.HandleSignUp)
	authRoutes.Post("/sign-in", authHandler.HandleSignIn)
	authRoutes.Get("/sign-out", middleware.RequireSession(tokens), authHandler.HandleSignOut)

	// Label routes, all behind the session gate
	labels := app.Group("/labels", middleware.RequireSession(tokens))
	labels.Get("/", labelHandler.GetLabels)
	labels.Post("/", labelHandler.CreateLabel)
	labels.Get("/:id", labelHandler.GetLabel)
	labels.Put("/:id", labelHandler.UpdateLabel)
	labels.Delete("/:id", labelHandler.DeleteLabel)

	utils.Log.Info("Starting server on port %d...", cfg.Server.Port)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		utils.Log.Error("Error starting server: %v", err)
	}
}
