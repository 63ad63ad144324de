package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ellavondegurechaff/progression/internal/config"
)

// NewApp builds the admin API with its middleware chain and routes.
func NewApp(s *Server) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Progression API",
		ServerHeader:          "Progression",
		ErrorHandler:          ErrorHandler,
		BodyLimit:             config.RequestBodyLimit,
		ReadTimeout:           config.ReadTimeout,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(LoggingMiddleware())

	setupRoutes(app, s)
	return app
}

func setupRoutes(app *fiber.App, s *Server) {
	app.Get("/health", HealthCheck(s))

	pts := app.Group("/points")
	pts.Post("/grant", GrantPoints(s))
	pts.Post("/batch", GrantPointsBatch(s))
	pts.Post("/reconcile/:user_id", Reconcile(s))

	users := app.Group("/users/:user_id")
	users.Get("/progress", GetProgress(s))
	users.Get("/history", History(s))
	users.Post("/level/ack", AcknowledgeLevel(s))
	users.Get("/badges", ListBadges(s))
	users.Get("/badges/pending", PendingBadges(s))
	users.Post("/badges/ack", AcknowledgeBadges(s))

	app.Post("/badges/recalculate", RecalculateBadges(s))
}
