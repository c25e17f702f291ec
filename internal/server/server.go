package server

import (
	"log"

	"github.com/besmartbusiness/lawyer-app/internal/bootstrap"
	"github.com/besmartbusiness/lawyer-app/internal/config"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		// Dictation chunks arrive base64-encoded in JSON bodies.
		BodyLimit: 25 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Uploaded dictation audio is served back for the transcription call.
	app.Static("/uploads", cfg.App.UploadDir)

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.DraftingController.RegisterRoutes(api)
	c.AnalysisController.RegisterRoutes(api)
	c.DictationController.RegisterRoutes(api)
	c.DocumentController.RegisterRoutes(api)
	c.RetrievalController.RegisterRoutes(api)

	c.PipelineHandler.RegisterRoutes(api)
}
