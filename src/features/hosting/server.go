package hosting

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/contre95/discogsmeta/src/features/config"
	"github.com/contre95/discogsmeta/src/features/metadata"
	"github.com/contre95/discogsmeta/src/features/metrics"
	"github.com/gofiber/fiber/v2"
)

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	port uint32
}

// NewServer creates a new HTTP server. A nil metrics handler leaves the metrics routes out.
func NewServer(cfg *config.Manager, metadataService *metadata.Service, metricsHandler *metrics.Handler) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				slog.Error("Internal Server Error", "error", err)
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
		AppName:               "Discogsmeta",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
		BodyLimit:             4 * 1024 * 1024,
	})

	// Add middleware
	app.Use(RequestIDMiddleware())
	app.Use(LogAllRequestsMiddleware())

	// Resolutions only; the image proxy streams its body after the handler returns
	requestTimeout := time.Duration(cfg.Get().Server.RequestTimeoutSeconds) * time.Second
	app.Use("/api/metadata/albums", RequestTimeoutMiddleware(requestTimeout))
	app.Use("/api/metadata/artists", RequestTimeoutMiddleware(requestTimeout))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	config.RegisterRoutes(app, cfg)
	metadata.RegisterRoutes(app, metadataService)
	if metricsHandler != nil && cfg.Get().Metrics.Enabled {
		metrics.RegisterRoutes(app, metricsHandler, cfg.Get().Metrics.Path)
	}

	return &Server{app: app, port: cfg.Get().Server.Port}
}

// App returns the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	slog.Info("Starting HTTP server", "port", s.port)
	return s.app.Listen(":" + fmt.Sprint(s.port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
