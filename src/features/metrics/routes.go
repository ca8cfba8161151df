package metrics

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the metrics routes with the Fiber app. path is where Prometheus scrapes.
func RegisterRoutes(app *fiber.App, handler *Handler, path string) {
	app.Get(path, handler.Exposition())

	api := app.Group("/api/metrics")
	api.Get("/overview", handler.GetMetricsOverview)
}
