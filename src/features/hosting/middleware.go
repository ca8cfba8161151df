package hosting

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/google/uuid"
)

// HeaderRequestID carries the id used to correlate a request with its log lines.
const HeaderRequestID = "X-Request-ID"

var quietPaths = map[string]bool{"/health": true, "/metrics": true}

// RequestIDMiddleware keeps the caller's request id or assigns a new one and echoes it back.
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals("requestID", id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

// RequestTimeoutMiddleware gives every request a context that expires after d, so catalog calls
// stop once the request is abandoned. Handlers see context.DeadlineExceeded. A zero d disables it.
func RequestTimeoutMiddleware(d time.Duration) fiber.Handler {
	if d <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return timeout.NewWithContext(func(c *fiber.Ctx) error {
		return c.Next()
	}, d)
}

// LogAllRequestsMiddleware logs every request with its status and duration
func LogAllRequestsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()
		requestID, _ := c.Locals("requestID").(string)

		switch {
		case status >= 500:
			slog.Error("HTTP request",
				"request_id", requestID,
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"duration", duration.String(),
				"error", err,
			)
		case status >= 400:
			slog.Warn("HTTP request",
				"request_id", requestID,
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"duration", duration.String(),
			)
		case !quietPaths[c.Path()]:
			slog.Debug("HTTP request",
				"request_id", requestID,
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"duration", duration.String(),
			)
		}
		return err
	}
}
