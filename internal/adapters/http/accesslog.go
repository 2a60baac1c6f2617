package http

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// slowRequestThreshold flags requests that likely waited on the routing
// engine; those handlers have generous timeouts, so latency is the only
// early signal.
const slowRequestThreshold = 10 * time.Second

// AccessLogMiddleware emits one structured log line per request.
func AccessLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		latency := time.Since(start)

		rid, _ := c.Locals("requestid").(string)
		attrs := []slog.Attr{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.Int("bytes_out", len(c.Response().Body())),
			slog.String("ip", c.IP()),
			slog.String("request_id", rid),
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}

		level := slog.LevelInfo
		switch {
		case err != nil || status >= 500:
			level = slog.LevelError
		case status >= 400 || latency > slowRequestThreshold:
			level = slog.LevelWarn
		}

		slog.LogAttrs(c.UserContext(), level, c.Method()+" "+c.Path(), attrs...)
		return err
	}
}
