package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on
// endpoint. Adds sensible defaults if not already set by the handler.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != "GET" {
			return err
		}

		// Don't override if already set
		if existing := c.Get("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10"

		case path == "/metrics":
			ttl = "no-cache"

		case strings.HasPrefix(path, "/v1/stops/nearest"):
			// Short: nearest results depend on the caller's GPS fix
			ttl = "public, max-age=60"

		case strings.HasPrefix(path, "/v1/stops/nearby"),
			strings.HasPrefix(path, "/v1/stops/search"):
			ttl = "public, max-age=300"

		case strings.HasPrefix(path, "/v1/distance"):
			ttl = "public, max-age=60"

		case strings.Contains(path, "/journey-length"):
			ttl = "public, max-age=300"

		case strings.HasPrefix(path, "/v1/buses"):
			ttl = "public, max-age=600"

		case strings.HasPrefix(path, "/v1/"):
			ttl = "public, max-age=300"
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}

		return err
	}
}
