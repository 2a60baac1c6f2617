package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"

	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/pkg/metrics"
)

// SetupRoutes registers all REST routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout, fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// REST API v1. The 45s ceiling leaves room for the routing engine's own
	// 30s timeout plus the fallback pass.
	v1 := app.Group("/v1")
	v1.Get("/stops/nearest", timeout.NewWithContext(NearestStopHandler(deps), 45*time.Second))
	v1.Get("/stops/nearby", timeout.NewWithContext(NearbyStopsHandler(deps), 15*time.Second))
	v1.Get("/stops/search", timeout.NewWithContext(SearchStopsHandler(deps), 15*time.Second))
	v1.Get("/stops/:id", timeout.NewWithContext(GetStopHandler(deps), 15*time.Second))
	v1.Get("/buses", timeout.NewWithContext(ListBusesHandler(deps), 15*time.Second))
	v1.Get("/buses/search", timeout.NewWithContext(SearchBusesHandler(deps), 15*time.Second))
	v1.Get("/buses/:id", timeout.NewWithContext(GetBusHandler(deps), 15*time.Second))
	v1.Get("/buses/:id/stops", timeout.NewWithContext(BusStopsHandler(deps), 15*time.Second))
	v1.Get("/buses/:id/journey-length", timeout.NewWithContext(JourneyLengthHandler(deps), 120*time.Second))
	v1.Get("/distance", timeout.NewWithContext(DistanceHandler(deps), 45*time.Second))
}
