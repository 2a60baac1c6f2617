package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nats-io/nats.go"

	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/adapters/http"
	natsadapter "github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/adapters/nats"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/adapters/postgres"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/adapters/routing"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/adapters/valkey"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/ports"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/usecases"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/pkg/config"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/pkg/logging"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("busfinder-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup("busfinder-api", logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	go db.ReportPoolMetrics(ctx, 15*time.Second)

	// Cache
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
		cache = nil
	} else {
		defer cache.Close()
	}

	// NATS (optional, degradation events only)
	var events ports.EventPublisher
	nc, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		events = nc
		defer nc.Close()
	}

	// Repos
	busRepo := postgres.NewBusRepo(db)
	stopRepo := postgres.NewStopRepo(db)
	placementRepo := postgres.NewPlacementRepo(db)

	// Distance strategies
	engine := routing.NewOSRMClient(cfg.Routing.BaseURL, cfg.Routing.Profile, cfg.Routing.Timeout())
	geometric := routing.NewGeometricProvider()
	resolver := usecases.NewDistanceResolver(engine, geometric, events)

	// Use cases
	var cacheSvc ports.CacheService
	if cache != nil {
		cacheSvc = cache
	}
	stopSvc := usecases.NewStopService(stopRepo, cacheSvc)
	busSvc := usecases.NewBusService(busRepo, placementRepo, cacheSvc)
	nearestSvc := usecases.NewNearestStopService(stopRepo, resolver, cacheSvc, usecases.NearestOptions{
		CandidateLimit:    cfg.Routing.CandidateLimit,
		DefaultThresholdM: cfg.Routing.DefaultThresholdM,
		MinThresholdM:     cfg.Routing.MinThresholdM,
		MaxThresholdM:     cfg.Routing.MaxThresholdM,
		AverageSpeedKmh:   cfg.Routing.AverageSpeedKmh,
	})
	journeySvc := usecases.NewJourneyService(busRepo, placementRepo, resolver, cacheSvc, cfg.Routing.AverageSpeedKmh)

	var natsConn *nats.Conn
	if nc != nil {
		natsConn = nc.Conn()
	}

	deps := &http.Dependencies{
		Stops:    stopSvc,
		Buses:    busSvc,
		Nearest:  nearestSvc,
		Journeys: journeySvc,
		Resolver: resolver,
		NATS:     natsConn,
		DB:       db,
		Cache:    cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024,
		AppName:      "Bus Route Finder API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
