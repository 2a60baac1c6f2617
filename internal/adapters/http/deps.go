package http

import (
	"github.com/nats-io/nats.go"

	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/adapters/postgres"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/adapters/valkey"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Stops    *usecases.StopService
	Buses    *usecases.BusService
	Nearest  *usecases.NearestStopService
	Journeys *usecases.JourneyService
	Resolver *usecases.DistanceResolver
	NATS     *nats.Conn
	DB       *postgres.DB
	Cache    *valkey.Cache
}
