package ports

import (
	"context"
	"time"

	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/domain"
)

// Matrix is a distance/duration matrix: one row per origin, one column per
// destination. DurationsSeconds is nil when the producing strategy cannot
// estimate travel time.
type Matrix struct {
	DistancesKm      [][]float64
	DurationsSeconds [][]float64
}

// RouteMatrixProvider computes distances between many origin/destination
// pairs. Implementations are the remote routing engine and the geometric
// (haversine) estimator.
type RouteMatrixProvider interface {
	Matrix(ctx context.Context, origins, destinations []domain.GeoPoint) (*Matrix, error)
}

// CacheService provides read-through caching. Every caller must be correct
// when the cache is cold or absent; it is a latency optimisation only.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// FallbackEvent describes a degradation of the routing engine.
type FallbackEvent struct {
	Time   time.Time `json:"time"`
	Reason string    `json:"reason"`
	Pairs  int       `json:"pairs"`
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishFallback(ctx context.Context, ev *FallbackEvent) error
}
