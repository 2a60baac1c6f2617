package ports

import (
	"context"

	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/domain"
)

// BusRepository persists bus lines.
type BusRepository interface {
	Upsert(ctx context.Context, bus *domain.Bus) error
	UpsertBatch(ctx context.Context, buses []domain.Bus) error
	GetByID(ctx context.Context, id string) (*domain.Bus, error)
	List(ctx context.Context) ([]domain.Bus, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Bus, error)
}

// StopRepository persists stops.
type StopRepository interface {
	Upsert(ctx context.Context, stop *domain.Stop) error
	UpsertBatch(ctx context.Context, stops []domain.Stop) error
	GetByID(ctx context.Context, id string) (*domain.Stop, error)
	List(ctx context.Context) ([]domain.Stop, error)
	FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.Stop, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Stop, error)
}

// PlacementRepository persists the ordered stop sequences of buses.
type PlacementRepository interface {
	UpsertBatch(ctx context.Context, placements []domain.StopPlacement) error
	// ListByBus returns placements for one direction ordered by stop_order
	// ascending, with the Stop field populated.
	ListByBus(ctx context.Context, busID string, direction domain.Direction) ([]domain.StopPlacement, error)
}
