package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/domain"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/ports"
)

// BusService handles bus-line business logic.
type BusService struct {
	buses      ports.BusRepository
	placements ports.PlacementRepository
	cache      ports.CacheService
}

// NewBusService creates a new BusService.
func NewBusService(buses ports.BusRepository, placements ports.PlacementRepository, cache ports.CacheService) *BusService {
	return &BusService{buses: buses, placements: placements, cache: cache}
}

// List returns all bus lines.
func (s *BusService) List(ctx context.Context) ([]domain.Bus, error) {
	return s.buses.List(ctx)
}

// GetByID returns a single bus line.
func (s *BusService) GetByID(ctx context.Context, id string) (*domain.Bus, error) {
	return s.buses.GetByID(ctx, id)
}

// Search performs fuzzy search on bus names.
func (s *BusService) Search(ctx context.Context, query string, limit int) ([]domain.Bus, error) {
	if query == "" {
		return nil, fmt.Errorf("search query must not be empty: %w", domain.ErrInvalidInput)
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.buses.Search(ctx, query, limit)
}

// StopsForBus returns the ordered stop sequence of a bus for one direction.
func (s *BusService) StopsForBus(ctx context.Context, busID string, direction domain.Direction) ([]domain.StopPlacement, error) {
	if busID == "" {
		return nil, fmt.Errorf("bus id is required: %w", domain.ErrInvalidInput)
	}

	cacheKey := fmt.Sprintf("buses:stops:%s:%s", busID, direction)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var placements []domain.StopPlacement
			if err := json.Unmarshal(data, &placements); err == nil {
				return placements, nil
			}
		}
	}

	placements, err := s.placements.ListByBus(ctx, busID, direction)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(placements); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 600)
		}
	}

	return placements, nil
}
