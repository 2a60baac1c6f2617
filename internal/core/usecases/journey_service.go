package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/domain"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/ports"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/pkg/metrics"
)

// JourneyService measures the on-route length of a journey between two stop
// orders on a bus line.
type JourneyService struct {
	buses           ports.BusRepository
	placements      ports.PlacementRepository
	resolver        *DistanceResolver
	cache           ports.CacheService
	averageSpeedKmh float64
}

// NewJourneyService creates a JourneyService. cache may be nil.
func NewJourneyService(buses ports.BusRepository, placements ports.PlacementRepository, resolver *DistanceResolver, cache ports.CacheService, averageSpeedKmh float64) *JourneyService {
	return &JourneyService{
		buses:           buses,
		placements:      placements,
		resolver:        resolver,
		cache:           cache,
		averageSpeedKmh: averageSpeedKmh,
	}
}

// Measure sums consecutive-pair distances over every adjacent placement
// pair whose lower order is >= boardingOrder and upper order is <=
// alightingOrder. Segments that fell back to the geometric estimate still
// contribute their distance; the aggregate is marked low-confidence.
func (s *JourneyService) Measure(ctx context.Context, busID string, direction domain.Direction, boardingOrder, alightingOrder int) (*domain.JourneyLength, error) {
	if busID == "" {
		return nil, fmt.Errorf("bus id is required: %w", domain.ErrInvalidInput)
	}
	if boardingOrder >= alightingOrder {
		return nil, fmt.Errorf("boarding order %d must be before alighting order %d: %w",
			boardingOrder, alightingOrder, domain.ErrInvalidRouteRange)
	}

	cacheKey := fmt.Sprintf("journey:%s:%s:%d:%d", busID, direction, boardingOrder, alightingOrder)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var jl domain.JourneyLength
			if err := json.Unmarshal(data, &jl); err == nil {
				metrics.CacheHits.WithLabelValues("journey").Inc()
				return &jl, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("journey").Inc()
	}

	// The repo maps missing rows to ErrNotFound; transient failures pass
	// through so they surface as 5xx, not 404.
	if _, err := s.buses.GetByID(ctx, busID); err != nil {
		return nil, fmt.Errorf("journey for bus %s: %w", busID, err)
	}

	placements, err := s.placements.ListByBus(ctx, busID, direction)
	if err != nil {
		return nil, fmt.Errorf("list placements for bus %s: %w", busID, err)
	}

	from, to := -1, -1
	for i, p := range placements {
		if p.StopOrder == boardingOrder {
			from = i
		}
		if p.StopOrder == alightingOrder {
			to = i
		}
	}
	if from == -1 || to == -1 || from >= to {
		return nil, fmt.Errorf("orders %d-%d not on bus %s (%s): %w",
			boardingOrder, alightingOrder, busID, direction, domain.ErrInvalidRouteRange)
	}

	jl := &domain.JourneyLength{
		BusID:          busID,
		Direction:      direction,
		BoardingOrder:  boardingOrder,
		AlightingOrder: alightingOrder,
	}

	var durationTotal float64
	for i := from; i < to; i++ {
		fromStop, toStop := placements[i].Stop, placements[i+1].Stop
		if fromStop == nil || toStop == nil {
			return nil, fmt.Errorf("placement for bus %s missing stop data", busID)
		}

		res, err := s.resolver.ResolvePair(ctx, fromStop.Location, toStop.Location, true)
		if err != nil {
			return nil, err
		}

		jl.Segments = append(jl.Segments, domain.JourneySegment{
			From:       *fromStop,
			To:         *toStop,
			DistanceKm: res.DistanceKm,
			Method:     res.Method,
		})
		jl.TotalDistanceKm += res.DistanceKm
		if res.Method == domain.MethodGeometric {
			jl.LowConfidence = true
		}

		if res.DurationSeconds != nil {
			durationTotal += *res.DurationSeconds
		} else if s.averageSpeedKmh > 0 {
			durationTotal += res.DistanceKm / s.averageSpeedKmh * 3600
			jl.DurationEstimated = true
		}
	}
	if durationTotal > 0 {
		jl.DurationSeconds = &durationTotal
	}

	if s.cache != nil {
		if data, err := json.Marshal(jl); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return jl, nil
}
