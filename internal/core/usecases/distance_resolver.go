package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/domain"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/ports"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/pkg/metrics"
)

// DistanceResolver produces a distance/duration matrix between origins and
// destinations. It tries the routing engine first and degrades to the
// geometric estimate when the engine fails, provided the caller allows it.
//
// The resolver is a pure function of its inputs plus the state of the
// routing engine at call time; it holds no per-request state and is safe
// for concurrent use.
type DistanceResolver struct {
	remote    ports.RouteMatrixProvider
	geometric ports.RouteMatrixProvider
	events    ports.EventPublisher // optional, best-effort
}

// NewDistanceResolver creates a DistanceResolver. events may be nil.
func NewDistanceResolver(remote, geometric ports.RouteMatrixProvider, events ports.EventPublisher) *DistanceResolver {
	return &DistanceResolver{remote: remote, geometric: geometric, events: events}
}

// Resolve returns one DistanceResult per (origin, destination) pair, row per
// origin. All results in a response share the same Method: a remote failure
// with allowFallback recomputes every pair geometrically rather than mixing
// partial matrices.
func (r *DistanceResolver) Resolve(ctx context.Context, origins, destinations []domain.GeoPoint, allowFallback bool) ([][]domain.DistanceResult, error) {
	if len(origins) == 0 || len(destinations) == 0 {
		return nil, fmt.Errorf("origins and destinations must be non-empty: %w", domain.ErrInvalidInput)
	}
	for _, p := range origins {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("origin (%f, %f): %w", p.Lat, p.Lon, err)
		}
	}
	for _, p := range destinations {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("destination (%f, %f): %w", p.Lat, p.Lon, err)
		}
	}

	m, err := r.remote.Matrix(ctx, origins, destinations)
	if err == nil {
		results, convErr := buildResults(origins, destinations, m, domain.MethodRemote)
		if convErr == nil {
			metrics.RoutingRequests.WithLabelValues(string(domain.MethodRemote)).Add(float64(len(origins) * len(destinations)))
			return results, nil
		}
		err = convErr
	}

	if !allowFallback {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	slog.Warn("routing engine failed, using geometric fallback", "error", err)
	metrics.RoutingFallbacks.Inc()
	r.publishFallback(ctx, err, len(origins)*len(destinations))

	m, gerr := r.geometric.Matrix(ctx, origins, destinations)
	if gerr != nil {
		return nil, fmt.Errorf("%w: remote: %v, geometric: %v", domain.ErrDistanceUnavailable, err, gerr)
	}
	results, convErr := buildResults(origins, destinations, m, domain.MethodGeometric)
	if convErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDistanceUnavailable, convErr)
	}
	metrics.RoutingRequests.WithLabelValues(string(domain.MethodGeometric)).Add(float64(len(origins) * len(destinations)))
	return results, nil
}

// ResolvePair resolves a single origin/destination pair.
func (r *DistanceResolver) ResolvePair(ctx context.Context, origin, destination domain.GeoPoint, allowFallback bool) (*domain.DistanceResult, error) {
	rows, err := r.Resolve(ctx, []domain.GeoPoint{origin}, []domain.GeoPoint{destination}, allowFallback)
	if err != nil {
		return nil, err
	}
	return &rows[0][0], nil
}

func (r *DistanceResolver) publishFallback(ctx context.Context, cause error, pairs int) {
	if r.events == nil {
		return
	}
	ev := &ports.FallbackEvent{Time: time.Now().UTC(), Reason: cause.Error(), Pairs: pairs}
	if err := r.events.PublishFallback(ctx, ev); err != nil {
		slog.Debug("fallback event publish failed", "error", err)
	}
}

// buildResults checks the matrix shape against the requested pairs and tags
// every cell with its provenance.
func buildResults(origins, destinations []domain.GeoPoint, m *ports.Matrix, method domain.Method) ([][]domain.DistanceResult, error) {
	if m == nil || len(m.DistancesKm) != len(origins) {
		return nil, fmt.Errorf("matrix has %d rows, want %d", rowCount(m), len(origins))
	}
	if m.DurationsSeconds != nil && len(m.DurationsSeconds) != len(origins) {
		return nil, fmt.Errorf("duration matrix has %d rows, want %d", len(m.DurationsSeconds), len(origins))
	}

	results := make([][]domain.DistanceResult, len(origins))
	for i, o := range origins {
		if len(m.DistancesKm[i]) != len(destinations) {
			return nil, fmt.Errorf("matrix row %d has %d columns, want %d", i, len(m.DistancesKm[i]), len(destinations))
		}
		row := make([]domain.DistanceResult, len(destinations))
		for j, d := range destinations {
			row[j] = domain.DistanceResult{
				Origin:      o,
				Destination: d,
				DistanceKm:  m.DistancesKm[i][j],
				Method:      method,
			}
			if m.DurationsSeconds != nil && len(m.DurationsSeconds[i]) == len(destinations) {
				dur := m.DurationsSeconds[i][j]
				row[j].DurationSeconds = &dur
			}
		}
		results[i] = row
	}
	return results, nil
}

func rowCount(m *ports.Matrix) int {
	if m == nil {
		return 0
	}
	return len(m.DistancesKm)
}
