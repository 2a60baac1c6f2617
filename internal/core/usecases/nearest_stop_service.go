package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/domain"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/ports"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/pkg/geospatial"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/pkg/metrics"
)

// NearestOptions tunes candidate pre-filtering and threshold clamping.
type NearestOptions struct {
	CandidateLimit    int
	DefaultThresholdM float64
	MinThresholdM     float64
	MaxThresholdM     float64
	AverageSpeedKmh   float64
}

// NearestStopService finds the stop closest to a GPS fix.
//
// Candidates are pre-filtered by cheap geometric distance before the
// routing engine is consulted, bounding the number of expensive calls. A
// geometrically farther stop can in principle be road-closer (one-way
// streets); the cap trades that edge case for bounded cost.
type NearestStopService struct {
	stops    ports.StopRepository
	resolver *DistanceResolver
	cache    ports.CacheService
	opts     NearestOptions
}

// NewNearestStopService creates a NearestStopService. cache may be nil.
func NewNearestStopService(stops ports.StopRepository, resolver *DistanceResolver, cache ports.CacheService, opts NearestOptions) *NearestStopService {
	if opts.CandidateLimit <= 0 {
		opts.CandidateLimit = 10
	}
	return &NearestStopService{stops: stops, resolver: resolver, cache: cache, opts: opts}
}

// FindNearest returns the closest stop to (lat, lon). thresholdMeters <= 0
// selects the configured default; out-of-range values are clamped rather
// than rejected. The best candidate is always returned together with a
// within_threshold flag, so an out-of-range nearest point is the caller's
// decision, not an error.
func (s *NearestStopService) FindNearest(ctx context.Context, lat, lon, thresholdMeters float64) (*domain.NearestStopResult, error) {
	fix := domain.GeoPoint{Lat: lat, Lon: lon}
	if err := fix.Validate(); err != nil {
		return nil, fmt.Errorf("fix (%f, %f): %w", lat, lon, err)
	}

	threshold := s.clampThreshold(thresholdMeters)

	cacheKey := fmt.Sprintf("nearest:%.4f:%.4f:%.0f", lat, lon, threshold)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var res domain.NearestStopResult
			if err := json.Unmarshal(data, &res); err == nil {
				metrics.CacheHits.WithLabelValues("nearest").Inc()
				return &res, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("nearest").Inc()
	}

	stops, err := s.stops.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stops: %w", err)
	}
	if len(stops) == 0 {
		return nil, fmt.Errorf("no stops available: %w", domain.ErrNotFound)
	}

	candidates := rankCandidates(fix, stops, s.opts.CandidateLimit)

	points := make([]domain.GeoPoint, len(candidates))
	for i, c := range candidates {
		points[i] = c.Location
	}

	rows, err := s.resolver.Resolve(ctx, []domain.GeoPoint{fix}, points, true)
	if err != nil {
		return nil, err
	}

	best := 0
	for j := 1; j < len(rows[0]); j++ {
		if rows[0][j].DistanceKm < rows[0][best].DistanceKm {
			best = j
		}
	}
	chosen := rows[0][best]

	res := &domain.NearestStopResult{
		Stop:            candidates[best],
		DistanceKm:      chosen.DistanceKm,
		Method:          chosen.Method,
		WithinThreshold: chosen.DistanceKm*1000 <= threshold,
		ThresholdKm:     threshold / 1000,
	}
	res.DurationSeconds, res.DurationEstimated = s.duration(chosen)

	if s.cache != nil {
		if data, err := json.Marshal(res); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 60)
		}
	}

	return res, nil
}

// duration prefers the engine-reported travel time and otherwise derives a
// crude estimate from the configured average speed. The estimate flag keeps
// the two from being presented as equal-quality data.
func (s *NearestStopService) duration(r domain.DistanceResult) (*float64, bool) {
	if r.DurationSeconds != nil {
		return r.DurationSeconds, false
	}
	if s.opts.AverageSpeedKmh <= 0 {
		return nil, false
	}
	est := r.DistanceKm / s.opts.AverageSpeedKmh * 3600
	return &est, true
}

func (s *NearestStopService) clampThreshold(meters float64) float64 {
	if meters <= 0 {
		meters = s.opts.DefaultThresholdM
	}
	if s.opts.MinThresholdM > 0 && meters < s.opts.MinThresholdM {
		meters = s.opts.MinThresholdM
	}
	if s.opts.MaxThresholdM > 0 && meters > s.opts.MaxThresholdM {
		meters = s.opts.MaxThresholdM
	}
	return meters
}

// rankCandidates sorts stops by great-circle distance to the fix, ascending,
// and keeps the top k. Ranking is by slice index, so equidistant stops keep
// input order and duplicate IDs cannot collapse.
func rankCandidates(fix domain.GeoPoint, stops []domain.Stop, k int) []domain.Stop {
	dist := make([]float64, len(stops))
	idx := make([]int, len(stops))
	for i, st := range stops {
		dist[i] = geospatial.HaversineKm(fix.Lat, fix.Lon, st.Location.Lat, st.Location.Lon)
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return dist[idx[a]] < dist[idx[b]]
	})

	if len(idx) > k {
		idx = idx[:k]
	}
	ranked := make([]domain.Stop, len(idx))
	for i, j := range idx {
		ranked[i] = stops[j]
	}
	return ranked
}
