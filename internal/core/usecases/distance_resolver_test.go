package usecases_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/adapters/routing"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/domain"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/ports"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/usecases"
)

// --- Mock matrix provider ---

type mockMatrixProvider struct {
	matrixFn func(ctx context.Context, origins, destinations []domain.GeoPoint) (*ports.Matrix, error)
	calls    int
}

func (m *mockMatrixProvider) Matrix(ctx context.Context, origins, destinations []domain.GeoPoint) (*ports.Matrix, error) {
	m.calls++
	if m.matrixFn != nil {
		return m.matrixFn(ctx, origins, destinations)
	}
	return nil, errors.New("no matrix configured")
}

func fixedMatrix(distanceKm, durationSeconds float64) func(ctx context.Context, origins, destinations []domain.GeoPoint) (*ports.Matrix, error) {
	return func(ctx context.Context, origins, destinations []domain.GeoPoint) (*ports.Matrix, error) {
		distances := make([][]float64, len(origins))
		durations := make([][]float64, len(origins))
		for i := range origins {
			distances[i] = make([]float64, len(destinations))
			durations[i] = make([]float64, len(destinations))
			for j := range destinations {
				distances[i][j] = distanceKm
				durations[i][j] = durationSeconds
			}
		}
		return &ports.Matrix{DistancesKm: distances, DurationsSeconds: durations}, nil
	}
}

type mockPublisher struct {
	events []*ports.FallbackEvent
}

func (m *mockPublisher) PublishFallback(ctx context.Context, ev *ports.FallbackEvent) error {
	m.events = append(m.events, ev)
	return nil
}

var (
	dhakaCenter = domain.GeoPoint{Lat: 23.8103, Lon: 90.4125}
	dhakaWest   = domain.GeoPoint{Lat: 23.7808, Lon: 90.2792}
)

// --- Tests ---

func TestResolve_RemoteSuccess(t *testing.T) {
	remote := &mockMatrixProvider{matrixFn: fixedMatrix(3.2, 480)}
	r := usecases.NewDistanceResolver(remote, routing.NewGeometricProvider(), nil)

	rows, err := r.Resolve(context.Background(), []domain.GeoPoint{dhakaCenter}, []domain.GeoPoint{dhakaWest, dhakaCenter}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || len(rows[0]) != 2 {
		t.Fatalf("expected 1x2 matrix, got %dx%d", len(rows), len(rows[0]))
	}
	for _, res := range rows[0] {
		if res.Method != domain.MethodRemote {
			t.Errorf("expected method remote, got %s", res.Method)
		}
		if res.DurationSeconds == nil || *res.DurationSeconds != 480 {
			t.Errorf("expected duration 480, got %v", res.DurationSeconds)
		}
		if res.DistanceKm != 3.2 {
			t.Errorf("expected 3.2 km, got %f", res.DistanceKm)
		}
	}
}

func TestResolve_FallbackOnRemoteFailure(t *testing.T) {
	remote := &mockMatrixProvider{}
	pub := &mockPublisher{}
	r := usecases.NewDistanceResolver(remote, routing.NewGeometricProvider(), pub)

	rows, err := r.Resolve(context.Background(), []domain.GeoPoint{dhakaCenter}, []domain.GeoPoint{dhakaWest}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := rows[0][0]
	if res.Method != domain.MethodGeometric {
		t.Errorf("expected method geometric, got %s", res.Method)
	}
	if math.Abs(res.DistanceKm-14.2) > 0.5 {
		t.Errorf("expected ~14.2 km, got %.3f", res.DistanceKm)
	}
	if res.DurationSeconds != nil {
		t.Errorf("geometric results must not carry a duration, got %v", *res.DurationSeconds)
	}
	if len(pub.events) != 1 {
		t.Errorf("expected 1 fallback event, got %d", len(pub.events))
	}
}

func TestResolve_FallbackDisallowed(t *testing.T) {
	remote := &mockMatrixProvider{}
	r := usecases.NewDistanceResolver(remote, routing.NewGeometricProvider(), nil)

	rows, err := r.Resolve(context.Background(), []domain.GeoPoint{dhakaCenter}, []domain.GeoPoint{dhakaWest}, false)
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
	if rows != nil {
		t.Error("expected no partial matrix on failure")
	}
}

func TestResolve_MalformedRemoteMatrixFallsBack(t *testing.T) {
	// One row short: shape mismatch is a remote failure.
	remote := &mockMatrixProvider{
		matrixFn: func(ctx context.Context, origins, destinations []domain.GeoPoint) (*ports.Matrix, error) {
			return &ports.Matrix{DistancesKm: [][]float64{}}, nil
		},
	}
	r := usecases.NewDistanceResolver(remote, routing.NewGeometricProvider(), nil)

	rows, err := r.Resolve(context.Background(), []domain.GeoPoint{dhakaCenter}, []domain.GeoPoint{dhakaWest}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0][0].Method != domain.MethodGeometric {
		t.Errorf("expected geometric fallback, got %s", rows[0][0].Method)
	}
}

func TestResolve_BothStrategiesFail(t *testing.T) {
	remote := &mockMatrixProvider{}
	fallback := &mockMatrixProvider{}
	r := usecases.NewDistanceResolver(remote, fallback, nil)

	_, err := r.Resolve(context.Background(), []domain.GeoPoint{dhakaCenter}, []domain.GeoPoint{dhakaWest}, true)
	if !errors.Is(err, domain.ErrDistanceUnavailable) {
		t.Fatalf("expected ErrDistanceUnavailable, got %v", err)
	}
}

func TestResolve_InvalidInput(t *testing.T) {
	r := usecases.NewDistanceResolver(&mockMatrixProvider{}, routing.NewGeometricProvider(), nil)

	cases := []struct {
		name         string
		origins      []domain.GeoPoint
		destinations []domain.GeoPoint
	}{
		{"empty origins", nil, []domain.GeoPoint{dhakaWest}},
		{"empty destinations", []domain.GeoPoint{dhakaCenter}, nil},
		{"latitude out of range", []domain.GeoPoint{{Lat: 91, Lon: 0}}, []domain.GeoPoint{dhakaWest}},
		{"longitude out of range", []domain.GeoPoint{dhakaCenter}, []domain.GeoPoint{{Lat: 0, Lon: 181}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Resolve(context.Background(), tc.origins, tc.destinations, true)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestResolvePair_SingleResult(t *testing.T) {
	remote := &mockMatrixProvider{matrixFn: fixedMatrix(1.5, 200)}
	r := usecases.NewDistanceResolver(remote, routing.NewGeometricProvider(), nil)

	res, err := r.ResolvePair(context.Background(), dhakaCenter, dhakaWest, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.DistanceKm != 1.5 || res.Method != domain.MethodRemote {
		t.Errorf("unexpected result: %+v", res)
	}
}
