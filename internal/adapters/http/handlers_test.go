package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	handler "github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/adapters/http"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/adapters/routing"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/domain"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/ports"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/usecases"
)

// ---- Mock repositories ----

type mockStopRepo struct {
	getByIDFn    func(ctx context.Context, id string) (*domain.Stop, error)
	listFn       func(ctx context.Context) ([]domain.Stop, error)
	findNearbyFn func(ctx context.Context, lat, lon, radius float64, limit int) ([]domain.Stop, error)
	searchFn     func(ctx context.Context, query string, limit int) ([]domain.Stop, error)
}

func (m *mockStopRepo) Upsert(ctx context.Context, s *domain.Stop) error       { return nil }
func (m *mockStopRepo) UpsertBatch(ctx context.Context, s []domain.Stop) error { return nil }
func (m *mockStopRepo) GetByID(ctx context.Context, id string) (*domain.Stop, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockStopRepo) List(ctx context.Context) ([]domain.Stop, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
func (m *mockStopRepo) FindNearby(ctx context.Context, lat, lon, radius float64, limit int) ([]domain.Stop, error) {
	if m.findNearbyFn != nil {
		return m.findNearbyFn(ctx, lat, lon, radius, limit)
	}
	return nil, nil
}
func (m *mockStopRepo) Search(ctx context.Context, query string, limit int) ([]domain.Stop, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, limit)
	}
	return nil, nil
}

type mockBusRepo struct {
	getByIDFn func(ctx context.Context, id string) (*domain.Bus, error)
	listFn    func(ctx context.Context) ([]domain.Bus, error)
	searchFn  func(ctx context.Context, query string, limit int) ([]domain.Bus, error)
}

func (m *mockBusRepo) Upsert(ctx context.Context, b *domain.Bus) error       { return nil }
func (m *mockBusRepo) UpsertBatch(ctx context.Context, b []domain.Bus) error { return nil }
func (m *mockBusRepo) GetByID(ctx context.Context, id string) (*domain.Bus, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &domain.Bus{ID: id, Name: "Mirpur Express"}, nil
}
func (m *mockBusRepo) List(ctx context.Context) ([]domain.Bus, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
func (m *mockBusRepo) Search(ctx context.Context, query string, limit int) ([]domain.Bus, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, limit)
	}
	return nil, nil
}

type mockPlacementRepo struct {
	listByBusFn func(ctx context.Context, busID string, direction domain.Direction) ([]domain.StopPlacement, error)
}

func (m *mockPlacementRepo) UpsertBatch(ctx context.Context, p []domain.StopPlacement) error {
	return nil
}
func (m *mockPlacementRepo) ListByBus(ctx context.Context, busID string, direction domain.Direction) ([]domain.StopPlacement, error) {
	if m.listByBusFn != nil {
		return m.listByBusFn(ctx, busID, direction)
	}
	return nil, nil
}

type mockMatrixProvider struct {
	matrixFn func(ctx context.Context, origins, destinations []domain.GeoPoint) (*ports.Matrix, error)
}

func (m *mockMatrixProvider) Matrix(ctx context.Context, origins, destinations []domain.GeoPoint) (*ports.Matrix, error) {
	if m.matrixFn != nil {
		return m.matrixFn(ctx, origins, destinations)
	}
	return nil, errors.New("no matrix configured")
}

// ---- Test helpers ----

func setupApp(deps *handler.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)
	return app
}

func nearestOpts() usecases.NearestOptions {
	return usecases.NearestOptions{
		CandidateLimit:    10,
		DefaultThresholdM: 1500,
		MinThresholdM:     100,
		MaxThresholdM:     10000,
		AverageSpeedKmh:   20,
	}
}

// fallbackResolver always fails remotely and degrades to the geometric path.
func fallbackResolver() *usecases.DistanceResolver {
	return usecases.NewDistanceResolver(&mockMatrixProvider{}, routing.NewGeometricProvider(), nil)
}

func makeDeps(opts ...func(*handler.Dependencies)) *handler.Dependencies {
	resolver := fallbackResolver()
	d := &handler.Dependencies{
		Stops:    usecases.NewStopService(&mockStopRepo{}, nil),
		Buses:    usecases.NewBusService(&mockBusRepo{}, &mockPlacementRepo{}, nil),
		Nearest:  usecases.NewNearestStopService(&mockStopRepo{}, resolver, nil, nearestOpts()),
		Journeys: usecases.NewJourneyService(&mockBusRepo{}, &mockPlacementRepo{}, resolver, nil, 20),
		Resolver: resolver,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// ---- Nearest stop handler tests ----

func TestNearestStop_MissingParams(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/stops/nearest?lat=23.81", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var apiErr struct {
		Code string `json:"code"`
	}
	json.NewDecoder(resp.Body).Decode(&apiErr)
	if apiErr.Code != "bad_request" {
		t.Errorf("expected bad_request, got %s", apiErr.Code)
	}
}

func TestNearestStop_GeometricFallback(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Nearest = usecases.NewNearestStopService(&mockStopRepo{
			listFn: func(ctx context.Context) ([]domain.Stop, error) {
				return []domain.Stop{
					{ID: "s1", Name: "Shyamoli", Location: domain.GeoPoint{Lat: 23.8110, Lon: 90.4130}},
					{ID: "s2", Name: "Farmgate", Location: domain.GeoPoint{Lat: 23.9000, Lon: 90.5000}},
				}, nil
			},
		}, fallbackResolver(), nil, nearestOpts())
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/stops/nearest?lat=23.8103&lon=90.4125", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var res domain.NearestStopResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Stop.ID != "s1" {
		t.Errorf("expected nearest stop s1, got %s", res.Stop.ID)
	}
	if res.Method != domain.MethodGeometric {
		t.Errorf("expected geometric method tag, got %s", res.Method)
	}
	if !res.WithinThreshold {
		t.Error("a stop ~90m away must be within the default threshold")
	}
	if !res.DurationEstimated {
		t.Error("geometric result must carry an estimated duration")
	}
}

func TestNearestStop_NoStops(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/stops/nearest?lat=23.81&lon=90.41", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404 for empty stop set, got %d", resp.StatusCode)
	}
}

func TestNearestStop_InvalidFix(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/stops/nearest?lat=123.0&lon=90.41", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 for out-of-range latitude, got %d", resp.StatusCode)
	}
}

// ---- Nearby / search / get stop tests ----

func TestNearbyStops_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Stops = usecases.NewStopService(&mockStopRepo{
			findNearbyFn: func(ctx context.Context, lat, lon, radius float64, limit int) ([]domain.Stop, error) {
				return []domain.Stop{
					{ID: "s1", Name: "Gulistan", Location: domain.GeoPoint{Lat: 23.71, Lon: 90.41}},
				}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/stops/nearby?lat=23.71&lon=90.41&radius=500", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var stops []domain.Stop
	json.NewDecoder(resp.Body).Decode(&stops)
	if len(stops) != 1 {
		t.Errorf("expected 1 stop, got %d", len(stops))
	}
}

func TestNearbyStops_BadRadius(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/stops/nearby?lat=23.71&lon=90.41&radius=50000", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSearchStops_MissingQuery(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/stops/search", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetStop_NotFound(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Stops = usecases.NewStopService(&mockStopRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Stop, error) {
				return nil, domain.ErrNotFound
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/stops/nonexistent-id", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetStop_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Stops = usecases.NewStopService(&mockStopRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Stop, error) {
				return &domain.Stop{ID: id, Name: "Motijheel"}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/stops/abc-123", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var stop domain.Stop
	json.NewDecoder(resp.Body).Decode(&stop)
	if stop.Name != "Motijheel" {
		t.Errorf("expected Motijheel, got %s", stop.Name)
	}
}

// ---- Bus handler tests ----

func TestListBuses_Pagination(t *testing.T) {
	buses := make([]domain.Bus, 5)
	for i := range buses {
		buses[i] = domain.Bus{ID: fmt.Sprintf("b%d", i), Name: fmt.Sprintf("Bus %d", i)}
	}

	deps := makeDeps(func(d *handler.Dependencies) {
		d.Buses = usecases.NewBusService(&mockBusRepo{
			listFn: func(ctx context.Context) ([]domain.Bus, error) { return buses, nil },
		}, &mockPlacementRepo{}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/buses?offset=2&limit=2", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.Bus `json:"data"`
		Pagination struct {
			Offset int `json:"offset"`
			Total  int `json:"total"`
		} `json:"pagination"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Pagination.Total != 5 {
		t.Errorf("expected total 5, got %d", result.Pagination.Total)
	}
	if len(result.Data) != 2 {
		t.Errorf("expected 2 buses in page, got %d", len(result.Data))
	}
	if result.Pagination.Offset != 2 {
		t.Errorf("expected offset 2, got %d", result.Pagination.Offset)
	}
}

func TestListBuses_PagePastEndIsEmptyArray(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Buses = usecases.NewBusService(&mockBusRepo{
			listFn: func(ctx context.Context) ([]domain.Bus, error) {
				return []domain.Bus{{ID: "b0", Name: "Bus 0"}}, nil
			},
		}, &mockPlacementRepo{}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/buses?offset=50&limit=10", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data []domain.Bus `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Data == nil {
		t.Error("expected data to serialize as [], not null")
	}
	if len(result.Data) != 0 {
		t.Errorf("expected an empty page, got %d buses", len(result.Data))
	}
}

func TestListBuses_LinkHeader(t *testing.T) {
	buses := make([]domain.Bus, 10)
	for i := range buses {
		buses[i] = domain.Bus{ID: fmt.Sprintf("b%d", i), Name: fmt.Sprintf("Bus %d", i)}
	}

	deps := makeDeps(func(d *handler.Dependencies) {
		d.Buses = usecases.NewBusService(&mockBusRepo{
			listFn: func(ctx context.Context) ([]domain.Bus, error) { return buses, nil },
		}, &mockPlacementRepo{}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/buses?offset=0&limit=3", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	link := resp.Header.Get("Link")
	if !strings.Contains(link, `rel="next"`) {
		t.Errorf("expected next link, got %s", link)
	}
	if !strings.Contains(link, `rel="last"`) {
		t.Errorf("expected last link, got %s", link)
	}
}

func TestGetBus_NotFound(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Buses = usecases.NewBusService(&mockBusRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Bus, error) {
				return nil, domain.ErrNotFound
			},
		}, &mockPlacementRepo{}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/buses/bad-id", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestBusStops_BadDirection(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/buses/b1/stops?direction=sideways", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestBusStops_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Buses = usecases.NewBusService(&mockBusRepo{}, &mockPlacementRepo{
			listByBusFn: func(ctx context.Context, busID string, direction domain.Direction) ([]domain.StopPlacement, error) {
				return []domain.StopPlacement{
					{BusID: busID, StopID: "s1", StopOrder: 0, Direction: direction},
					{BusID: busID, StopID: "s2", StopOrder: 1, Direction: direction},
				}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/buses/b1/stops", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var placements []domain.StopPlacement
	json.NewDecoder(resp.Body).Decode(&placements)
	if len(placements) != 2 {
		t.Errorf("expected 2 placements, got %d", len(placements))
	}
}

// ---- Journey length handler tests ----

func journeyPlacements(busID string) []domain.StopPlacement {
	stops := []domain.Stop{
		{ID: "s1", Name: "Uttara", Location: domain.GeoPoint{Lat: 23.87, Lon: 90.40}},
		{ID: "s2", Name: "Airport", Location: domain.GeoPoint{Lat: 23.85, Lon: 90.40}},
		{ID: "s3", Name: "Banani", Location: domain.GeoPoint{Lat: 23.79, Lon: 90.40}},
	}
	out := make([]domain.StopPlacement, len(stops))
	for i := range stops {
		out[i] = domain.StopPlacement{
			BusID: busID, StopID: stops[i].ID, StopOrder: i,
			Direction: domain.DirectionForward, Stop: &stops[i],
		}
	}
	return out
}

func TestJourneyLength_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Journeys = usecases.NewJourneyService(&mockBusRepo{}, &mockPlacementRepo{
			listByBusFn: func(ctx context.Context, busID string, direction domain.Direction) ([]domain.StopPlacement, error) {
				return journeyPlacements(busID), nil
			},
		}, fallbackResolver(), nil, 20)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/buses/b1/journey-length?from=0&to=2", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var jl domain.JourneyLength
	if err := json.NewDecoder(resp.Body).Decode(&jl); err != nil {
		t.Fatal(err)
	}
	if len(jl.Segments) != 2 {
		t.Errorf("expected 2 segments, got %d", len(jl.Segments))
	}
	if jl.TotalDistanceKm <= 0 {
		t.Errorf("expected positive total distance, got %f", jl.TotalDistanceKm)
	}
	if !jl.LowConfidence {
		t.Error("geometric segments must flag the journey low-confidence")
	}
}

func TestJourneyLength_EqualOrders(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/buses/b1/journey-length?from=2&to=2", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var apiErr struct {
		Code string `json:"code"`
	}
	json.NewDecoder(resp.Body).Decode(&apiErr)
	if apiErr.Code != "invalid_route_range" {
		t.Errorf("expected invalid_route_range, got %s", apiErr.Code)
	}
}

func TestJourneyLength_MissingOrders(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/buses/b1/journey-length?from=0", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// ---- Distance handler tests ----

func TestDistance_GeometricFallback(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/distance?from_lat=23.8103&from_lon=90.4125&to_lat=23.7808&to_lon=90.2792", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var res domain.DistanceResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Method != domain.MethodGeometric {
		t.Errorf("expected geometric method, got %s", res.Method)
	}
	if res.DistanceKm < 13.7 || res.DistanceKm > 14.7 {
		t.Errorf("expected roughly 14.2 km, got %f", res.DistanceKm)
	}
}

func TestDistance_RemoteMethodTag(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		duration := 2130.0
		d.Resolver = usecases.NewDistanceResolver(&mockMatrixProvider{
			matrixFn: func(ctx context.Context, origins, destinations []domain.GeoPoint) (*ports.Matrix, error) {
				return &ports.Matrix{
					DistancesKm:      [][]float64{{15.1}},
					DurationsSeconds: [][]float64{{duration}},
				}, nil
			},
		}, routing.NewGeometricProvider(), nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/distance?from_lat=23.8103&from_lon=90.4125&to_lat=23.7808&to_lon=90.2792", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var res domain.DistanceResult
	json.NewDecoder(resp.Body).Decode(&res)
	if res.Method != domain.MethodRemote {
		t.Errorf("expected remote method, got %s", res.Method)
	}
	if res.DurationSeconds == nil || *res.DurationSeconds != 2130 {
		t.Errorf("expected 2130 s duration, got %v", res.DurationSeconds)
	}
}

func TestDistance_FallbackDisabled(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/distance?from_lat=23.81&from_lon=90.41&to_lat=23.78&to_lon=90.28&fallback=false", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 503 {
		t.Fatalf("expected 503 when fallback is disabled, got %d", resp.StatusCode)
	}

	var apiErr struct {
		Code string `json:"code"`
	}
	json.NewDecoder(resp.Body).Decode(&apiErr)
	if apiErr.Code != "upstream_unavailable" {
		t.Errorf("expected upstream_unavailable, got %s", apiErr.Code)
	}
}

func TestDistance_MissingParams(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/distance?from_lat=23.81&from_lon=90.41", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// ---- Health handler tests ----

func TestHealth_Returns200(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/health", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if result["status"] != "healthy" {
		t.Errorf("expected healthy status, got %v", result["status"])
	}
}

func TestReady_NoDB(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/ready", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 503 {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

// ---- Header middleware tests ----

func TestAPIVersionHeader(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/health", nil)
	resp, _ := app.Test(req, -1)
	if v := resp.Header.Get("X-API-Version"); v != "1.0.0" {
		t.Errorf("expected X-API-Version 1.0.0, got %q", v)
	}
}

func TestNearbyStops_CacheControlHeader(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Stops = usecases.NewStopService(&mockStopRepo{
			findNearbyFn: func(ctx context.Context, lat, lon, radius float64, limit int) ([]domain.Stop, error) {
				return []domain.Stop{}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/stops/nearby?lat=23.71&lon=90.41", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if cc := resp.Header.Get("Cache-Control"); cc != "public, max-age=300" {
		t.Errorf("expected Cache-Control header, got %q", cc)
	}
}
