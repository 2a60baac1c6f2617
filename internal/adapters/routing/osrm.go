// Package routing provides the two distance strategies: an OSRM-backed
// table client and a great-circle geometric estimator.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/domain"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/ports"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/pkg/metrics"
)

// OSRMClient implements ports.RouteMatrixProvider against the OSRM table
// endpoint. Any deviation from the expected response shape is a failure;
// degradation decisions belong to the resolver, not the client.
type OSRMClient struct {
	client  *http.Client
	baseURL string
	profile string
}

// NewOSRMClient creates an OSRM table client. The timeout bounds every
// matrix call; expiry is indistinguishable from any other remote failure.
func NewOSRMClient(baseURL, profile string, timeout time.Duration) *OSRMClient {
	if profile == "" {
		profile = "driving"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OSRMClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: profile,
	}
}

type tableResponse struct {
	Code      string       `json:"code"`
	Message   string       `json:"message,omitempty"`
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// Matrix fetches a distance/duration table for the given origins and
// destinations. Distances are converted from OSRM meters to kilometers.
func (c *OSRMClient) Matrix(ctx context.Context, origins, destinations []domain.GeoPoint) (_ *ports.Matrix, err error) {
	start := time.Now()
	defer func() {
		metrics.RoutingEngineDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.RoutingEngineErrors.WithLabelValues(errKind(err)).Inc()
		}
	}()

	endpoint, err := c.tableURL(origins, destinations)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create table request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("table request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(b))}
	}

	var tr tableResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("decode table response: %w", err)
	}
	if tr.Code != "Ok" {
		return nil, fmt.Errorf("table response code %q: %s", tr.Code, tr.Message)
	}

	distances, err := toKmMatrix(tr.Distances, len(origins), len(destinations))
	if err != nil {
		return nil, err
	}
	durations, err := toSecondsMatrix(tr.Durations, len(origins), len(destinations))
	if err != nil {
		return nil, err
	}

	return &ports.Matrix{DistancesKm: distances, DurationsSeconds: durations}, nil
}

// tableURL builds /table/v1/{profile}/{lon,lat;...}?sources=...&destinations=...
// with origins first, then destinations, in OSRM's lon,lat order.
func (c *OSRMClient) tableURL(origins, destinations []domain.GeoPoint) (string, error) {
	coords := make([]string, 0, len(origins)+len(destinations))
	for _, p := range append(append([]domain.GeoPoint{}, origins...), destinations...) {
		coords = append(coords, fmt.Sprintf("%f,%f", p.Lon, p.Lat))
	}

	sources := make([]string, len(origins))
	for i := range origins {
		sources[i] = strconv.Itoa(i)
	}
	dests := make([]string, len(destinations))
	for i := range destinations {
		dests[i] = strconv.Itoa(len(origins) + i)
	}

	q := url.Values{}
	q.Set("sources", strings.Join(sources, ";"))
	q.Set("destinations", strings.Join(dests, ";"))
	q.Set("annotations", "distance,duration")

	return fmt.Sprintf("%s/table/v1/%s/%s?%s", c.baseURL, c.profile, strings.Join(coords, ";"), q.Encode()), nil
}

func toKmMatrix(rows [][]*float64, nOrigins, nDests int) ([][]float64, error) {
	if len(rows) != nOrigins {
		return nil, fmt.Errorf("distances: %d rows, want %d", len(rows), nOrigins)
	}
	out := make([][]float64, nOrigins)
	for i, row := range rows {
		if len(row) != nDests {
			return nil, fmt.Errorf("distances row %d: %d cells, want %d", i, len(row), nDests)
		}
		out[i] = make([]float64, nDests)
		for j, cell := range row {
			if cell == nil {
				return nil, fmt.Errorf("distances cell (%d,%d) is null", i, j)
			}
			out[i][j] = *cell / 1000
		}
	}
	return out, nil
}

func toSecondsMatrix(rows [][]*float64, nOrigins, nDests int) ([][]float64, error) {
	if len(rows) != nOrigins {
		return nil, fmt.Errorf("durations: %d rows, want %d", len(rows), nOrigins)
	}
	out := make([][]float64, nOrigins)
	for i, row := range rows {
		if len(row) != nDests {
			return nil, fmt.Errorf("durations row %d: %d cells, want %d", i, len(row), nDests)
		}
		out[i] = make([]float64, nDests)
		for j, cell := range row {
			if cell == nil {
				return nil, fmt.Errorf("durations cell (%d,%d) is null", i, j)
			}
			out[i][j] = *cell
		}
	}
	return out, nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("table request status %d: %s", e.code, e.body)
}

func errKind(err error) string {
	if se, ok := err.(*statusError); ok {
		return "status_" + strconv.Itoa(se.code)
	}
	if strings.Contains(err.Error(), "context deadline exceeded") ||
		strings.Contains(err.Error(), "Client.Timeout") {
		return "timeout"
	}
	return "other"
}
