package routing

import (
	"context"

	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/domain"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/ports"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/pkg/geospatial"
)

// GeometricProvider implements ports.RouteMatrixProvider with the haversine
// formula. It computes straight-line distances only and never estimates
// travel time, so DurationsSeconds is always nil. Pure computation; does
// not fail.
type GeometricProvider struct{}

// NewGeometricProvider creates a GeometricProvider.
func NewGeometricProvider() *GeometricProvider {
	return &GeometricProvider{}
}

// Matrix returns great-circle distances for every origin/destination pair.
func (g *GeometricProvider) Matrix(ctx context.Context, origins, destinations []domain.GeoPoint) (*ports.Matrix, error) {
	distances := make([][]float64, len(origins))
	for i, o := range origins {
		distances[i] = make([]float64, len(destinations))
		for j, d := range destinations {
			distances[i][j] = geospatial.HaversineKm(o.Lat, o.Lon, d.Lat, d.Lon)
		}
	}
	return &ports.Matrix{DistancesKm: distances}, nil
}
