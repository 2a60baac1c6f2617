package domain

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate checks that the coordinate is within valid WGS 84 ranges.
func (p GeoPoint) Validate() error {
	if p.Lat < -90 || p.Lat > 90 {
		return ErrInvalidInput
	}
	if p.Lon < -180 || p.Lon > 180 {
		return ErrInvalidInput
	}
	return nil
}

// Method records which strategy produced a distance result.
type Method string

const (
	// MethodRemote means the routing engine computed a real-road distance.
	MethodRemote Method = "remote"
	// MethodGeometric means the great-circle fallback was used. Geometric
	// results carry no duration and are a crude straight-line estimate.
	MethodGeometric Method = "geometric"
)

// DistanceResult pairs an origin/destination with a resolved distance.
// DurationSeconds is nil when the producing strategy cannot estimate it;
// the Method tag lets consumers discount fallback values.
type DistanceResult struct {
	Origin          GeoPoint `json:"origin"`
	Destination     GeoPoint `json:"destination"`
	DistanceKm      float64  `json:"distance_km"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	Method          Method   `json:"method"`
}
