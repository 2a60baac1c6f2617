package domain

import "time"

// Direction distinguishes the two travel directions of a bus line.
type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

// ParseDirection maps a query-string value to a Direction. Empty input
// defaults to forward.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "", string(DirectionForward):
		return DirectionForward, true
	case string(DirectionBackward):
		return DirectionBackward, true
	default:
		return "", false
	}
}

// Bus represents a bus line with an ordered stop sequence per direction.
type Bus struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RouteName string    `json:"route_name,omitempty"`
	Operator  string    `json:"operator,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Stop represents a bus stop. Distance is a computed field populated by
// nearby/nearest queries, in meters from the query point.
type Stop struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Area      string    `json:"area,omitempty"`
	Location  GeoPoint  `json:"location"`
	Distance  *float64  `json:"distance,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StopPlacement ties a stop to a bus at a position within one direction.
// Orders are unique and monotonic within a (bus, direction) pair; the
// storage layer owns that invariant.
type StopPlacement struct {
	BusID     string    `json:"bus_id"`
	StopID    string    `json:"stop_id"`
	StopOrder int       `json:"stop_order"`
	Direction Direction `json:"direction"`
	Stop      *Stop     `json:"stop,omitempty"`
}

// NearestStopResult is the outcome of a nearest-stop lookup. A result is
// always produced for a non-empty candidate set; WithinThreshold tells the
// caller whether the best candidate is inside the requested radius.
type NearestStopResult struct {
	Stop              Stop     `json:"stop"`
	DistanceKm        float64  `json:"distance_km"`
	DurationSeconds   *float64 `json:"duration_seconds,omitempty"`
	DurationEstimated bool     `json:"duration_estimated"`
	Method            Method   `json:"method"`
	WithinThreshold   bool     `json:"within_threshold"`
	ThresholdKm       float64  `json:"threshold_km"`
}

// JourneySegment is one consecutive-pair leg of a journey measurement.
type JourneySegment struct {
	From       Stop    `json:"from"`
	To         Stop    `json:"to"`
	DistanceKm float64 `json:"distance_km"`
	Method     Method  `json:"method"`
}

// JourneyLength sums consecutive-pair distances between two stop orders on
// a bus. LowConfidence is set when any segment used the geometric fallback.
type JourneyLength struct {
	BusID             string           `json:"bus_id"`
	Direction         Direction        `json:"direction"`
	BoardingOrder     int              `json:"boarding_order"`
	AlightingOrder    int              `json:"alighting_order"`
	Segments          []JourneySegment `json:"segments"`
	TotalDistanceKm   float64          `json:"total_distance_km"`
	DurationSeconds   *float64         `json:"duration_seconds,omitempty"`
	DurationEstimated bool             `json:"duration_estimated"`
	LowConfidence     bool             `json:"low_confidence"`
}
