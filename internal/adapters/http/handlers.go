package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/domain"
)

// NearestStopHandler returns the closest stop to a GPS fix, with method
// provenance and a within-threshold flag.
func NearestStopHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat := c.QueryFloat("lat", 0)
		lon := c.QueryFloat("lon", 0)
		threshold := c.QueryFloat("threshold", 0) // meters, 0 = configured default

		if c.Query("lat") == "" || c.Query("lon") == "" {
			return errBadRequest(c, "lat and lon are required")
		}

		res, err := deps.Nearest.FindNearest(c.UserContext(), lat, lon, threshold)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(res)
	}
}

// NearbyStopsHandler returns stops within a radius of a point.
func NearbyStopsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat := c.QueryFloat("lat", 0)
		lon := c.QueryFloat("lon", 0)
		radius := c.QueryFloat("radius", 500)
		limit := c.QueryInt("limit", 50)

		if c.Query("lat") == "" || c.Query("lon") == "" {
			return errBadRequest(c, "lat and lon are required")
		}
		if radius <= 0 || radius > 10000 {
			return errBadRequest(c, "radius must be between 1 and 10000 meters")
		}

		stops, err := deps.Stops.FindNearby(c.UserContext(), lat, lon, radius, limit)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(stops)
	}
}

// SearchStopsHandler performs fuzzy search on stop names.
func SearchStopsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return errBadRequest(c, "q query parameter is required")
		}
		if len(query) > 200 {
			return errBadRequest(c, "query too long (max 200 characters)")
		}
		limit := c.QueryInt("limit", 20)

		stops, err := deps.Stops.Search(c.UserContext(), query, limit)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(stops)
	}
}

// GetStopHandler returns a single stop by ID.
func GetStopHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "stop id is required")
		}
		stop, err := deps.Stops.GetByID(c.UserContext(), id)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(stop)
	}
}

// ListBusesHandler lists bus lines with offset/limit pagination.
func ListBusesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		buses, err := deps.Buses.List(c.UserContext())
		if err != nil {
			return errFromDomain(c, err)
		}

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 100)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 200 {
			limit = 100
		}

		total := len(buses)
		// Pages past the end serialize as an empty array, not null.
		page := []domain.Bus{}
		if offset < total {
			end := offset + limit
			if end > total {
				end = total
			}
			page = buses[offset:end]
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// SearchBusesHandler performs fuzzy search on bus names.
func SearchBusesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return errBadRequest(c, "q query parameter is required")
		}
		limit := c.QueryInt("limit", 20)

		buses, err := deps.Buses.Search(c.UserContext(), query, limit)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(buses)
	}
}

// GetBusHandler returns a single bus line by ID.
func GetBusHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "bus id is required")
		}
		bus, err := deps.Buses.GetByID(c.UserContext(), id)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(bus)
	}
}

// BusStopsHandler returns the ordered stop sequence of a bus.
func BusStopsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "bus id is required")
		}
		direction, ok := domain.ParseDirection(c.Query("direction"))
		if !ok {
			return errBadRequest(c, "direction must be forward or backward")
		}

		placements, err := deps.Buses.StopsForBus(c.UserContext(), id, direction)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(placements)
	}
}

// JourneyLengthHandler measures the on-route distance between two stop
// orders on a bus. The aggregate carries a low-confidence flag when any
// segment was resolved geometrically.
func JourneyLengthHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "bus id is required")
		}
		if c.Query("from") == "" || c.Query("to") == "" {
			return errBadRequest(c, "from and to stop orders are required")
		}
		from := c.QueryInt("from", 0)
		to := c.QueryInt("to", 0)
		direction, ok := domain.ParseDirection(c.Query("direction"))
		if !ok {
			return errBadRequest(c, "direction must be forward or backward")
		}

		jl, err := deps.Journeys.Measure(c.UserContext(), id, direction, from, to)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(jl)
	}
}

// DistanceHandler resolves a single origin/destination pair. fallback=false
// surfaces routing-engine failures instead of degrading.
func DistanceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		required := []string{"from_lat", "from_lon", "to_lat", "to_lon"}
		for _, p := range required {
			if c.Query(p) == "" {
				return errBadRequest(c, p+" is required")
			}
		}

		origin := domain.GeoPoint{Lat: c.QueryFloat("from_lat", 0), Lon: c.QueryFloat("from_lon", 0)}
		dest := domain.GeoPoint{Lat: c.QueryFloat("to_lat", 0), Lon: c.QueryFloat("to_lon", 0)}
		allowFallback := c.QueryBool("fallback", true)

		res, err := deps.Resolver.ResolvePair(c.UserContext(), origin, dest, allowFallback)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(res)
	}
}
