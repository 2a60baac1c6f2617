package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: bad_request, not_found, upstream_unavailable, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errFromDomain maps domain sentinel errors onto HTTP statuses. Unknown
// errors become 500s.
func errFromDomain(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return newError(c, 400, "bad_request", err.Error())
	case errors.Is(err, domain.ErrInvalidRouteRange):
		return newError(c, 400, "invalid_route_range", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return newError(c, 404, "not_found", err.Error())
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return newError(c, 503, "upstream_unavailable", err.Error())
	case errors.Is(err, domain.ErrDistanceUnavailable):
		return newError(c, 502, "distance_unavailable", err.Error())
	default:
		return errInternal(c, err.Error())
	}
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, 400, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, 404, "not_found", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, 500, "internal_error", msg)
}
