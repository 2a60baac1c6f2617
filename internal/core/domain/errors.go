package domain

import "errors"

var (
	// ErrInvalidInput marks malformed coordinates, ranges, or parameters.
	// Never retried; surfaced to callers as a 400-equivalent.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstreamUnavailable means the routing engine failed and the caller
	// disallowed the geometric fallback.
	ErrUpstreamUnavailable = errors.New("routing engine unavailable")

	// ErrDistanceUnavailable means both the remote and fallback strategies
	// failed. The fallback is pure computation, so in practice this is a
	// defined-but-unreachable terminal state.
	ErrDistanceUnavailable = errors.New("distance unavailable")

	// ErrInvalidRouteRange marks a boarding/alighting order pair that is out
	// of order or absent from the bus's stop sequence.
	ErrInvalidRouteRange = errors.New("invalid route range")

	// ErrNotFound marks a missing bus or stop.
	ErrNotFound = errors.New("not found")
)
