package repository

import "errors"

var (
	// ErrUpstreamUnavailable is returned when the metadata API cannot be
	// reached or responds with a non-2xx status.
	ErrUpstreamUnavailable = errors.New("upstream metadata API unavailable")

	// ErrUpstreamRateLimited is returned when the metadata API signals an
	// application-level error code in an otherwise successful response.
	// The provider uses this for rate limiting and invalid URLs.
	ErrUpstreamRateLimited = errors.New("upstream metadata API rate limited")

	// ErrUnresolvableURL is returned when a short-link probe yields no
	// redirect target.
	ErrUnresolvableURL = errors.New("short link did not resolve to a canonical URL")
)
