package domain

import "errors"

var (
	// ErrHarvesterUnavailable is returned when one retailer's harvester
	// fails (navigation error, timeout). Recovered at the orchestrator
	// boundary by downgrading that side to the NotFound sentinel.
	ErrHarvesterUnavailable = errors.New("harvester unavailable")

	// ErrListingNotFound is returned when the harvester finds no listing
	// for the query on a retailer.
	ErrListingNotFound = errors.New("no listing found for query")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
