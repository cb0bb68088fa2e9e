package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Harvester defines the interface for the external page-harvester service.
// FetchAnchor returns the single reference listing from the first retailer;
// FetchCandidates returns the candidate pool from the second retailer.
// The two calls share no state and may run concurrently.
type Harvester interface {
	FetchAnchor(ctx context.Context, query string) (*Listing, error)
	FetchCandidates(ctx context.Context, query string) ([]Listing, error)
}
