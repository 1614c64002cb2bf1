package cache

import (
	"context"
	"strconv"
)

// Cache stores serialized ranking responses until the next write to the league.
//
// Entries are addressed by generation. Readers take the generation before
// computing and store under Key(gen, name), so a value computed from data
// older than the last Invalidate is never served again.
type Cache interface {
	// Generation returns the current cache generation.
	Generation(ctx context.Context) (int64, error)
	// Get returns the value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Invalidate bumps the generation and drops every cached entry.
	Invalidate(ctx context.Context) error
}

// Key scopes a cache entry name to a generation.
func Key(generation int64, name string) string {
	return strconv.FormatInt(generation, 10) + ":" + name
}
