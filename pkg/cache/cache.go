// Package cache stores playlist lookups and generated documents between
// runs.
//
// Two backends implement [Cache]: [FileCache] for the CLI (one JSON file
// per entry under the user cache directory) and [RedisCache] for the HTTP
// server, where several instances share one store. [NullCache] disables
// caching. Keys come from a [Keyer] so that callers never build key
// strings by hand.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Default entry lifetimes.
const (
	// TTLPlaylist bounds how stale a cached track list may be.
	TTLPlaylist = time.Hour

	// TTLArtifact applies to generated documents.
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// GetJSON reads key into v. A corrupt entry is reported as a miss.
func GetJSON(ctx context.Context, c Cache, key string, v any) (bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, nil
	}
	return true, nil
}

// SetJSON stores v's JSON encoding under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
