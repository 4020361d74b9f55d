// Package cache provides the response cache fronting the news listing.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// DeletePrefix drops every key with the given prefix, used to
	// invalidate cached listings after a mutation.
	DeletePrefix(ctx context.Context, prefix string) error
}
