package cache

import (
	"context"
	"time"
)

// Cache holds computed dashboard reports so repeated chart loads do not
// re-run the aggregation joins against the store.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Close() error
}

func Key(parts ...string) string {
	key := parts[0]
	for _, part := range parts[1:] {
		key += ":" + part
	}

	return key
}

const DashboardKeyPrefix = "dashboard"
