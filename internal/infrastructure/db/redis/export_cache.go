package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusops/college-roster/internal/api/metrics"
)

const exportTTL = time.Minute

// ExportCache holds rendered CSV exports for a short TTL so repeated
// downloads do not re-read the whole users collection.
// Key format: export:<name>
type ExportCache struct {
	client *redis.Client
}

// NewExportCache creates an ExportCache wrapping the given Redis client.
func NewExportCache(client *redis.Client) *ExportCache {
	return &ExportCache{client: client}
}

// Get returns the cached export, or ok=false when the key is absent.
func (c *ExportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ExportCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("export cache get: %w", err)
	}
	metrics.ExportCacheTotal.WithLabelValues("hit").Inc()
	return data, true, nil
}

// Set stores the rendered export (expires after exportTTL).
func (c *ExportCache) Set(ctx context.Context, key string, data []byte) error {
	return c.client.Set(ctx, c.key(key), data, exportTTL).Err()
}

func (c *ExportCache) key(name string) string {
	return "export:" + name
}
