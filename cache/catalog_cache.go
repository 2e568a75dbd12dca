package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"SadaaFM/db"
	"SadaaFM/logger"
	"SadaaFM/model"

	"github.com/go-redis/redis/v8"
)

// Catalog responses are cached as JSON blobs with a short TTL and dropped
// wholesale on any write. Redis being down just means every read is a miss.
const catalogTTL = 5 * time.Minute

// CatalogKeyAll returns the cache key for a full catalog listing,
// optionally narrowed to one premium flag value.
func CatalogKeyAll(isPremium *bool) string {
	if isPremium == nil {
		return "catalog:all"
	}
	return fmt.Sprintf("catalog:all:premium:%t", *isPremium)
}

// CatalogKeyFeatured is the cache key for the featured listing.
const CatalogKeyFeatured = "catalog:featured"

// GetCatalog returns the cached listing for key, or (nil, false) on a miss.
func GetCatalog(ctx context.Context, key string) ([]*model.Instrumental, bool) {
	if db.RedisClient == nil {
		return nil, false
	}

	raw, err := db.RedisClient.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("catalog cache read failed", logger.String("key", key), logger.ErrorField(err))
		}
		return nil, false
	}

	var items []*model.Instrumental
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn("catalog cache entry corrupt, dropping", logger.String("key", key), logger.ErrorField(err))
		db.RedisClient.Del(ctx, key)
		return nil, false
	}
	return items, true
}

// SetCatalog stores a listing under key.
func SetCatalog(ctx context.Context, key string, items []*model.Instrumental) {
	if db.RedisClient == nil {
		return
	}

	raw, err := json.Marshal(items)
	if err != nil {
		logger.Warn("failed to marshal catalog for cache", logger.ErrorField(err))
		return
	}

	if err := db.RedisClient.Set(ctx, key, raw, catalogTTL).Err(); err != nil {
		logger.Warn("catalog cache write failed", logger.String("key", key), logger.ErrorField(err))
	}
}

// InvalidateCatalog drops every cached listing. Called after any write to
// the instrumentals table.
func InvalidateCatalog(ctx context.Context) {
	if db.RedisClient == nil {
		return
	}

	keys, err := db.RedisClient.Keys(ctx, "catalog:*").Result()
	if err != nil {
		logger.Warn("catalog cache invalidation scan failed", logger.ErrorField(err))
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := db.RedisClient.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("catalog cache invalidation failed", logger.ErrorField(err))
	}
}
