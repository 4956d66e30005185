package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"listings-backend/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// GenerateQueryHash builds a stable cache key for a filtered query. Filter
// keys are sorted so equivalent queries hash identically regardless of map
// iteration order.
func GenerateQueryHash(resourceType string, filters map[string]string, limit int) string {
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	query := fmt.Sprintf("resource=%s&limit=%d", resourceType, limit)
	for _, key := range keys {
		query += fmt.Sprintf("&%s=%s", key, filters[key])
	}

	hash := sha256.Sum256([]byte(query))
	return fmt.Sprintf("%s:%s", resourceType, hex.EncodeToString(hash[:]))
}

// GetCachedResponse returns the cached JSON payload for a key, redis.Nil when
// absent.
func GetCachedResponse(ctx context.Context, rdb *redis.Client, key string) (string, error) {
	return rdb.Get(ctx, key).Result()
}

// CacheResponse stores a JSON payload under the key with a TTL.
func CacheResponse(ctx context.Context, rdb *redis.Client, key string, payload string, ttl time.Duration) error {
	return rdb.Set(ctx, key, payload, ttl).Err()
}

// InvalidateCache removes every cached key for the given resource type.
func InvalidateCache(ctx context.Context, rdb *redis.Client, resourceType string) error {
	pattern := fmt.Sprintf("%s:*", resourceType)
	iter := rdb.Scan(ctx, 0, pattern, 0).Iterator()

	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %v", iter.Val(), err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("error during SCAN iteration: %v", err)
	}

	return nil
}

// InvalidateCacheAsync invalidates the cache for a resource type without
// blocking the write path.
func InvalidateCacheAsync(rdb *redis.Client, resourceType string) {
	go func() {
		if err := InvalidateCache(context.Background(), rdb, resourceType); err != nil {
			config.Logger.Warn("Cache invalidation failed",
				zap.String("resource_type", resourceType),
				zap.Error(err),
			)
		}
	}()
}
