package service

import (
	"context"
	"encoding/json"
	"time"

	"chms-be/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CacheService implements the read-through collection cache. Reads are
// cache-aside with asynchronous fills; writes never populate the cache, they
// only invalidate the collections they touched so the next read refetches.
// All methods tolerate a nil Redis client (caching disabled).
type CacheService struct {
	redis  *redis.Client
	logger *zap.Logger
}

// NewCacheService creates a new cache service
func NewCacheService(redisClient *redis.Client, logger *zap.Logger) *CacheService {
	return &CacheService{
		redis:  redisClient,
		logger: logger,
	}
}

// GetCollection tries to load a cached collection into dest. Returns true on
// a usable hit. Corrupted or errored entries are treated as misses so the
// caller falls back to the database.
func (c *CacheService) GetCollection(ctx context.Context, key string, dest interface{}) bool {
	if c.redis == nil {
		return false
	}

	cachedData, err := c.redis.Get(ctx, key)
	if err != nil {
		if err != goredis.Nil {
			c.logger.Warn("Cache read error, falling back to database",
				zap.String("key", key),
				zap.Error(err))
		}
		return false
	}
	if cachedData == "" {
		return false
	}

	if err := json.Unmarshal([]byte(cachedData), dest); err != nil {
		c.logger.Warn("Cache entry corrupted, falling back to database",
			zap.String("key", key),
			zap.Error(err))
		return false
	}

	c.logger.Debug("Cache hit", zap.String("key", key))
	return true
}

// StoreCollection caches a collection asynchronously (fire and forget)
func (c *CacheService) StoreCollection(key string, ttl time.Duration, value interface{}) {
	if c.redis == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(value)
		if err != nil {
			c.logger.Error("Failed to marshal collection for caching",
				zap.String("key", key),
				zap.Error(err))
			return
		}

		if err := c.redis.Set(ctx, key, string(data), ttl); err != nil {
			c.logger.Error("Failed to cache collection",
				zap.String("key", key),
				zap.Error(err))
		}
	}()
}

// Invalidate removes the given collection keys asynchronously. Mutations call
// this after a successful remote write so the next read refetches.
func (c *CacheService) Invalidate(keys ...string) {
	if c.redis == nil || len(keys) == 0 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := c.redis.Delete(ctx, keys...); err != nil {
			c.logger.Error("Failed to invalidate cache keys",
				zap.Strings("keys", keys),
				zap.Error(err))
			return
		}
		c.logger.Debug("Cache invalidated", zap.Strings("keys", keys))
	}()
}

// InvalidateSync removes keys synchronously, used by tests and shutdown paths
func (c *CacheService) InvalidateSync(ctx context.Context, keys ...string) error {
	if c.redis == nil || len(keys) == 0 {
		return nil
	}
	return c.redis.Delete(ctx, keys...)
}

// Keys exposes the environment-aware key builder, or nil without Redis
func (c *CacheService) Keys() *redis.KeyBuilder {
	if c.redis == nil {
		return redis.NewKeyBuilder("production")
	}
	return c.redis.KeyBuilder
}

// HealthCheck performs a health check on the cache system
func (c *CacheService) HealthCheck(ctx context.Context) error {
	if c.redis == nil {
		return nil
	}

	start := time.Now()
	err := c.redis.Health(ctx)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("Cache health check failed",
			zap.Duration("duration", duration),
			zap.Error(err))
		return err
	}

	c.logger.Debug("Cache health check passed", zap.Duration("duration", duration))
	return nil
}
