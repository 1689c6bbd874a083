package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Client struct {
	rdb        *redis.Client
	KeyBuilder *KeyBuilder
}

// Cache key constants. Collections are keyed by their scope id so that a
// mutation can invalidate exactly the lists it touched.
const (
	KeyChurchMembers   = "church:%s:members"
	KeyChurchRequests  = "church:%s:requests"
	KeyChurchRoles     = "church:%s:roles"
	KeyChurchRolesMap  = "church:%s:roles:map"
	KeyChurchTeams     = "church:%s:teams"
	KeyTeamByID        = "team:%s"
	KeyTeamMembers     = "team:%s:members"
	KeyTeamGroups      = "team:%s:groups"
	KeyGroupMembers    = "group:%s:members"
	KeyTeamCalendar    = "team:%s:calendar"
	KeyTeamDocuments   = "team:%s:documents"
)

// TTL constants
const (
	TTLMembers   = 5 * time.Minute
	TTLRequests  = 2 * time.Minute
	TTLRoles     = 15 * time.Minute // Role definitions change rarely
	TTLTeams     = 5 * time.Minute
	TTLTeamByID  = 15 * time.Minute
	TTLGroups    = 5 * time.Minute
	TTLCalendar  = 2 * time.Minute
	TTLDocuments = 5 * time.Minute
)

// NewClient creates a new Redis client
func NewClient(redisURL string, environment string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.PoolSize = 50
	opts.MinIdleConns = 5
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, KeyBuilder: NewKeyBuilder(environment)}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}

// Get retrieves a value from Redis
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, key).Result()
}

// Set stores a value in Redis with a TTL
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// SetNX stores a value only if the key does not exist
func (c *Client) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, key, value, expiration).Result()
}

// Exists reports how many of the given keys exist
func (c *Client) Exists(ctx context.Context, keys ...string) (int64, error) {
	return c.rdb.Exists(ctx, keys...).Result()
}

// Delete removes keys from Redis
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

// InvalidatePattern deletes all keys matching the given pattern using SCAN
func (c *Client) InvalidatePattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys for pattern %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete matched keys: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Health checks the Redis connection
func (c *Client) Health(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// LogStats logs connection pool statistics, useful during shutdown
func (c *Client) LogStats(log *zap.Logger) {
	stats := c.rdb.PoolStats()
	log.Debug("redis pool stats",
		zap.Uint32("hits", stats.Hits),
		zap.Uint32("misses", stats.Misses),
		zap.Uint32("total_conns", stats.TotalConns),
		zap.Uint32("idle_conns", stats.IdleConns))
}
