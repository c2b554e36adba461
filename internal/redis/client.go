package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var (
	ErrCacheMiss = errors.New("cache miss")
	ErrLocked    = errors.New("lock held by another request")
)

const (
	lookupPrefix = "lookup:"
	lockPrefix   = "lock:order:"
)

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// Lookup caching

func (c *Client) SetLookup(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal lookup data: %w", err)
	}
	return c.rdb.Set(ctx, lookupPrefix+key, jsonData, ttl).Err()
}

func (c *Client) GetLookup(ctx context.Context, key string, dest interface{}) error {
	val, err := c.rdb.Get(ctx, lookupPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get lookup data: %w", err)
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("failed to unmarshal lookup data: %w", err)
	}
	return nil
}

// InvalidateLookups drops every cached entry whose key starts with prefix.
func (c *Client) InvalidateLookups(ctx context.Context, prefix string) error {
	iter := c.rdb.Scan(ctx, 0, lookupPrefix+prefix+"*", 100).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan lookup keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Order save locks

// AcquireOrderLock takes the save lock for one order. The returned token
// must be passed to ReleaseOrderLock.
func (c *Client) AcquireOrderLock(ctx context.Context, orderNo string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	ok, err := c.rdb.SetNX(ctx, lockPrefix+orderNo, token, ttl).Result()
	if err != nil {
		return "", fmt.Errorf("failed to acquire order lock: %w", err)
	}
	if !ok {
		return "", ErrLocked
	}
	return token, nil
}

func (c *Client) ReleaseOrderLock(ctx context.Context, orderNo, token string) error {
	if err := releaseScript.Run(ctx, c.rdb, []string{lockPrefix + orderNo}, token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("failed to release order lock: %w", err)
	}
	return nil
}
