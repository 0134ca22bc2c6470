// Package adaptredis caches generated recommendations in Redis.
package adaptredis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"dockify/internal/domain"
)

// Cache implements domain.RecommendationStore on a Redis client.
type Cache struct {
	client *redis.Client
	prefix string
}

var _ domain.RecommendationStore = (*Cache)(nil)

// Open connects to addr and pings it.
func Open(ctx context.Context, addr, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &Cache{client: client, prefix: "dockify"}, nil
}

func (c *Cache) key(userID int64) string {
	return fmt.Sprintf("%s:user:%d:recommendation", c.prefix, userID)
}

// GetRecommendation returns the cached text. A missing key is a miss, not an error.
func (c *Cache) GetRecommendation(ctx context.Context, userID int64) (string, bool, error) {
	v, err := c.client.Get(ctx, c.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// SetRecommendation stores text with ttl.
func (c *Cache) SetRecommendation(ctx context.Context, userID int64, text string, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(userID), text, ttl).Err()
}

// InvalidateRecommendation deletes the cached text.
func (c *Cache) InvalidateRecommendation(ctx context.Context, userID int64) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

// Ping checks the connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}
