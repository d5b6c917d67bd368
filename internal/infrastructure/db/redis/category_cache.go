package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopfront/storefront/internal/core/domain"
)

const (
	categoryCacheKey      = "catalog:categories"
	categoryGenerationKey = "catalog:categories:gen"
	categoryCacheTTL      = 10 * time.Minute
)

// CategoryCache stores the rendered category listing as JSON next to a
// generation counter. Invalidate bumps the counter, and Set writes under
// WATCH so a listing loaded before an invalidation is never stored after it.
type CategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCategoryCache creates a CategoryCache. A non-positive ttl uses the default.
func NewCategoryCache(client *redis.Client, ttl time.Duration) *CategoryCache {
	if ttl <= 0 {
		ttl = categoryCacheTTL
	}
	return &CategoryCache{client: client, ttl: ttl}
}

// Get reports a miss on any error, including a Redis outage.
func (c *CategoryCache) Get(ctx context.Context) ([]*domain.Category, int64, bool) {
	vals, err := c.client.MGet(ctx, categoryCacheKey, categoryGenerationKey).Result()
	if err != nil || len(vals) != 2 {
		return nil, 0, false
	}
	generation := parseGeneration(vals[1])

	raw, ok := vals[0].(string)
	if !ok {
		return nil, generation, false
	}
	var categories []*domain.Category
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		return nil, generation, false
	}
	return categories, generation, true
}

// Set stores categories if generation is still current. A lost race is not
// an error: it returns false and leaves the cache empty.
func (c *CategoryCache) Set(ctx context.Context, generation int64, categories []*domain.Category) (bool, error) {
	raw, err := json.Marshal(categories)
	if err != nil {
		return false, fmt.Errorf("encode categories: %w", err)
	}

	stored := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, categoryGenerationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}
		if _, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, categoryCacheKey, raw, c.ttl)
			return nil
		}); err != nil {
			return err
		}
		stored = true
		return nil
	}, categoryGenerationKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored, nil
}

func (c *CategoryCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, categoryGenerationKey)
		pipe.Del(ctx, categoryCacheKey)
		return nil
	})
	return err
}

func parseGeneration(v interface{}) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
