package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"articles-backend/internal/model"
)

const categoryListKey = "articles:categories:all"

type CategoryCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewCategoryCache(client *redisv9.Client, ttl time.Duration) *CategoryCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CategoryCache{
		client: client,
		ttl:    ttl,
	}
}

// GetList reports a miss with ok == false and a nil error.
func (c *CategoryCache) GetList(ctx context.Context) ([]model.Category, bool, error) {
	raw, err := c.client.Get(ctx, categoryListKey).Bytes()
	if errors.Is(err, redisv9.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get categories failed: %w", err)
	}

	var categories []model.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached categories failed: %w", err)
	}
	return categories, true, nil
}

func (c *CategoryCache) SetList(ctx context.Context, categories []model.Category) error {
	payload, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("marshal categories cache failed: %w", err)
	}
	if err := c.client.Set(ctx, categoryListKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set categories failed: %w", err)
	}
	return nil
}

func (c *CategoryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, categoryListKey).Err(); err != nil {
		return fmt.Errorf("redis delete categories failed: %w", err)
	}
	return nil
}
