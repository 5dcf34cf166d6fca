// Package cache keeps the reference data bundle in redis between requests.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domainErrors "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/errors"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
)

const referenceKey = "orderdesk:reference"

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Redis implements repository.ReferenceCache on top of redis.
type Redis struct {
	rdb redisClient
}

// NewRedis wraps a redis client.
func NewRedis(rdb redisClient) *Redis {
	return &Redis{rdb: rdb}
}

// Get returns the cached bundle or domain ErrNotFound on a miss.
func (c *Redis) Get(ctx context.Context) (*model.ReferenceData, error) {
	data, err := c.rdb.Get(ctx, referenceKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domainErrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read reference cache: %w", err)
	}

	var ref model.ReferenceData
	if err := json.Unmarshal(data, &ref); err != nil {
		return nil, fmt.Errorf("decode reference cache: %w", err)
	}
	return &ref, nil
}

// Set stores the bundle for ttl.
func (c *Redis) Set(ctx context.Context, data *model.ReferenceData, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode reference cache: %w", err)
	}
	if err := c.rdb.Set(ctx, referenceKey, payload, ttl).Err(); err != nil {
		return fmt.Errorf("write reference cache: %w", err)
	}
	return nil
}

// Noop is used when no redis address is configured; every lookup misses.
type Noop struct{}

// Get always misses.
func (Noop) Get(context.Context) (*model.ReferenceData, error) {
	return nil, domainErrors.ErrNotFound
}

// Set discards the bundle.
func (Noop) Set(context.Context, *model.ReferenceData, time.Duration) error {
	return nil
}
