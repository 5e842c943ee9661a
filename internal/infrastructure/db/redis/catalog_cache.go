package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bandhub/bandhub/internal/core/domain"
)

const (
	keyBands  = "catalog:bands"
	keySearch = "catalog:search:"

	// DefaultCacheTTL applies when the configured TTL is not positive.
	DefaultCacheTTL = time.Minute
)

// CatalogCache keeps the band list and search results in Redis as JSON.
type CatalogCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewCatalogCache(rdb redis.Cmdable, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CatalogCache{rdb: rdb, ttl: ttl}
}

// GetBands reports a miss as (nil, false, nil).
func (c *CatalogCache) GetBands(ctx context.Context) ([]domain.Band, bool, error) {
	return c.get(ctx, keyBands)
}

func (c *CatalogCache) SetBands(ctx context.Context, bands []domain.Band) error {
	return c.set(ctx, keyBands, bands)
}

func (c *CatalogCache) GetSearch(ctx context.Context, term string) ([]domain.Band, bool, error) {
	return c.get(ctx, searchKey(term))
}

func (c *CatalogCache) SetSearch(ctx context.Context, term string, bands []domain.Band) error {
	return c.set(ctx, searchKey(term), bands)
}

func (c *CatalogCache) get(ctx context.Context, key string) ([]domain.Band, bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("catalog cache get %s: %w", key, err)
	}
	var bands []domain.Band
	if err := json.Unmarshal(b, &bands); err != nil {
		return nil, false, fmt.Errorf("catalog cache decode %s: %w", key, err)
	}
	return bands, true, nil
}

func (c *CatalogCache) set(ctx context.Context, key string, bands []domain.Band) error {
	if bands == nil {
		bands = []domain.Band{}
	}
	b, err := json.Marshal(bands)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("catalog cache set %s: %w", key, err)
	}
	return nil
}

func searchKey(term string) string {
	return keySearch + strings.ToLower(strings.TrimSpace(term))
}
