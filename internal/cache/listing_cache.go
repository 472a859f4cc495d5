package cache

import (
	"context"
	"encoding/json"
	"time"

	"product-management/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// AllProductsKey is the cache key for the full product listing.
const AllProductsKey = "all_products"

// ListingCache is a best-effort redis cache for the product listing. Every
// operation degrades to a no-op on error: cache failures are logged and never
// propagated, so a broken redis only costs latency, not correctness. A reader
// between a product write and the following invalidation may observe a stale
// list.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewListingCache creates a cache backed by the given redis client. A nil
// client disables caching entirely.
func NewListingCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ListingCache {
	return &ListingCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetProducts returns the cached listing and whether the cache had one.
func (c *ListingCache) GetProducts(ctx context.Context) ([]*domain.Product, bool) {
	if c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, AllProductsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Failed to read listing cache", zap.Error(err))
		}
		return nil, false
	}

	var products []*domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		c.logger.Warn("Failed to decode cached listing", zap.Error(err))
		return nil, false
	}

	return products, true
}

// SetProducts stores the listing with the configured TTL.
func (c *ListingCache) SetProducts(ctx context.Context, products []*domain.Product) {
	if c.client == nil {
		return
	}

	raw, err := json.Marshal(products)
	if err != nil {
		c.logger.Warn("Failed to encode listing for cache", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, AllProductsKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to write listing cache", zap.Error(err))
	}
}

// Invalidate drops a cache key.
func (c *ListingCache) Invalidate(ctx context.Context, key string) {
	if c.client == nil {
		return
	}

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("Failed to invalidate cache key",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
