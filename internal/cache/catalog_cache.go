package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/maryrl/loja-fullstack/internal/models"
	"go.uber.org/zap"
)

const (
	ProductCachePrefix     = "product:detail:v:"
	ProductListCachePrefix = "products:v:"
	CacheVersionKey        = "products:version"
)

// redisAPI is the subset of *redis.Client the cache uses.
type redisAPI interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// CatalogCache caches product reads in Redis. Every key embeds a version
// counter so a single INCR invalidates every cached page and product. A nil
// *CatalogCache is valid and caches nothing.
//
// Readers get the version together with the lookup and must hand that same
// version back when storing what they loaded. A write racing an invalidation
// then lands under the retired version and is never served.
type CatalogCache struct {
	redis  redisAPI
	ttl    time.Duration
	logger *zap.Logger
}

func NewCatalogCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CatalogCache {
	if client == nil {
		return nil
	}
	return &CatalogCache{redis: client, ttl: ttl, logger: logger}
}

// GetProductList retrieves a cached product page. The returned version is
// the one current at lookup time, 0 when unknown.
func (cc *CatalogCache) GetProductList(ctx context.Context, category string, skip, limit int64) ([]models.Product, int64, bool) {
	if cc == nil {
		return nil, 0, false
	}
	version, err := cc.getCacheVersion(ctx)
	if err != nil {
		return nil, 0, false
	}

	cached, err := cc.redis.Get(ctx, listCacheKey(version, category, skip, limit)).Bytes()
	if err != nil {
		return nil, version, false
	}

	var products []models.Product
	if err := json.Unmarshal(cached, &products); err != nil {
		cc.logger.Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, version, false
	}
	return products, version, true
}

// SetProductListAsync caches a product page in the background under the
// version observed before the page was loaded.
func (cc *CatalogCache) SetProductListAsync(version int64, category string, skip, limit int64, products []models.Product) {
	if cc == nil || version <= 0 {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		payload, err := json.Marshal(products)
		if err != nil {
			cc.logger.Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}
		if err := cc.redis.Set(bgCtx, listCacheKey(version, category, skip, limit), payload, cc.ttl).Err(); err != nil {
			cc.logger.Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// GetProduct retrieves a cached product and the version current at lookup
// time.
func (cc *CatalogCache) GetProduct(ctx context.Context, id string) (*models.Product, int64, bool) {
	if cc == nil {
		return nil, 0, false
	}
	version, err := cc.getCacheVersion(ctx)
	if err != nil {
		return nil, 0, false
	}
	cached, err := cc.redis.Get(ctx, productCacheKey(version, id)).Bytes()
	if err != nil {
		return nil, version, false
	}
	var product models.Product
	if err := json.Unmarshal(cached, &product); err != nil {
		return nil, version, false
	}
	return &product, version, true
}

// SetProductAsync caches a single product in the background.
func (cc *CatalogCache) SetProductAsync(version int64, product *models.Product) {
	if cc == nil || product == nil || version <= 0 {
		return
	}
	p := *product
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		payload, err := json.Marshal(p)
		if err != nil {
			cc.logger.Warn("Failed to marshal product for cache", zap.Error(err), zap.String("product_id", p.ID))
			return
		}
		if err := cc.redis.Set(bgCtx, productCacheKey(version, p.ID), payload, cc.ttl).Err(); err != nil {
			cc.logger.Warn("Failed to cache product", zap.Error(err), zap.String("product_id", p.ID))
		}
	}()
}

// InvalidateProduct retires every cached list and product entry.
func (cc *CatalogCache) InvalidateProduct(ctx context.Context, productID string) {
	if cc == nil {
		return
	}
	if err := cc.redis.Incr(ctx, CacheVersionKey).Err(); err != nil {
		cc.logger.Error("Failed to invalidate catalog cache", zap.Error(err), zap.String("product_id", productID))
	}
}

// getCacheVersion reads the catalog version, seeding it on first use.
func (cc *CatalogCache) getCacheVersion(ctx context.Context) (int64, error) {
	ver, err := cc.redis.Get(ctx, CacheVersionKey).Int64()
	if err == nil && ver > 0 {
		return ver, nil
	}
	if err == redis.Nil {
		if err := cc.redis.SetNX(ctx, CacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return cc.redis.Get(ctx, CacheVersionKey).Int64()
	}
	if err == nil {
		return 0, fmt.Errorf("invalid cache version %d", ver)
	}
	return 0, err
}

func listCacheKey(version int64, category string, skip, limit int64) string {
	return fmt.Sprintf("%s%d:c:%s:s:%d:l:%d", ProductListCachePrefix, version, category, skip, limit)
}

func productCacheKey(version int64, id string) string {
	return fmt.Sprintf("%s%d:%s", ProductCachePrefix, version, id)
}
