package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"nebula/internal/common/config"
	"nebula/internal/common/logger"
	"nebula/internal/common/metrics"
	"nebula/internal/models"
)

// BusinessCache is an optional redis read-through cache in front of
// business lookups. Directory detail pages hit the same handful of
// businesses repeatedly; a short TTL keeps them warm without owning any
// consistency story (the backend stays authoritative).
type BusinessCache struct {
	api    *Client
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewBusinessCache connects to redis per cfg and wraps api. Returns the
// bare client behavior when caching is disabled.
func NewBusinessCache(api *Client, cfg config.CacheConfig, log logger.Logger) *BusinessCache {
	var rdb *redis.Client
	if cfg.Enabled && cfg.Address != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:         cfg.Address,
			Password:     cfg.Password,
			DB:           cfg.DB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
	}
	return &BusinessCache{
		api:    api,
		rdb:    rdb,
		ttl:    cfg.EntryTTL(),
		logger: log.WithFields(map[string]interface{}{"component": "cache"}),
	}
}

func cacheKey(id string) string {
	return "nebula:business:" + id
}

// GetBusiness returns the cached business when present, otherwise fetches
// from the API and populates the cache best-effort. Redis failures degrade
// to a plain API call, never to an error.
func (b *BusinessCache) GetBusiness(ctx context.Context, id string) (*models.Business, error) {
	if b.rdb != nil {
		raw, err := b.rdb.Get(ctx, cacheKey(id)).Result()
		if err == nil {
			var biz models.Business
			if err := json.Unmarshal([]byte(raw), &biz); err == nil {
				metrics.CacheHits.WithLabelValues("businesses").Inc()
				return &biz, nil
			}
		} else if err != redis.Nil {
			b.logger.WithError(err).Warn("cache read failed", map[string]interface{}{"id": id})
		}
		metrics.CacheMisses.WithLabelValues("businesses").Inc()
	}

	resp, err := b.api.GetBusiness(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.rdb != nil {
		if data, err := json.Marshal(resp.Data); err == nil {
			if err := b.rdb.Set(ctx, cacheKey(id), data, b.ttl).Err(); err != nil {
				b.logger.WithError(err).Warn("cache write failed", map[string]interface{}{"id": id})
			}
		}
	}
	return &resp.Data, nil
}

// Invalidate drops a cached business, used after profile mutations.
func (b *BusinessCache) Invalidate(ctx context.Context, id string) {
	if b.rdb == nil {
		return
	}
	if err := b.rdb.Del(ctx, cacheKey(id)).Err(); err != nil {
		b.logger.WithError(err).Warn("cache invalidate failed", map[string]interface{}{"id": id})
	}
}

// Close releases the redis connection.
func (b *BusinessCache) Close() error {
	if b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
