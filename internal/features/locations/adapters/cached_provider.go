package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golek-ongkir/internal/core/apiclient"
	"golek-ongkir/internal/core/cache"
	"golek-ongkir/internal/core/logger"
	"golek-ongkir/internal/features/locations/domain"
	"golek-ongkir/internal/features/locations/ports"

	"go.uber.org/zap"
)

// CachedProvider serves the province/city/district lists from a cache and
// fills it from the wrapped provider. Search always goes to the wrapped provider.
// Only success envelopes are cached.
type CachedProvider struct {
	next   ports.LocationProvider
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedProvider wraps next with c.
func NewCachedProvider(next ports.LocationProvider, c cache.Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		next:   next,
		cache:  c,
		ttl:    ttl,
		logger: logger.Named("location_cache"),
	}
}

// Provinces implements ports.LocationProvider.
func (p *CachedProvider) Provinces(ctx context.Context) (apiclient.Envelope[[]domain.Location], error) {
	return p.cached(ctx, "provinces", p.next.Provinces)
}

// Cities implements ports.LocationProvider.
func (p *CachedProvider) Cities(ctx context.Context, provinceID int) (apiclient.Envelope[[]domain.Location], error) {
	return p.cached(ctx, fmt.Sprintf("cities:%d", provinceID), func(ctx context.Context) (apiclient.Envelope[[]domain.Location], error) {
		return p.next.Cities(ctx, provinceID)
	})
}

// Districts implements ports.LocationProvider.
func (p *CachedProvider) Districts(ctx context.Context, cityID int) (apiclient.Envelope[[]domain.Location], error) {
	return p.cached(ctx, fmt.Sprintf("districts:%d", cityID), func(ctx context.Context) (apiclient.Envelope[[]domain.Location], error) {
		return p.next.Districts(ctx, cityID)
	})
}

// Search implements ports.LocationProvider.
func (p *CachedProvider) Search(ctx context.Context, query string) (apiclient.Envelope[[]domain.SearchResult], error) {
	return p.next.Search(ctx, query)
}

type loadFunc func(ctx context.Context) (apiclient.Envelope[[]domain.Location], error)

func (p *CachedProvider) cached(ctx context.Context, key string, load loadFunc) (apiclient.Envelope[[]domain.Location], error) {
	if env, ok := p.lookup(ctx, key); ok {
		return env, nil
	}

	env, err := load(ctx)
	if err != nil || env.Error {
		return env, err
	}

	data, err := json.Marshal(env)
	if err != nil {
		p.logger.Warn("Failed to encode locations for cache", zap.String("key", key), zap.Error(err))
		return env, nil
	}
	if err := p.cache.Set(ctx, key, data, p.ttl); err != nil {
		p.logger.Warn("Failed to store locations in cache", zap.String("key", key), zap.Error(err))
	}
	return env, nil
}

func (p *CachedProvider) lookup(ctx context.Context, key string) (apiclient.Envelope[[]domain.Location], bool) {
	var env apiclient.Envelope[[]domain.Location]

	data, err := p.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			p.logger.Warn("Location cache unavailable, falling through", zap.String("key", key), zap.Error(err))
		}
		return env, false
	}

	if err := json.Unmarshal(data, &env); err != nil || env.Data == nil {
		p.logger.Warn("Discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		return env, false
	}
	return env, true
}
