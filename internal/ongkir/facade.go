// Package ongkir is the public surface of the shipping API client: location lookups,
// cost quotes and package tracking, each run through connectivity checks, retries
// and response normalization.
package ongkir

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golek-ongkir/internal/core/apiclient"
	"golek-ongkir/internal/core/cache"
	"golek-ongkir/internal/core/config"
	"golek-ongkir/internal/core/connectivity"
	"golek-ongkir/internal/core/httpclient"
	"golek-ongkir/internal/core/logger"
	"golek-ongkir/internal/core/retry"
	locationadapter "golek-ongkir/internal/features/locations/adapters"
	locationdomain "golek-ongkir/internal/features/locations/domain"
	locationports "golek-ongkir/internal/features/locations/ports"
	locationservice "golek-ongkir/internal/features/locations/service"
	shippingadapter "golek-ongkir/internal/features/shipping/adapters"
	shippingdomain "golek-ongkir/internal/features/shipping/domain"
	shippingservice "golek-ongkir/internal/features/shipping/service"
	trackingadapter "golek-ongkir/internal/features/tracking/adapters"
	trackingdomain "golek-ongkir/internal/features/tracking/domain"
	trackingservice "golek-ongkir/internal/features/tracking/service"

	"go.uber.org/zap"
)

// cachePingTimeout bounds the startup reachability check of the location cache.
const cachePingTimeout = 3 * time.Second

// Facade runs the four upstream operations. It holds no per-call state and is safe
// for concurrent use.
type Facade struct {
	locations *locationservice.LocationService
	shipping  *shippingservice.CostService
	tracking  *trackingservice.TrackingService
	cache     cache.Cache
}

type options struct {
	probe connectivity.Probe
	httpc *http.Client
	cache cache.Cache
}

// Option overrides a dependency New would otherwise build from the configuration.
type Option func(*options)

// WithProbe replaces the connectivity probe.
func WithProbe(p connectivity.Probe) Option {
	return func(o *options) { o.probe = p }
}

// WithHTTPClient replaces the HTTP client used for upstream calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpc = c }
}

// WithCache replaces the location cache. It takes precedence over REDIS_URL.
func WithCache(c cache.Cache) Option {
	return func(o *options) { o.cache = c }
}

// New wires probe, HTTP client, transport, retry policy, adapters and services from cfg.
func New(ctx context.Context, cfg *config.AppConfig, opts ...Option) (*Facade, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log := logger.Named("ongkir")

	if o.probe == nil {
		o.probe = newProbe(cfg.Connectivity)
	}
	if o.httpc == nil {
		o.httpc = httpclient.NewClient(httpclient.Options{
			Timeout: cfg.API.Timeout,
			Headers: map[string]string{
				"Content-Type": "application/json",
				"Accept":       "application/json",
				"User-Agent":   cfg.API.UserAgent,
			},
			Proxy: httpclient.ProxySettings{
				Enabled:  cfg.Proxy.Enabled,
				Hostname: cfg.Proxy.Hostname,
				Port:     cfg.Proxy.Port,
				Username: cfg.Proxy.Username,
				Password: cfg.Proxy.Password,
			},
		})
	}

	client, err := apiclient.New(cfg.API.BaseURL, o.httpc)
	if err != nil {
		return nil, &config.ConfigurationError{Key: "API_BASE_URL", Reason: err.Error()}
	}

	policy := retry.NewPolicy(cfg.Retry.MaxAttempts, cfg.Retry.Delay, o.probe, apiclient.IsRetryable)

	if o.cache == nil && cfg.Cache.RedisURL != "" {
		rc, err := cache.NewRedisAdapter(cfg.Cache.RedisURL, "ongkir:")
		if err != nil {
			return nil, &config.ConfigurationError{Key: "REDIS_URL", Reason: err.Error()}
		}
		o.cache = rc
	}

	var locations locationports.LocationProvider = locationadapter.NewAPIAdapter(client, policy)
	if o.cache != nil {
		pingCtx, cancel := context.WithTimeout(ctx, cachePingTimeout)
		if err := o.cache.Ping(pingCtx); err != nil {
			log.Warn("Location cache unreachable, lookups will fall through until it recovers", zap.Error(err))
		}
		cancel()
		locations = locationadapter.NewCachedProvider(locations, o.cache, cfg.Cache.LocationTTL)
	}

	log.Info("Shipping API client ready",
		zap.String("base_url", cfg.API.BaseURL),
		zap.Int("max_attempts", policy.MaxAttempts),
		zap.Duration("retry_delay", policy.Delay),
		zap.Bool("location_cache", o.cache != nil),
	)

	return &Facade{
		locations: locationservice.NewLocationService(locations),
		shipping:  shippingservice.NewCostService(shippingadapter.NewAPIAdapter(client, policy)),
		tracking:  trackingservice.NewTrackingService(trackingadapter.NewAPIAdapter(client, policy)),
		cache:     o.cache,
	}, nil
}

func newProbe(cfg config.ConnectivityConfig) connectivity.Probe {
	if cfg.ProbeAddr != "" {
		return connectivity.NewDialProbe(cfg.ProbeAddr, cfg.ProbeTimeout)
	}
	return connectivity.NewInterfaceProbe()
}

// GetLocationHierarchy lists provinces, or the cities or districts under parentID.
func (f *Facade) GetLocationHierarchy(ctx context.Context, tier locationdomain.Tier, parentID int) (apiclient.Envelope[[]locationdomain.Location], error) {
	return f.locations.GetHierarchy(ctx, tier, parentID)
}

// SearchLocations finds locations by free text of at least two characters.
func (f *Facade) SearchLocations(ctx context.Context, query string) (apiclient.Envelope[[]locationdomain.SearchResult], error) {
	return f.locations.Search(ctx, query)
}

// CalculateCost quotes every courier in courierCodes for a parcel of weightGrams.
func (f *Facade) CalculateCost(ctx context.Context, origin, destination, weightGrams int, courierCodes []string) (apiclient.Envelope[[]shippingdomain.CostResult], error) {
	return f.shipping.Calculate(ctx, shippingdomain.CostQuery{
		Origin:      origin,
		Destination: destination,
		Weight:      weightGrams,
		Couriers:    courierCodes,
	})
}

// TrackPackage looks up a waybill. lastPhoneDigits may be empty and is only sent for JNE.
func (f *Facade) TrackPackage(ctx context.Context, courierCode, waybill, lastPhoneDigits string) (apiclient.Envelope[trackingdomain.TrackingResult], error) {
	return f.tracking.Track(ctx, trackingdomain.TrackQuery{
		Courier:         courierCode,
		Waybill:         waybill,
		LastPhoneNumber: lastPhoneDigits,
	})
}

// Locations returns the location service, for mounting HTTP handlers.
func (f *Facade) Locations() *locationservice.LocationService { return f.locations }

// Shipping returns the cost service, for mounting HTTP handlers.
func (f *Facade) Shipping() *shippingservice.CostService { return f.shipping }

// Tracking returns the tracking service, for mounting HTTP handlers.
func (f *Facade) Tracking() *trackingservice.TrackingService { return f.tracking }

// Close releases the cache connection, if any.
func (f *Facade) Close() error {
	if f.cache == nil {
		return nil
	}
	if err := f.cache.Close(); err != nil {
		return fmt.Errorf("close location cache: %w", err)
	}
	return nil
}
