package adapters

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"golek-ongkir/internal/core/apiclient"
	"golek-ongkir/internal/core/logger"
	"golek-ongkir/internal/core/retry"
	"golek-ongkir/internal/features/locations/domain"

	"go.uber.org/zap"
)

// APIAdapter implements ports.LocationProvider against the shipping API.
type APIAdapter struct {
	client *apiclient.Client
	policy *retry.Policy
	logger *zap.Logger
}

// NewAPIAdapter creates an APIAdapter that runs every call under policy.
func NewAPIAdapter(client *apiclient.Client, policy *retry.Policy) *APIAdapter {
	return &APIAdapter{
		client: client,
		policy: policy,
		logger: logger.Named("locations"),
	}
}

// Provinces calls GET /provinces.
func (a *APIAdapter) Provinces(ctx context.Context) (apiclient.Envelope[[]domain.Location], error) {
	return fetch[[]domain.Location](ctx, a, "/provinces", nil)
}

// Cities calls GET /cities?province={id}.
func (a *APIAdapter) Cities(ctx context.Context, provinceID int) (apiclient.Envelope[[]domain.Location], error) {
	return fetch[[]domain.Location](ctx, a, "/cities", url.Values{"province": {strconv.Itoa(provinceID)}})
}

// Districts calls GET /districts?city={id}.
func (a *APIAdapter) Districts(ctx context.Context, cityID int) (apiclient.Envelope[[]domain.Location], error) {
	return fetch[[]domain.Location](ctx, a, "/districts", url.Values{"city": {strconv.Itoa(cityID)}})
}

// Search calls GET /search?q={query}.
func (a *APIAdapter) Search(ctx context.Context, query string) (apiclient.Envelope[[]domain.SearchResult], error) {
	return fetch[[]domain.SearchResult](ctx, a, "/search", url.Values{"q": {query}})
}

func fetch[T any](ctx context.Context, a *APIAdapter, path string, query url.Values) (apiclient.Envelope[T], error) {
	raw, err := retry.Do(ctx, a.policy, func(ctx context.Context) (json.RawMessage, error) {
		return a.client.Get(ctx, path, query)
	})
	if err != nil {
		return apiclient.Envelope[T]{}, err
	}

	frame, err := apiclient.SplitEnvelope("location", raw)
	if err != nil {
		a.logger.Warn("Unrecognized location response", zap.String("path", path), zap.Error(err))
		return apiclient.Envelope[T]{}, err
	}

	return apiclient.Decode[T]("location", frame)
}
