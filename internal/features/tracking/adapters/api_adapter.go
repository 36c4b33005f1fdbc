package adapters

import (
	"context"
	"encoding/json"

	"golek-ongkir/internal/core/apiclient"
	"golek-ongkir/internal/core/logger"
	"golek-ongkir/internal/core/retry"
	"golek-ongkir/internal/features/tracking/domain"

	"go.uber.org/zap"
)

// APIAdapter implements ports.TrackingProvider against the shipping API.
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
		logger: logger.Named("tracking"),
	}
}

// Track calls POST /track and normalizes the body to the canonical envelope.
func (a *APIAdapter) Track(ctx context.Context, q domain.TrackQuery) (apiclient.Envelope[domain.TrackingResult], error) {
	raw, err := retry.Do(ctx, a.policy, func(ctx context.Context) (json.RawMessage, error) {
		return a.client.Post(ctx, "/track", q)
	})
	if err != nil {
		return apiclient.Envelope[domain.TrackingResult]{}, err
	}

	normalized, err := NormalizeTracking(raw)
	if err != nil {
		a.logger.Warn("Unrecognized tracking payload",
			zap.String("courier", q.Courier),
			zap.String("waybill", q.Waybill),
			zap.Error(err),
		)
		return apiclient.Envelope[domain.TrackingResult]{}, err
	}

	frame, err := apiclient.SplitEnvelope("tracking", normalized)
	if err != nil {
		return apiclient.Envelope[domain.TrackingResult]{}, err
	}
	return apiclient.Decode[domain.TrackingResult]("tracking", frame)
}
