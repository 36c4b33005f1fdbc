package adapters

import (
	"context"
	"encoding/json"
	"strings"

	"golek-ongkir/internal/core/apiclient"
	"golek-ongkir/internal/core/logger"
	"golek-ongkir/internal/core/retry"
	"golek-ongkir/internal/features/shipping/domain"

	"go.uber.org/zap"
)

// costRequest is the body of POST /cost.
type costRequest struct {
	Origin      int    `json:"origin"`
	Destination int    `json:"destination"`
	Weight      int    `json:"weight"`
	Courier     string `json:"courier"`
}

// APIAdapter implements ports.CostProvider against the shipping API.
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
		logger: logger.Named("shipping"),
	}
}

// Costs calls POST /cost and normalizes the result to the grouped shape.
func (a *APIAdapter) Costs(ctx context.Context, q domain.CostQuery) (apiclient.Envelope[[]domain.CostResult], error) {
	body := costRequest{
		Origin:      q.Origin,
		Destination: q.Destination,
		Weight:      q.Weight,
		Courier:     strings.Join(q.Couriers, ","),
	}

	raw, err := retry.Do(ctx, a.policy, func(ctx context.Context) (json.RawMessage, error) {
		return a.client.Post(ctx, "/cost", body)
	})
	if err != nil {
		return apiclient.Envelope[[]domain.CostResult]{}, err
	}

	frame, err := apiclient.SplitEnvelope("cost", raw)
	if err != nil {
		a.logger.Warn("Unrecognized cost envelope", zap.Error(err))
		return apiclient.Envelope[[]domain.CostResult]{}, err
	}
	if frame.Error {
		return apiclient.Envelope[[]domain.CostResult]{Error: true, Status: frame.Status, Message: frame.Message}, nil
	}

	results, err := NormalizeCosts(frame.Data)
	if err != nil {
		a.logger.Warn("Unrecognized cost payload", zap.Error(err))
		return apiclient.Envelope[[]domain.CostResult]{}, err
	}

	a.logger.Debug("Cost quote received",
		zap.String("courier", body.Courier),
		zap.Int("couriers_returned", len(results)),
	)
	return apiclient.Success(frame.Meta, results), nil
}
