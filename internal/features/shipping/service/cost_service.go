package service

import (
	"context"
	"fmt"

	"golek-ongkir/internal/core/apiclient"
	"golek-ongkir/internal/core/apperror"
	"golek-ongkir/internal/core/courier"
	"golek-ongkir/internal/features/shipping/domain"
	"golek-ongkir/internal/features/shipping/ports"
)

// CostService validates cost queries before they reach the provider.
type CostService struct {
	provider ports.CostProvider
}

// NewCostService creates a new CostService.
func NewCostService(provider ports.CostProvider) *CostService {
	return &CostService{
		provider: provider,
	}
}

// Calculate quotes q. Courier codes are normalized and de-duplicated in order.
func (s *CostService) Calculate(ctx context.Context, q domain.CostQuery) (apiclient.Envelope[[]domain.CostResult], error) {
	var zero apiclient.Envelope[[]domain.CostResult]

	if q.Origin <= 0 {
		return zero, apperror.Validation("origin", "missing required location selection")
	}
	if q.Destination <= 0 {
		return zero, apperror.Validation("destination", "missing required location selection")
	}
	if q.Weight <= 0 {
		return zero, apperror.Validation("weight", "must be a positive number of grams")
	}

	codes, err := courierCodes(q.Couriers)
	if err != nil {
		return zero, err
	}
	q.Couriers = codes

	env, err := s.provider.Costs(ctx, q)
	if err != nil {
		return env, fmt.Errorf("calculate cost: %w", err)
	}
	return env, nil
}

func courierCodes(in []string) ([]string, error) {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		c, ok := courier.Lookup(raw)
		if !ok {
			return nil, apperror.Validation("courier", "%q is not a supported courier", raw)
		}
		if seen[c.Code] {
			continue
		}
		seen[c.Code] = true
		out = append(out, c.Code)
	}
	if len(out) == 0 {
		return nil, apperror.Validation("courier", "select at least one courier")
	}
	return out, nil
}
