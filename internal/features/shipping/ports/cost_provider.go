package ports

import (
	"context"

	"golek-ongkir/internal/core/apiclient"
	"golek-ongkir/internal/features/shipping/domain"
)

// CostProvider quotes shipping costs.
// This is a Secondary Port (Driven Port).
type CostProvider interface {
	// Costs returns the grouped cost options for q. q has already been validated.
	Costs(ctx context.Context, q domain.CostQuery) (apiclient.Envelope[[]domain.CostResult], error)
}
