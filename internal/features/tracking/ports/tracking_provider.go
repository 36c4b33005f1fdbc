package ports

import (
	"context"

	"golek-ongkir/internal/core/apiclient"
	"golek-ongkir/internal/features/tracking/domain"
)

// TrackingProvider looks up a shipment by courier and waybill.
// This is a Secondary Port (Driven Port).
type TrackingProvider interface {
	// Track returns the canonical tracking envelope for q. q has already been validated.
	Track(ctx context.Context, q domain.TrackQuery) (apiclient.Envelope[domain.TrackingResult], error)
}
