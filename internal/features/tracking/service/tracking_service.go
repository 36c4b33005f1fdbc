package service

import (
	"context"
	"fmt"
	"strings"

	"golek-ongkir/internal/core/apiclient"
	"golek-ongkir/internal/core/apperror"
	"golek-ongkir/internal/core/courier"
	"golek-ongkir/internal/features/tracking/domain"
	"golek-ongkir/internal/features/tracking/ports"
)

// TrackingService validates tracking requests before they reach the provider.
type TrackingService struct {
	provider ports.TrackingProvider
}

// NewTrackingService creates a new TrackingService.
func NewTrackingService(provider ports.TrackingProvider) *TrackingService {
	return &TrackingService{
		provider: provider,
	}
}

// Track looks up a shipment. The last phone digits are only forwarded for couriers that use them.
func (s *TrackingService) Track(ctx context.Context, q domain.TrackQuery) (apiclient.Envelope[domain.TrackingResult], error) {
	var zero apiclient.Envelope[domain.TrackingResult]

	c, ok := courier.Lookup(q.Courier)
	if !ok {
		if strings.TrimSpace(q.Courier) == "" {
			return zero, apperror.Validation("courier", "select a courier")
		}
		return zero, apperror.Validation("courier", "%q is not a supported courier", q.Courier)
	}

	waybill := strings.TrimSpace(q.Waybill)
	if waybill == "" {
		return zero, apperror.Validation("waybill", "enter a waybill number")
	}

	req := domain.TrackQuery{Courier: c.Code, Waybill: waybill}
	if courier.AcceptsPhoneDigits(c.Code) {
		req.LastPhoneNumber = strings.TrimSpace(q.LastPhoneNumber)
	}

	env, err := s.provider.Track(ctx, req)
	if err != nil {
		return env, fmt.Errorf("track %s waybill: %w", c.Code, err)
	}
	return env, nil
}
