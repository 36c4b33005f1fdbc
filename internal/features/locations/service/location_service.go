package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golek-ongkir/internal/core/apiclient"
	"golek-ongkir/internal/core/apperror"
	"golek-ongkir/internal/features/locations/domain"
	"golek-ongkir/internal/features/locations/ports"
)

// MinSearchLength is the shortest query sent to the upstream search.
const MinSearchLength = 2

// LocationService validates location requests before they reach the provider.
type LocationService struct {
	provider ports.LocationProvider
}

// NewLocationService creates a new LocationService.
func NewLocationService(provider ports.LocationProvider) *LocationService {
	return &LocationService{
		provider: provider,
	}
}

// GetHierarchy lists one tier of the hierarchy. parentID is ignored for provinces and
// must be positive for cities and districts.
func (s *LocationService) GetHierarchy(ctx context.Context, tier domain.Tier, parentID int) (apiclient.Envelope[[]domain.Location], error) {
	if tier.NeedsParent() && parentID <= 0 {
		return apiclient.Envelope[[]domain.Location]{}, apperror.Validation("parent_id", "missing required location selection for %s", tier)
	}

	var (
		env apiclient.Envelope[[]domain.Location]
		err error
	)
	switch tier {
	case domain.TierProvince:
		env, err = s.provider.Provinces(ctx)
	case domain.TierCity:
		env, err = s.provider.Cities(ctx, parentID)
	case domain.TierDistrict:
		env, err = s.provider.Districts(ctx, parentID)
	default:
		return env, apperror.Validation("tier", "%q is not one of province, city, district", string(tier))
	}
	if err != nil {
		return env, fmt.Errorf("list %s locations: %w", tier, err)
	}
	return env, nil
}

// Search looks up locations by free text. The trimmed query must have at least
// MinSearchLength characters; shorter input never reaches the network.
func (s *LocationService) Search(ctx context.Context, query string) (apiclient.Envelope[[]domain.SearchResult], error) {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < MinSearchLength {
		return apiclient.Envelope[[]domain.SearchResult]{}, apperror.Validation("query", "enter at least %d characters", MinSearchLength)
	}

	env, err := s.provider.Search(ctx, q)
	if err != nil {
		return env, fmt.Errorf("search locations: %w", err)
	}
	return env, nil
}
