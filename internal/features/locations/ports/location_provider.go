package ports

import (
	"context"

	"golek-ongkir/internal/core/apiclient"
	"golek-ongkir/internal/features/locations/domain"
)

// LocationProvider fetches the location hierarchy and search results.
// This is a Secondary Port (Driven Port).
type LocationProvider interface {
	// Provinces lists every province.
	Provinces(ctx context.Context) (apiclient.Envelope[[]domain.Location], error)
	// Cities lists the cities of a province.
	Cities(ctx context.Context, provinceID int) (apiclient.Envelope[[]domain.Location], error)
	// Districts lists the districts of a city.
	Districts(ctx context.Context, cityID int) (apiclient.Envelope[[]domain.Location], error)
	// Search finds locations matching a free-text query.
	Search(ctx context.Context, query string) (apiclient.Envelope[[]domain.SearchResult], error)
}
