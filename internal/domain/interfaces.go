package domain

import "context"

// CatalogClient is the network interface of the remote catalog service.
// Implemented by internal/adapter/source/tvmaze.
type CatalogClient interface {
	// GetShows returns one page of the full show index
	GetShows(ctx context.Context, page int) ([]Entry, error)

	// GetShowsByCountry returns the listing for the configured country.
	// The endpoint is not paginated.
	GetShowsByCountry(ctx context.Context) ([]Entry, error)

	// Search returns shows matching the query criteria
	Search(ctx context.Context, query Query, page int) ([]Entry, error)

	// GetCast returns the cast list of a show in billing order
	GetCast(ctx context.Context, id string) ([]CastMember, error)

	// GetSeasons returns all seasons of a show
	GetSeasons(ctx context.Context, id string) ([]Season, error)

	// GetEpisodes returns all episodes of a show
	GetEpisodes(ctx context.Context, id string) ([]Episode, error)
}
