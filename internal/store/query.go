package store

import (
	"context"

	"github.com/mmcdole/marquee/internal/domain"
)

// Listing actions do not return errors. A failure is stored in LastError,
// the cursor is rolled back for MORE and loading is cleared; callers poll
// IsLoading and LastError.

// FetchShows loads the default show index. INIT replaces the results, MORE
// appends the next page.
func (s *Store) FetchShows(ctx context.Context, mode domain.FetchMode) {
	s.runFetch(ctx, "fetchShows", mode, false, func(ctx context.Context, page int) ([]domain.Entry, error) {
		return s.client.GetShows(ctx, page)
	})
}

// FetchCountryShows loads the listing for the client's configured country.
// The remote listing is not paginated but the cursor advances the same way
// as FetchShows.
func (s *Store) FetchCountryShows(ctx context.Context, mode domain.FetchMode) {
	s.runFetch(ctx, "fetchCountryShows", mode, false, func(ctx context.Context, _ int) ([]domain.Entry, error) {
		return s.client.GetShowsByCountry(ctx)
	})
}

// SearchShows runs a search. Results are always replaced, in MORE mode too.
func (s *Store) SearchShows(ctx context.Context, mode domain.FetchMode, query domain.Query) {
	s.runFetch(ctx, "searchShows", mode, true, func(ctx context.Context, page int) ([]domain.Entry, error) {
		return s.client.Search(ctx, query, page)
	})
}

func (s *Store) runFetch(
	ctx context.Context,
	op string,
	mode domain.FetchMode,
	replace bool,
	fetch func(ctx context.Context, page int) ([]domain.Entry, error),
) {
	page := s.beginFetch(mode)
	defer s.endFetch()

	entries, err := fetch(ctx, page)
	if err != nil {
		s.logger.Error("catalog fetch failed", "op", op, "mode", mode.String(), "page", page, "error", err)
		s.failFetch(mode, &domain.TransportError{Op: op, Err: err})
		return
	}

	s.completeFetch(mode, entries, replace)
	s.logger.Debug("catalog fetch complete", "op", op, "mode", mode.String(), "page", page, "count", len(entries))
}
