package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mmcdole/marquee/internal/domain"
)

// fakeClient is a domain.CatalogClient whose behaviour is set per test.
// Unset functions return empty results.
type fakeClient struct {
	getShows    func(ctx context.Context, page int) ([]domain.Entry, error)
	getCountry  func(ctx context.Context) ([]domain.Entry, error)
	search      func(ctx context.Context, q domain.Query, page int) ([]domain.Entry, error)
	getCast     func(ctx context.Context, id string) ([]domain.CastMember, error)
	getSeasons  func(ctx context.Context, id string) ([]domain.Season, error)
	getEpisodes func(ctx context.Context, id string) ([]domain.Episode, error)
}

func (f *fakeClient) GetShows(ctx context.Context, page int) ([]domain.Entry, error) {
	if f.getShows == nil {
		return nil, nil
	}
	return f.getShows(ctx, page)
}

func (f *fakeClient) GetShowsByCountry(ctx context.Context) ([]domain.Entry, error) {
	if f.getCountry == nil {
		return nil, nil
	}
	return f.getCountry(ctx)
}

func (f *fakeClient) Search(ctx context.Context, q domain.Query, page int) ([]domain.Entry, error) {
	if f.search == nil {
		return nil, nil
	}
	return f.search(ctx, q, page)
}

func (f *fakeClient) GetCast(ctx context.Context, id string) ([]domain.CastMember, error) {
	if f.getCast == nil {
		return nil, nil
	}
	return f.getCast(ctx, id)
}

func (f *fakeClient) GetSeasons(ctx context.Context, id string) ([]domain.Season, error) {
	if f.getSeasons == nil {
		return nil, nil
	}
	return f.getSeasons(ctx, id)
}

func (f *fakeClient) GetEpisodes(ctx context.Context, id string) ([]domain.Episode, error) {
	if f.getEpisodes == nil {
		return nil, nil
	}
	return f.getEpisodes(ctx, id)
}

func newTestStore(client *fakeClient) *Store {
	return New(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func flat(id string, rating float64, genres ...string) domain.Entry {
	return domain.NewFlatEntry(domain.Show{ID: domain.ID(id), Name: "show " + id, Genres: genres, Rating: domain.RatingOf(rating)})
}

func unrated(id string, genres ...string) domain.Entry {
	return domain.NewFlatEntry(domain.Show{ID: domain.ID(id), Genres: genres})
}

func wrapped(id string, rating float64, genres ...string) domain.Entry {
	return domain.NewWrappedEntry(domain.Show{ID: domain.ID(id), Genres: genres, Rating: domain.RatingOf(rating)}, 1)
}

// pageOf builds n flat entries with ids prefixed by tag
func pageOf(tag string, n int) []domain.Entry {
	entries := make([]domain.Entry, n)
	for i := range entries {
		entries[i] = flat(fmt.Sprintf("%s-%d", tag, i), 5)
	}
	return entries
}

func ids(entries []domain.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID()
	}
	return out
}
