package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

func storeWith(t *testing.T, entries []domain.Entry) *Store {
	t.Helper()
	s := newTestStore(&fakeClient{
		getShows: func(_ context.Context, _ int) ([]domain.Entry, error) {
			return entries, nil
		},
	})
	s.FetchShows(context.Background(), domain.ModeInit)
	require.Len(t, s.Results(), len(entries))
	return s
}

func TestFilteredResults_NoFilterReturnsStoredSlice(t *testing.T) {
	s := storeWith(t, []domain.Entry{flat("1", 8, "drama"), flat("2", 7, "comedy")})
	results := s.Results()

	for _, genre := range []string{"", "all"} {
		s.SetGenreFilter(genre)
		got := s.FilteredResults()
		require.Len(t, got, len(results))
		assert.Same(t, &results[0], &got[0], "genre=%q", genre)
	}
}

func TestFilteredResults_FiltersBothShapes(t *testing.T) {
	s := storeWith(t, []domain.Entry{
		flat("1", 8, "drama"),
		wrapped("2", 7, "comedy"),
		wrapped("3", 6, "drama", "crime"),
		flat("4", 5, "comedy", "drama"),
		unrated("5"),
	})

	s.SetGenreFilter("drama")
	assert.Equal(t, []string{"1", "3", "4"}, ids(s.FilteredResults()))

	s.SetGenreFilter("comedy")
	assert.Equal(t, []string{"2", "4"}, ids(s.FilteredResults()))

	s.SetGenreFilter("Drama")
	assert.Empty(t, s.FilteredResults())

	// Stored results are untouched
	assert.Len(t, s.Results(), 5)
}

func TestSortedResults_DropsUnratedAndSortsDescending(t *testing.T) {
	var nullString domain.Entry
	require.NoError(t, nullString.UnmarshalJSON([]byte(`{"id":"n","rating":{"average":"null"}}`)))
	var jsonNull domain.Entry
	require.NoError(t, jsonNull.UnmarshalJSON([]byte(`{"id":"j","rating":{"average":null}}`)))

	s := storeWith(t, []domain.Entry{
		flat("low", 5.5),
		nullString,
		flat("high", 9.1),
		jsonNull,
		unrated("missing"),
		wrapped("mid", 7.2),
		flat("zero", 0),
	})

	sorted := s.SortedResults()
	assert.Equal(t, []string{"high", "mid", "low", "zero"}, ids(sorted))
	for i := 1; i < len(sorted); i++ {
		assert.GreaterOrEqual(t, sorted[i-1].Rating().Value, sorted[i].Rating().Value)
	}

	// Stored order is untouched
	assert.Equal(t, "low", s.Results()[0].ID())
}

func TestSortByRating_KeepsWrappedEntryRatedOnOuterObject(t *testing.T) {
	var outer domain.Entry
	require.NoError(t, outer.UnmarshalJSON([]byte(`{"id":1,"rating":{"average":4.2},"show":{"id":"outer","rating":{"average":null}}}`)))

	sorted := SortByRating([]domain.Entry{flat("a", 6), outer, unrated("b")})
	assert.Equal(t, []string{"a", "outer"}, ids(sorted))
}

func TestSortByRating_StableForTies(t *testing.T) {
	entries := []domain.Entry{flat("a", 7), flat("b", 8), flat("c", 7), flat("d", 8), flat("e", 7)}
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, ids(SortByRating(entries)))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(entries))
}

func TestFilterGenre_Empty(t *testing.T) {
	assert.Nil(t, FilterGenre(nil, ""))
	assert.Empty(t, FilterGenre(nil, "drama"))
}

func TestGenres_DistinctSorted(t *testing.T) {
	s := storeWith(t, []domain.Entry{
		flat("1", 8, "Drama", "Crime"),
		wrapped("2", 7, "Comedy", "Drama"),
		unrated("3"),
	})
	assert.Equal(t, []string{"Comedy", "Crime", "Drama"}, s.Genres())
}
