package store

import (
	"cmp"
	"slices"

	"github.com/mmcdole/marquee/internal/domain"
)

// Projections are recomputed on every call and never modify stored results.

// FilteredResults returns the results restricted to the selected genre
func (s *Store) FilteredResults() []domain.Entry {
	s.mu.RLock()
	results, genre := slices.Clip(s.results), s.selectedGenre
	s.mu.RUnlock()
	return FilterGenre(results, genre)
}

// SortedResults returns the rated results, highest rating first
func (s *Store) SortedResults() []domain.Entry {
	return SortByRating(s.Results())
}

// Genres returns the distinct genres present in the results, sorted
func (s *Store) Genres() []string {
	seen := make(map[string]struct{})
	var genres []string
	for _, e := range s.Results() {
		for _, g := range e.Genres() {
			if _, ok := seen[g]; !ok {
				seen[g] = struct{}{}
				genres = append(genres, g)
			}
		}
	}
	slices.Sort(genres)
	return genres
}

// FilterGenre keeps entries whose genres contain genre, in order.
// "" and "all" return entries unchanged (the same slice).
func FilterGenre(entries []domain.Entry, genre string) []domain.Entry {
	if genre == "" || genre == GenreAll {
		return entries
	}
	filtered := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		if e.HasGenre(genre) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// SortByRating drops unrated entries and stable-sorts the rest by rating,
// descending. The input slice is left untouched.
func SortByRating(entries []domain.Entry) []domain.Entry {
	rated := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Rating().Valid {
			rated = append(rated, e)
		}
	}
	slices.SortStableFunc(rated, func(a, b domain.Entry) int {
		return cmp.Compare(b.Rating().Value, a.Rating().Value)
	})
	return rated
}
