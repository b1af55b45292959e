package store

import (
	"math"

	"github.com/mmcdole/marquee/internal/domain"
)

// pageSize is the catalog's fixed index page size used to estimate totalPages
const pageSize = 250

// beginFetch resets (INIT) or advances (MORE) the cursor, marks the store as
// loading and returns the page number to request.
func (s *Store) beginFetch(mode domain.FetchMode) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode == domain.ModeInit {
		s.results = []domain.Entry{}
		s.page = 1
	} else {
		s.page++
	}
	s.loading = true
	return s.page
}

// completeFetch merges a fetched page. INIT (or replace) overwrites results,
// MORE appends in order.
func (s *Store) completeFetch(mode domain.FetchMode, page []domain.Entry, replace bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode == domain.ModeInit || replace {
		s.results = page
	} else {
		s.results = append(s.results, page...)
	}
	if s.results == nil {
		s.results = []domain.Entry{}
	}
	// May be 0 for fewer than 125 results
	s.totalPages = int(math.Round(float64(len(s.results)) / pageSize))
}

// failFetch rolls a MORE cursor back so a retry requests the same page
func (s *Store) failFetch(mode domain.FetchMode, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode == domain.ModeMore {
		s.page--
	}
	s.lastErr = err
}

func (s *Store) endFetch() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}
