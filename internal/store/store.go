// Package store holds the catalog session state: the current listing, its
// pagination cursor, the selected genre and the aggregated detail record.
//
// All mutations go through the action methods (FetchShows, FetchCountryShows,
// SearchShows, SelectItem, SetGenreFilter, ConfigureBaseURL). Network calls are
// made without holding the lock, so reads during a fetch observe the
// pre-fetch results with IsLoading() true.
package store

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// GenreAll disables the genre filter
const GenreAll = "all"

// State is a point-in-time copy of the store
type State struct {
	BaseURL       string
	Detail        domain.Detail
	SelectedGenre string
	Results       []domain.Entry
	Loading       bool
	CurrentPage   int
	TotalPages    int
	LastError     error
}

// Store is the catalog session state container.
type Store struct {
	client domain.CatalogClient
	logger *slog.Logger

	mu sync.RWMutex // Protects everything below

	baseURL       string
	detail        domain.Detail
	selectedGenre string
	results       []domain.Entry
	loading       bool
	page          int
	totalPages    int
	lastErr       error
}

// New creates an empty store backed by client
func New(client domain.CatalogClient, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		client:     client,
		logger:     logger,
		results:    []domain.Entry{},
		page:       1,
		totalPages: 1,
	}
}

// ConfigureBaseURL records the catalog base URL for display and image links
func (s *Store) ConfigureBaseURL(url string) {
	s.mu.Lock()
	s.baseURL = url
	s.mu.Unlock()
}

func (s *Store) BaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseURL
}

// SetGenreFilter changes the genre used by FilteredResults ("" or "all" disables it)
func (s *Store) SetGenreFilter(genre string) {
	s.mu.Lock()
	s.selectedGenre = genre
	s.mu.Unlock()
}

func (s *Store) SelectedGenre() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedGenre
}

// Results returns the stored listing in server order. The slice is shared
// with the store and must not be modified.
func (s *Store) Results() []domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clip(s.results)
}

func (s *Store) CurrentDetail() domain.Detail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detail
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the most recent listing failure. It is not cleared by a
// later successful fetch.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) CurrentPage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

func (s *Store) TotalPages() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalPages
}

// Snapshot returns all fields read under a single lock
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		BaseURL:       s.baseURL,
		Detail:        s.detail,
		SelectedGenre: s.selectedGenre,
		Results:       slices.Clip(s.results),
		Loading:       s.loading,
		CurrentPage:   s.page,
		TotalPages:    s.totalPages,
		LastError:     s.lastErr,
	}
}
