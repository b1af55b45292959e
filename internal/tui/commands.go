package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
)

// Command factories for async store actions

const (
	listingTimeout = 30 * time.Second
	detailTimeout  = 30 * time.Second
)

// Source is the listing currently shown
type Source int

const (
	SourceShows Source = iota
	SourceCountry
	SourceSearch
)

// String returns the header label for the source
func (s Source) String() string {
	switch s {
	case SourceCountry:
		return "Country"
	case SourceSearch:
		return "Search"
	default:
		return "All shows"
	}
}

// FetchCmd runs the listing action for source. A previous error still held by
// the store is only reported if this call replaced it.
func FetchCmd(st *store.Store, source Source, mode domain.FetchMode, query domain.Query) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), listingTimeout)
		defer cancel()

		before := st.LastError()
		switch source {
		case SourceCountry:
			st.FetchCountryShows(ctx, mode)
		case SourceSearch:
			st.SearchShows(ctx, mode, query)
		default:
			st.FetchShows(ctx, mode)
		}

		msg := ListingDoneMsg{Source: source, Mode: mode}
		if err := st.LastError(); err != nil && err != before {
			msg.Err = err
		}
		return msg
	}
}

// SelectCmd loads the detail record for entry, tagging the result with seq
func SelectCmd(st *store.Store, entry domain.Entry, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), detailTimeout)
		defer cancel()

		detail, err := st.SelectItem(ctx, entry)
		return DetailLoadedMsg{ID: entry.ID(), Seq: seq, Detail: detail, Err: err}
	}
}

// Opener opens a URL outside the terminal
type Opener interface {
	Open(url string) error
}

// OpenCmd opens the show's page in the browser
func OpenCmd(opener Opener, entry domain.Entry) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Open(entry.Show().URL); err != nil {
			return ErrMsg{Err: err, Context: "Opening " + entry.Name()}
		}
		return nil
	}
}
