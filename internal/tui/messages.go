package tui

import "github.com/mmcdole/marquee/internal/domain"

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ListingDoneMsg signals that a listing action finished. The outcome is read
// back from the store; Err is the store's LastError at completion.
type ListingDoneMsg struct {
	Source Source
	Mode   domain.FetchMode
	Err    error
}

// DetailLoadedMsg signals that a detail aggregation finished. Seq is the
// selection that issued it; only the latest selection is applied.
type DetailLoadedMsg struct {
	ID     string
	Seq    int
	Detail domain.Detail
	Err    error
}
