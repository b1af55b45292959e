package tui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// InputMode identifies what the prompt is collecting
type InputMode int

const (
	InputNone InputMode = iota
	InputSearch
	InputGenre
	InputFilter
)

// ChromeHeight is the number of lines used by the header and footer
const ChromeHeight = 4

// Options configures a new Model
type Options struct {
	SortByRating bool
	Opener       Opener // nil disables opening show pages
	Logger       *slog.Logger
}

// Model is the main Bubble Tea model for the catalog browser
type Model struct {
	Store  *store.Store
	Keys   KeyMap
	opener Opener
	logger *slog.Logger

	// Listing
	Source       Source
	Query        domain.Query
	SortByRating bool
	TitleFilter  string
	Visible      []search.Match
	Cursor       int
	Offset       int

	// Detail view
	ShowDetail  bool
	DetailFor   domain.Entry
	DetailSeq   int // bumped on every selection
	Detail      domain.Detail
	DetailError error

	// UI state
	Prompt      components.Prompt
	InputMode   InputMode
	Spinner     spinner.Model
	StatusMsg   string
	StatusIsErr bool

	// Dimensions
	Width  int
	Height int
}

// NewModel creates the browser over st
func NewModel(st *store.Store, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	m := Model{
		Store:        st,
		Keys:         DefaultKeyMap(),
		opener:       opts.Opener,
		logger:       logger,
		Source:       SourceShows,
		SortByRating: opts.SortByRating,
		Prompt:       components.NewPrompt(),
		Spinner:      sp,
	}
	m.refresh()
	return m
}

// Init starts the spinner and loads the first page of shows
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.Spinner.Tick,
		FetchCmd(m.Store, m.Source, domain.ModeInit, m.Query),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case ListingDoneMsg:
		if msg.Err != nil {
			m.setError(ErrMsg{Err: msg.Err, Context: "Loading " + msg.Source.String()})
		} else if msg.Source == m.Source {
			m.StatusMsg, m.StatusIsErr = "", false
		}
		m.refresh()
		return m, nil

	case DetailLoadedMsg:
		if !m.ShowDetail || msg.Seq != m.DetailSeq || msg.ID != m.DetailFor.ID() {
			return m, nil
		}
		m.Detail = msg.Detail
		m.DetailError = msg.Err
		return m, nil

	case ErrMsg:
		m.setError(msg)
		return m, nil

	case tea.KeyMsg:
		if m.Prompt.IsVisible() {
			return m.handlePromptKey(msg)
		}
		if m.ShowDetail {
			return m.handleDetailKey(msg)
		}
		return m.handleListKey(msg)
	}

	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var submitted bool
	m.Prompt, cmd, submitted = m.Prompt.Update(msg)
	if !submitted {
		if !m.Prompt.IsVisible() {
			m.InputMode = InputNone
		}
		return m, cmd
	}

	mode := m.InputMode
	m.InputMode = InputNone
	value := m.Prompt.Value()

	switch mode {
	case InputSearch:
		q := domain.Query{Text: value}
		if err := q.Validate(); err != nil {
			m.setError(err)
			return m, nil
		}
		m.Source = SourceSearch
		m.Query = q
		m.Cursor, m.Offset = 0, 0
		return m, FetchCmd(m.Store, m.Source, domain.ModeInit, m.Query)

	case InputGenre:
		genre, ok := search.ResolveGenre(value, m.Store.Genres())
		if !ok {
			m.setError(fmt.Errorf("no genre matches %q", value))
			return m, nil
		}
		m.Store.SetGenreFilter(genre)
		m.StatusMsg, m.StatusIsErr = "Genre: "+genre, false
		m.Cursor, m.Offset = 0, 0
		m.refresh()

	case InputFilter:
		m.TitleFilter = value
		m.Cursor, m.Offset = 0, 0
		m.refresh()
	}

	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Open):
		return m, m.open(m.DetailFor)
	case key.Matches(msg, m.Keys.Back), key.Matches(msg, m.Keys.Enter):
		m.ShowDetail = false
		m.DetailFor = domain.Entry{}
		m.Detail = domain.Detail{}
		m.DetailError = nil
		m.Store.ResetDetail()
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.Keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.Keys.PageUp):
		m.moveCursor(-m.listHeight())
	case key.Matches(msg, m.Keys.PageDown):
		m.moveCursor(m.listHeight())
	case key.Matches(msg, m.Keys.Home):
		m.moveCursor(-len(m.Visible))
	case key.Matches(msg, m.Keys.End):
		m.moveCursor(len(m.Visible))

	case key.Matches(msg, m.Keys.Enter):
		entry, ok := m.SelectedEntry()
		if !ok {
			return m, nil
		}
		m.ShowDetail = true
		m.DetailFor = entry
		m.DetailSeq++
		m.Detail = domain.Detail{}
		m.DetailError = nil
		return m, SelectCmd(m.Store, entry, m.DetailSeq)

	case key.Matches(msg, m.Keys.Back):
		// Clear the local title filter first, then the genre
		if m.TitleFilter != "" {
			m.TitleFilter = ""
		} else if g := m.Store.SelectedGenre(); g != "" && g != store.GenreAll {
			m.Store.SetGenreFilter(store.GenreAll)
		}
		m.refresh()

	case key.Matches(msg, m.Keys.More):
		return m, FetchCmd(m.Store, m.Source, domain.ModeMore, m.Query)
	case key.Matches(msg, m.Keys.Refresh):
		m.Cursor, m.Offset = 0, 0
		return m, FetchCmd(m.Store, m.Source, domain.ModeInit, m.Query)
	case key.Matches(msg, m.Keys.Browse):
		m.Source = SourceShows
		m.Cursor, m.Offset = 0, 0
		return m, FetchCmd(m.Store, m.Source, domain.ModeInit, m.Query)
	case key.Matches(msg, m.Keys.Country):
		m.Source = SourceCountry
		m.Cursor, m.Offset = 0, 0
		return m, FetchCmd(m.Store, m.Source, domain.ModeInit, m.Query)

	case key.Matches(msg, m.Keys.Search):
		m.InputMode = InputSearch
		m.Prompt.Show("Search", "show title...", m.Query.Text)
		return m, nil
	case key.Matches(msg, m.Keys.Genre):
		m.InputMode = InputGenre
		m.Prompt.Show("Genre", "drama, comedy, all...", "")
		return m, nil
	case key.Matches(msg, m.Keys.Filter):
		m.InputMode = InputFilter
		m.Prompt.Show("Filter", "title...", m.TitleFilter)
		return m, nil

	case key.Matches(msg, m.Keys.Sort):
		m.SortByRating = !m.SortByRating
		m.Cursor, m.Offset = 0, 0
		m.refresh()

	case key.Matches(msg, m.Keys.Open):
		if entry, ok := m.SelectedEntry(); ok {
			return m, m.open(entry)
		}
	}

	return m, nil
}

func (m Model) open(entry domain.Entry) tea.Cmd {
	if m.opener == nil {
		return nil
	}
	return OpenCmd(m.opener, entry)
}

// SelectedEntry returns the entry under the cursor
func (m Model) SelectedEntry() (domain.Entry, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Visible) {
		return domain.Entry{}, false
	}
	return m.Visible[m.Cursor].Entry, true
}

// refresh recomputes the visible rows from the store: genre filter, then the
// optional rating sort, then the local title filter.
func (m *Model) refresh() {
	entries := m.Store.FilteredResults()
	if m.SortByRating {
		entries = store.SortByRating(entries)
	}
	m.Visible = search.FilterTitles(m.TitleFilter, entries)
	m.clampCursor()
}

func (m *Model) moveCursor(delta int) {
	m.Cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.Cursor >= len(m.Visible) {
		m.Cursor = len(m.Visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}

	h := m.listHeight()
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+h {
		m.Offset = m.Cursor - h + 1
	}
	if m.Offset < 0 {
		m.Offset = 0
	}
}

func (m Model) listHeight() int {
	h := m.Height - ChromeHeight
	if h < 1 {
		return 1
	}
	return h
}

func (m *Model) setError(err error) {
	m.logger.Debug("browser error", "error", err)
	m.StatusMsg = err.Error()
	m.StatusIsErr = true
}
