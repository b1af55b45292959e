package tui

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Column widths for list rows
const (
	yearWidth    = 4
	ratingWidth  = 4
	networkWidth = 16
	minNameWidth = 20
)

var markupTags = regexp.MustCompile(`<[^>]*>`)

// View renders the browser
func (m Model) View() string {
	if m.Width == 0 {
		return "Loading..."
	}

	var body string
	if m.ShowDetail {
		body = m.renderDetail()
	} else {
		body = m.renderList()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	snap := m.Store.Snapshot()

	parts := []string{styles.HighlightStyle.Render("marquee"), styles.TitleStyle.Render(m.Source.String())}
	if m.Source == SourceSearch {
		parts = append(parts, styles.AccentStyle.Render(fmt.Sprintf("%q", m.Query.Text)))
	}
	parts = append(parts, styles.DimStyle.Render(fmt.Sprintf("page %d/%d", snap.CurrentPage, snap.TotalPages)))

	if g := snap.SelectedGenre; g != "" && g != store.GenreAll {
		parts = append(parts, styles.AccentStyle.Render("genre:"+g))
	}
	if m.SortByRating {
		parts = append(parts, styles.AccentStyle.Render("by rating"))
	}
	if m.TitleFilter != "" {
		parts = append(parts, styles.AccentStyle.Render("filter:"+m.TitleFilter))
	}
	parts = append(parts, styles.DimStyle.Render(fmt.Sprintf("%d of %d", len(m.Visible), len(snap.Results))))
	if snap.Loading {
		parts = append(parts, m.Spinner.View())
	}

	return strings.Join(parts, "  ")
}

func (m Model) renderList() string {
	h := m.listHeight()
	if len(m.Visible) == 0 {
		msg := "No shows"
		if m.Store.IsLoading() {
			msg = "Loading shows..."
		}
		return lipgloss.NewStyle().Height(h).Render(styles.DimStyle.Render(msg))
	}

	nameWidth := m.Width - yearWidth - ratingWidth - networkWidth - 8
	if nameWidth < minNameWidth {
		nameWidth = minNameWidth
	}

	end := min(m.Offset+h, len(m.Visible))
	rows := make([]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		rows = append(rows, m.renderRow(i, nameWidth))
	}
	return lipgloss.NewStyle().Height(h).Render(strings.Join(rows, "\n"))
}

func (m Model) renderRow(i, nameWidth int) string {
	match := m.Visible[i]
	show := match.Entry.Show()

	base := styles.NormalItemStyle
	marker := "  "
	if i == m.Cursor {
		base = styles.SelectedItemStyle
		marker = styles.AccentStyle.Render("> ")
	}

	name := show.Name
	indexes := match.MatchedIndexes
	if truncated := styles.Truncate(name, nameWidth); truncated != name {
		name = truncated
		indexes = nil
	}

	return marker +
		styles.Pad(styles.Highlight(name, indexes, base), nameWidth) + " " +
		base.Render(styles.Pad(show.Year(), yearWidth)) + " " +
		styles.RatingStyle.Render(fmt.Sprintf("%*s", ratingWidth, show.Rating.String())) + " " +
		styles.DimStyle.Render(styles.Truncate(show.NetworkName(), networkWidth))
}

func (m Model) renderDetail() string {
	entry := m.DetailFor
	show := entry.Show()

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(show.Name))
	if y := show.Year(); y != "" {
		b.WriteString(styles.DimStyle.Render(" (" + y + ")"))
	}
	b.WriteString("\n")

	meta := []string{}
	if show.Status != "" {
		meta = append(meta, show.Status)
	}
	if n := show.NetworkName(); n != "" {
		meta = append(meta, n)
	}
	if len(show.Genres) > 0 {
		meta = append(meta, strings.Join(show.Genres, ", "))
	}
	meta = append(meta, "rating "+show.Rating.String())
	b.WriteString(styles.SubtitleStyle.Render(strings.Join(meta, " · ")))
	b.WriteString("\n\n")

	switch {
	case m.DetailError != nil:
		b.WriteString(styles.ErrorStyle.Render("Could not load details: " + m.DetailError.Error()))
	case m.Detail.IsEmpty():
		b.WriteString(m.Spinner.View() + styles.DimStyle.Render(" loading cast and episodes..."))
	default:
		b.WriteString(renderDetailCounts(m.Detail))
	}

	if summary := plainText(show.Summary); summary != "" {
		b.WriteString("\n\n")
		width := max(m.Width-8, minNameWidth)
		b.WriteString(lipgloss.NewStyle().Width(width).Render(summary))
	}

	return styles.DetailStyle.Height(m.listHeight() - 2).Render(b.String())
}

func renderDetailCounts(d domain.Detail) string {
	cast := d.CastSummary
	if cast == "" {
		cast = "-"
	}
	return fmt.Sprintf("%s %d   %s %d\n%s %s",
		styles.AccentStyle.Render("Seasons"), d.SeasonCount,
		styles.AccentStyle.Render("Episodes"), d.EpisodeCount,
		styles.AccentStyle.Render("Cast"), cast,
	)
}

func (m Model) renderFooter() string {
	if m.Prompt.IsVisible() {
		return m.Prompt.View()
	}

	var status string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			status = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			status = styles.SubtitleStyle.Render(m.StatusMsg)
		}
	}

	bindings := m.Keys.ShortHelp()
	if m.ShowDetail {
		bindings = []key.Binding{m.Keys.Back, m.Keys.Open, m.Keys.Quit}
	}
	help := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		help = append(help, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}

	return lipgloss.JoinVertical(lipgloss.Left, status, strings.Join(help, "  "))
}

// plainText strips the HTML markup the catalog uses in summaries
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(markupTags.ReplaceAllString(s, "")))
}
