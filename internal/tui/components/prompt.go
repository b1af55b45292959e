package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Prompt is a single-line text input shown above the footer
type Prompt struct {
	visible bool
	title   string
	input   textinput.Model
}

// NewPrompt creates a hidden prompt
func NewPrompt() Prompt {
	ti := textinput.New()
	ti.CharLimit = 120
	ti.Width = 40
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return Prompt{input: ti}
}

// Show displays the prompt with a title and initial value
func (p *Prompt) Show(title, placeholder, value string) {
	p.visible = true
	p.title = title
	p.input.Placeholder = placeholder
	p.input.SetValue(value)
	p.input.CursorEnd()
	p.input.Focus()
}

// Hide dismisses the prompt
func (p *Prompt) Hide() {
	p.visible = false
	p.input.Blur()
}

// IsVisible returns whether the prompt is shown
func (p Prompt) IsVisible() bool {
	return p.visible
}

// Value returns the current input value
func (p Prompt) Value() string {
	return p.input.Value()
}

// Update handles input events, returns (prompt, cmd, submitted).
// Esc hides the prompt without submitting.
func (p Prompt) Update(msg tea.Msg) (Prompt, tea.Cmd, bool) {
	if !p.visible {
		return p, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			p.Hide()
			return p, nil, true
		case "esc":
			p.Hide()
			return p, nil, false
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

// View renders the prompt
func (p Prompt) View() string {
	if !p.visible {
		return ""
	}
	return styles.ModalStyle.Render(
		styles.AccentStyle.Render(p.title+" ") + p.input.View(),
	)
}
