package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/storesearch/internal/domain"
	"github.com/mmcdole/storesearch/internal/tui/styles"
)

// SearchBar is the query input with the category tabs beneath it
type SearchBar struct {
	input    textinput.Model
	category domain.Category
	width    int
}

// NewSearchBar creates a search bar with the given category selected
func NewSearchBar(category domain.Category) SearchBar {
	ti := textinput.New()
	ti.Placeholder = "App name, artist, song, album, e-book"
	ti.CharLimit = 200
	ti.Prompt = "Search: "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	ti.Focus()

	return SearchBar{
		input:    ti,
		category: category,
	}
}

// Value returns the typed query
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the query text
func (s *SearchBar) SetValue(v string) {
	s.input.SetValue(v)
	s.input.CursorEnd()
}

// Category returns the selected category
func (s SearchBar) Category() domain.Category {
	return s.category
}

// SetCategory selects a category tab
func (s *SearchBar) SetCategory(c domain.Category) {
	s.category = c
}

// Focus gives the input keyboard focus
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes keyboard focus from the input
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused reports whether the input has keyboard focus
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// SetWidth updates the component width
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	s.input.Width = width - lipgloss.Width(s.input.Prompt) - 4
	if s.input.Width < 10 {
		s.input.Width = 10
	}
}

// Update passes messages to the text input
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the input line and the category tabs
func (s SearchBar) View() string {
	style := styles.InactiveBorder
	if s.input.Focused() {
		style = styles.ActiveBorder
	}

	frameW, _ := style.GetFrameSize()
	width := s.width - frameW
	if width < 20 {
		width = 20
	}

	box := style.Width(width).Render(s.input.View())
	return lipgloss.JoinVertical(lipgloss.Left, box, s.renderTabs())
}

// renderTabs renders the category segments; digits select them directly
func (s SearchBar) renderTabs() string {
	tabs := make([]string, 0, len(domain.Categories))
	for i, c := range domain.Categories {
		label := string(rune('1'+i)) + " " + c.Label()
		if c == s.category {
			tabs = append(tabs, styles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, styles.TabStyle.Render(label))
		}
	}
	return " " + strings.Join(tabs, " ")
}
