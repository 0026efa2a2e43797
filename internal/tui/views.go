package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/storesearch/internal/tui/styles"
)

// View renders the application
func (m *Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	// Modals take the whole screen
	if m.Alert.IsVisible() {
		return m.Alert.View()
	}
	if m.Detail.IsVisible() {
		return m.Detail.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.SearchBar.View(),
		m.renderBody(),
		m.renderFooter(),
	)
}

func (m *Model) renderBody() string {
	if m.showingHistory() {
		return m.HistoryPanel.View()
	}
	if m.Mode == ViewGrid {
		return m.Grid.View()
	}
	return m.Results.View()
}

// renderFooter shows the status message if any, otherwise the key help
func (m *Model) renderFooter() string {
	if m.StatusMsg != "" {
		style := styles.SuccessStyle
		if m.StatusIsErr {
			style = styles.ErrorStyle
		}
		return style.Render(" " + styles.Truncate(m.StatusMsg, m.Width-2))
	}
	return " " + m.Help.View(Keys)
}
