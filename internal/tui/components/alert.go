package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/storesearch/internal/tui/styles"
)

// StoreErrorText is shown when a search fails
const StoreErrorText = "There was an error accessing the iTunes Store. Please try again."

// Alert is a modal message dismissed with enter or esc
type Alert struct {
	title   string
	message string
	visible bool
	width   int
	height  int
}

// NewAlert creates a hidden alert
func NewAlert() Alert {
	return Alert{}
}

// Show opens the alert
func (a *Alert) Show(title, message string) {
	a.title = title
	a.message = message
	a.visible = true
}

// ShowStoreError opens the alert for a failed search
func (a *Alert) ShowStoreError() {
	a.Show("Whoops...", StoreErrorText)
}

// Hide closes the alert
func (a *Alert) Hide() {
	a.visible = false
}

// IsVisible returns true if the alert is open
func (a Alert) IsVisible() bool {
	return a.visible
}

// Message returns the alert text
func (a Alert) Message() string {
	return a.message
}

// SetSize updates the area the alert is centered in
func (a *Alert) SetSize(width, height int) {
	a.width = width
	a.height = height
}

// View renders the component
func (a Alert) View() string {
	if !a.visible {
		return ""
	}

	modalWidth := min(max(a.width/2, 36), 60)
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Foreground(styles.Red).Render(a.title),
		lipgloss.NewStyle().Width(modalWidth-6).Render(a.message),
		"",
		helpLine([][2]string{{"enter", "OK"}}),
	)

	modal := styles.AlertStyle.Width(modalWidth).Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}
