package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Search bar
	Search       key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	Category     key.Binding // 1-4, only outside the search bar
	FocusSearch  key.Binding
	FocusResults key.Binding

	// Results
	Enter      key.Binding
	Filter     key.Binding
	ToggleGrid key.Binding
	ClearHist  key.Binding

	// Detail popup
	Open key.Binding
	Copy key.Binding

	// Actions
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Escape    key.Binding
}

// Keys is the active key map
var Keys = DefaultKeyMap()

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Search bar
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next category"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "previous category"),
		),
		Category: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "category"),
		),
		FocusSearch: key.NewBinding(
			key.WithKeys("s", "i"),
			key.WithHelp("s", "edit search"),
		),
		FocusResults: key.NewBinding(
			key.WithKeys("down", "esc"),
			key.WithHelp("↓", "results"),
		),

		// Results
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		ToggleGrid: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "list/grid"),
		),
		ClearHist: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "clear history"),
		),

		// Detail popup
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in store"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy link"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusSearch, k.NextCategory, k.Enter, k.Filter, k.ToggleGrid, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.NextCategory, k.PrevCategory, k.Category},
		{k.FocusSearch, k.Enter, k.Filter, k.ToggleGrid},
		{k.Open, k.Copy, k.ClearHist},
		{k.Help, k.Escape, k.Quit},
	}
}

// categoryForKey maps "1".."4" to the category segment index
func categoryForKey(s string) (int, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '4' {
		return 0, false
	}
	return int(s[0] - '1'), true
}
