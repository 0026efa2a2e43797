package components

import "github.com/charmbracelet/bubbles/key"

// ListKeyMap defines key bindings for result list and grid navigation
type ListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Home     key.Binding
	End      key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Filter   key.Binding
}

// DefaultListKeyMap returns the default list key bindings
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "["),
			key.WithHelp("[", "previous page"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "]"),
			key.WithHelp("]", "next page"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter results"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k ListKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter}
}

// FullHelp implements help.KeyMap
func (k ListKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End},
		{k.PageUp, k.PageDown, k.Filter},
	}
}

// GridKeyMap returns the list bindings with left/right paging, for the grid view
func GridKeyMap() ListKeyMap {
	k := DefaultListKeyMap()
	k.PageUp = key.NewBinding(
		key.WithKeys("left", "h", "pgup", "["),
		key.WithHelp("←/h", "previous page"),
	)
	k.PageDown = key.NewBinding(
		key.WithKeys("right", "l", "pgdown", "]"),
		key.WithHelp("→/l", "next page"),
	)
	return k
}
