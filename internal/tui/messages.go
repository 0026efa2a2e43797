package tui

import "github.com/mmcdole/storesearch/internal/service"

// Message types for the TUI

// CompletionMsg carries a finished request from the session mailbox
type CompletionMsg struct {
	Completion service.Completion
}

// StatusMsg sets the footer status line
type StatusMsg struct {
	Text  string
	IsErr bool
}

// ClearStatusMsg clears the footer status line if it still shows status Seq
type ClearStatusMsg struct {
	Seq int
}
