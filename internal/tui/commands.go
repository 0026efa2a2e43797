package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/storesearch/internal/service"
)

// Command factories for async operations

// WaitForCompletionCmd blocks until the session posts a completion. The
// model re-arms it after every CompletionMsg. Returns nil once the session
// is closed.
func WaitForCompletionCmd(session *service.SearchSession) tea.Cmd {
	return func() tea.Msg {
		select {
		case c := <-session.Completions():
			return CompletionMsg{Completion: c}
		case <-session.Done():
			return nil
		}
	}
}

// OpenURLCmd opens url in the system browser
func OpenURLCmd(opener URLOpener, url string) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			return StatusMsg{Text: err.Error(), IsErr: true}
		}
		return StatusMsg{Text: "Opened in browser"}
	}
}

// CopyURLCmd copies url to the clipboard
func CopyURLCmd(opener URLOpener, url string) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Copy(url); err != nil {
			return StatusMsg{Text: err.Error(), IsErr: true}
		}
		return StatusMsg{Text: "Link copied"}
	}
}

// ClearStatusCmd clears status seq after a delay
func ClearStatusCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}

// statusCmd sets the status line
func statusCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text, IsErr: isErr}
	}
}
