package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/storesearch/internal/domain"
	"github.com/mmcdole/storesearch/internal/tui/styles"
)

// HistoryPanel lists recent searches before anything has been searched,
// or suggestions matching the typed query
type HistoryPanel struct {
	entries []domain.HistoryEntry
	title   string
	cursor  int
	focused bool
	width   int
	height  int
	now     func() time.Time
}

// NewHistoryPanel creates an empty panel
func NewHistoryPanel() HistoryPanel {
	return HistoryPanel{title: "Recent searches", now: time.Now}
}

// SetEntries replaces the listed entries
func (h *HistoryPanel) SetEntries(title string, entries []domain.HistoryEntry) {
	h.title = title
	h.entries = entries
	if h.cursor >= len(entries) {
		h.cursor = 0
	}
}

// Len returns the number of listed entries
func (h HistoryPanel) Len() int {
	return len(h.entries)
}

// SetFocused sets the focus state
func (h *HistoryPanel) SetFocused(focused bool) {
	h.focused = focused
}

// SetSize updates the component dimensions
func (h *HistoryPanel) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// MoveUp moves the cursor up one entry
func (h *HistoryPanel) MoveUp() {
	if h.cursor > 0 {
		h.cursor--
	}
}

// MoveDown moves the cursor down one entry
func (h *HistoryPanel) MoveDown() {
	if h.cursor < len(h.entries)-1 {
		h.cursor++
	}
}

// Selected returns the entry under the cursor
func (h HistoryPanel) Selected() (domain.HistoryEntry, bool) {
	if h.cursor < 0 || h.cursor >= len(h.entries) {
		return domain.HistoryEntry{}, false
	}
	return h.entries[h.cursor], true
}

// View renders the component
func (h HistoryPanel) View() string {
	style := styles.InactiveBorder
	if h.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	width := h.width - frameW

	lines := []string{styles.AccentStyle.Render(h.title)}
	if len(h.entries) == 0 {
		lines = append(lines, styles.DimStyle.Render("Type a query and press enter to search the iTunes Store"))
	}

	visible := h.height - frameH - 1
	for i, e := range h.entries {
		if i >= visible {
			break
		}
		meta := fmt.Sprintf("%s · %d results · %s", e.Category.Label(), e.ResultCount, relativeTime(h.now(), e.SearchedAt))
		query := styles.Truncate(e.Query, width-len([]rune(meta))-4)
		gap := max(width-2-len([]rune(query))-len([]rune(meta)), 1)

		parts := []styles.RowPart{
			{Text: query},
			{Text: strings.Repeat(" ", gap)},
			{Text: meta, Tone: styles.ToneDim},
		}
		lines = append(lines, styles.RenderListRow(parts, h.focused && i == h.cursor, width))
	}

	return style.Width(width).Height(h.height - frameH).Render(strings.Join(lines, "\n"))
}

// relativeTime renders t as "just now", "5m ago", "3h ago" or a date
func relativeTime(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("Jan 2")
	}
}
