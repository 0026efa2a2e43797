package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/storesearch/internal/domain"
	"github.com/mmcdole/storesearch/internal/service"
	"github.com/mmcdole/storesearch/internal/tui/styles"
)

// NothingFoundText is the single row shown for an empty result set
const NothingFoundText = "Nothing found"

// Layout constants for the result list
const (
	// Border adds 1 line top and bottom
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// ResultList renders the session state as rows: a loading row, a
// "Nothing found" row, or one row per result. Only Results rows are selectable.
type ResultList struct {
	state domain.SearchState

	index    *service.FilterIndex
	filtered []service.FilterResult

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	spinner spinner.Model
	keys    ListKeyMap

	// Filter state
	filterActive bool
	filterInput  textinput.Model
}

// NewResultList creates an empty list in the NotSearchedYet state
func NewResultList() ResultList {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return ResultList{
		state:       domain.NotSearchedYet{},
		index:       service.NewFilterIndex(nil),
		spinner:     sp,
		keys:        DefaultListKeyMap(),
		filterInput: ti,
	}
}

// SetState replaces the displayed state, resetting selection and filter
func (l *ResultList) SetState(state domain.SearchState) {
	l.state = state
	l.index = service.NewFilterIndex(domain.ResultList(state))
	l.cursor = 0
	l.offset = 0
	l.clearFilter()
}

// State returns the displayed state
func (l ResultList) State() domain.SearchState {
	return l.state
}

// SetSize updates the component dimensions
func (l *ResultList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.filterInput.Width = width - 8
	l.recalcMaxVisible()
}

func (l *ResultList) recalcMaxVisible() {
	l.maxVisible = l.height - BorderHeight - ScrollIndicatorLines
	if l.filterActive {
		l.maxVisible--
	}
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

// SetFocused sets the focus state
func (l *ResultList) SetFocused(focused bool) {
	l.focused = focused
}

// RowCount returns the number of rows the list shows for its state
func (l ResultList) RowCount() int {
	switch l.state.(type) {
	case domain.Loading, domain.NoResults:
		return 1
	case domain.Results:
		return len(l.filtered)
	default:
		return 0
	}
}

// Selected returns the result under the cursor. Only possible in Results.
func (l ResultList) Selected() (domain.SearchResult, bool) {
	if _, ok := l.state.(domain.Results); !ok {
		return domain.SearchResult{}, false
	}
	if l.cursor < 0 || l.cursor >= len(l.filtered) {
		return domain.SearchResult{}, false
	}
	return l.filtered[l.cursor].Result, true
}

// Cursor returns the cursor position within the visible rows
func (l ResultList) Cursor() int {
	return l.cursor
}

// SelectedIndex returns the position of the selected result in the full,
// unfiltered result list
func (l ResultList) SelectedIndex() (int, bool) {
	if _, ok := l.state.(domain.Results); !ok {
		return 0, false
	}
	if l.cursor < 0 || l.cursor >= len(l.filtered) {
		return 0, false
	}
	return l.filtered[l.cursor].Index, true
}

// SelectIndex moves the cursor to result i of the full list. When the
// filter hides that result the filter is dropped first.
func (l *ResultList) SelectIndex(i int) {
	for row, fr := range l.filtered {
		if fr.Index == i {
			l.SetCursor(row)
			return
		}
	}
	l.clearFilter()
	l.SetCursor(i)
}

// SetCursor moves the cursor, clamped to the visible rows
func (l *ResultList) SetCursor(pos int) {
	n := len(l.filtered)
	if _, ok := l.state.(domain.Results); !ok || n == 0 {
		l.cursor = 0
		l.offset = 0
		return
	}
	if pos < 0 {
		pos = 0
	}
	if pos >= n {
		pos = n - 1
	}
	l.cursor = pos
	l.ensureVisible()
}

func (l *ResultList) ensureVisible() {
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

// IsFiltering reports whether the filter input is open
func (l ResultList) IsFiltering() bool {
	return l.filterActive
}

// FilterQuery returns the current filter text
func (l ResultList) FilterQuery() string {
	return l.filterInput.Value()
}

// StartFilter opens the filter input. Only meaningful with results.
func (l *ResultList) StartFilter() tea.Cmd {
	if _, ok := l.state.(domain.Results); !ok {
		return nil
	}
	l.filterActive = true
	l.recalcMaxVisible()
	return l.filterInput.Focus()
}

// StopFilter closes the filter input, keeping the filtered rows
func (l *ResultList) StopFilter() {
	l.filterActive = false
	l.filterInput.Blur()
	l.recalcMaxVisible()
}

func (l *ResultList) clearFilter() {
	l.filterActive = false
	l.filterInput.Blur()
	l.filterInput.SetValue("")
	l.filtered = l.index.Filter("")
	l.recalcMaxVisible()
}

// ClearFilter drops the filter and shows every result again
func (l *ResultList) ClearFilter() {
	l.clearFilter()
	l.cursor = 0
	l.offset = 0
}

func (l *ResultList) applyFilter() {
	l.filtered = l.index.Filter(l.filterInput.Value())
	l.cursor = 0
	l.offset = 0
}

// Tick starts the loading spinner
func (l ResultList) Tick() tea.Cmd {
	return l.spinner.Tick
}

// Update handles spinner ticks, filter typing and cursor movement
func (l ResultList) Update(msg tea.Msg) (ResultList, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		// Keep ticking only while a row shows the spinner
		if _, ok := l.state.(domain.Loading); !ok {
			return l, nil
		}
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		return l, cmd

	case tea.KeyMsg:
		if l.filterActive {
			return l.updateFilter(msg)
		}
		switch {
		case key.Matches(msg, l.keys.Up):
			l.SetCursor(l.cursor - 1)
		case key.Matches(msg, l.keys.Down):
			l.SetCursor(l.cursor + 1)
		case key.Matches(msg, l.keys.Home):
			l.SetCursor(0)
		case key.Matches(msg, l.keys.End):
			l.SetCursor(len(l.filtered) - 1)
		case key.Matches(msg, l.keys.PageUp):
			l.SetCursor(l.cursor - l.maxVisible)
		case key.Matches(msg, l.keys.PageDown):
			l.SetCursor(l.cursor + l.maxVisible)
		}
	}
	return l, nil
}

func (l ResultList) updateFilter(msg tea.KeyMsg) (ResultList, tea.Cmd) {
	switch msg.String() {
	case "esc":
		l.ClearFilter()
		return l, nil
	case "enter":
		l.StopFilter()
		return l, nil
	case "up", "ctrl+p":
		l.SetCursor(l.cursor - 1)
		return l, nil
	case "down", "ctrl+n":
		l.SetCursor(l.cursor + 1)
		return l, nil
	}

	prev := l.filterInput.Value()
	var cmd tea.Cmd
	l.filterInput, cmd = l.filterInput.Update(msg)
	if l.filterInput.Value() != prev {
		l.applyFilter()
	}
	return l, cmd
}

// View renders the component
func (l ResultList) View() string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	contentWidth := l.width - frameW

	var lines []string
	if l.filterActive {
		lines = append(lines, l.filterInput.View())
	}
	lines = append(lines, l.renderRows(contentWidth)...)

	return style.
		Width(contentWidth).
		Height(l.height - frameH).
		Render(strings.Join(lines, "\n"))
}

func (l ResultList) renderRows(width int) []string {
	switch l.state.(type) {
	case domain.Loading:
		return []string{" " + l.spinner.View() + styles.DimStyle.Render(" Loading...")}
	case domain.NoResults:
		return []string{styles.DimStyle.Render(" " + NothingFoundText)}
	case domain.Results:
	default:
		return nil
	}

	if len(l.filtered) == 0 {
		return []string{styles.DimStyle.Render(fmt.Sprintf(" No matches for %q", l.filterInput.Value()))}
	}

	end := l.offset + l.maxVisible
	if end > len(l.filtered) {
		end = len(l.filtered)
	}

	up := " "
	if l.offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(l.filtered) {
		down = styles.DimStyle.Render("↓ more")
	}

	lines := []string{up}
	for i := l.offset; i < end; i++ {
		lines = append(lines, renderResultRow(l.filtered[i], i == l.cursor && l.focused, width))
	}
	lines = append(lines, down)
	return lines
}

// renderResultRow renders name, artist and type label on one line
func renderResultRow(fr service.FilterResult, selected bool, width int) string {
	r := fr.Result
	typeLabel := r.Type()
	labelWidth := len([]rune(typeLabel))

	// Name and artist share what the type label leaves
	title := service.FilterTitle(r)
	avail := width - labelWidth - 4
	matched := fr.MatchedIndexes
	if len([]rune(title)) > avail {
		title = styles.Truncate(title, avail)
		matched = clipIndexes(matched, len(title)-3)
	}

	parts := dimArtist(styles.HighlightParts(title, matched), len(r.Name))

	used := 0
	for _, p := range parts {
		used += len([]rune(p.Text))
	}
	gap := width - 2 - used - labelWidth
	if gap < 1 {
		gap = 1
	}
	parts = append(parts,
		styles.RowPart{Text: strings.Repeat(" ", gap)},
		styles.RowPart{Text: typeLabel, Tone: styles.ToneDim},
	)

	return styles.RenderListRow(parts, selected, width)
}

// dimArtist greys the unhighlighted text after the name
func dimArtist(parts []styles.RowPart, nameLen int) []styles.RowPart {
	out := make([]styles.RowPart, 0, len(parts)+1)
	pos := 0
	for _, p := range parts {
		end := pos + len(p.Text)
		switch {
		case p.Tone != styles.ToneNormal || end <= nameLen:
			out = append(out, p)
		case pos >= nameLen:
			out = append(out, styles.RowPart{Text: p.Text, Tone: styles.ToneDim})
		default:
			split := nameLen - pos
			out = append(out,
				styles.RowPart{Text: p.Text[:split]},
				styles.RowPart{Text: p.Text[split:], Tone: styles.ToneDim},
			)
		}
		pos = end
	}
	return out
}

// clipIndexes drops matches at or past limit (they were truncated away)
func clipIndexes(indexes []int, limit int) []int {
	out := make([]int, 0, len(indexes))
	for _, i := range indexes {
		if i < limit {
			out = append(out, i)
		}
	}
	return out
}
