package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/storesearch/internal/domain"
	"github.com/mmcdole/storesearch/internal/service"
	"github.com/mmcdole/storesearch/internal/tui/components"
)

// Focus is the pane receiving keys
type Focus int

const (
	FocusSearch Focus = iota
	FocusResults
)

// ViewMode selects how results are presented
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewGrid
)

// Layout
const (
	SearchBarHeight = 4 // bordered input + tab row
	FooterHeight    = 1
	FullHelpHeight  = 4 // tallest FullHelp column
	RecentLimit     = 20
	StatusTimeout   = 3 * time.Second
)

// URLOpener hands a store URL to the browser or clipboard
type URLOpener interface {
	Open(url string) error
	Copy(text string) error
}

// Options configures the initial UI
type Options struct {
	Category    domain.Category
	GridColumns int // 0 = fit to terminal
	GridRows    int
}

// Model is the main Bubble Tea model for the application.
// It is used through a pointer so search callbacks can update it.
type Model struct {
	Ready bool

	// Services
	Session *service.SearchSession
	History *service.HistoryService // nil when history is disabled
	Opener  URLOpener
	logger  *slog.Logger

	// UI components
	SearchBar    components.SearchBar
	Results      components.ResultList
	Grid         components.Grid
	Detail       components.Detail
	Alert        components.Alert
	HistoryPanel components.HistoryPanel
	Help         help.Model

	// UI state
	Focus       Focus
	Mode        ViewMode
	Width       int
	Height      int
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int
}

// NewModel creates a new application model
func NewModel(
	session *service.SearchSession,
	history *service.HistoryService,
	opener URLOpener,
	opts Options,
	logger *slog.Logger,
) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Model{
		Session:      session,
		History:      history,
		Opener:       opener,
		logger:       logger,
		SearchBar:    components.NewSearchBar(opts.Category),
		Results:      components.NewResultList(),
		Grid:         components.NewGrid(opts.GridColumns, opts.GridRows),
		Detail:       components.NewDetail(),
		Alert:        components.NewAlert(),
		HistoryPanel: components.NewHistoryPanel(),
		Help:         help.New(),
		Focus:        FocusSearch,
	}
	m.refreshHistory()
	return m
}

// Init initializes the application
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		WaitForCompletionCmd(m.Session),
	)
}

// Update handles all messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)

	case CompletionMsg:
		if m.Session.Apply(msg.Completion) {
			m.syncState()
		}
		return m, WaitForCompletionCmd(m.Session)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Results, cmd = m.Results.Update(msg)
		return m, cmd

	case StatusMsg:
		m.statusSeq++
		m.StatusMsg = msg.Text
		m.StatusIsErr = msg.IsErr
		return m, ClearStatusCmd(m.statusSeq, StatusTimeout)

	case ClearStatusMsg:
		// A newer status restarted the timer
		if msg.Seq != m.statusSeq {
			return m, nil
		}
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other input housekeeping
	var cmd tea.Cmd
	m.SearchBar, cmd = m.SearchBar.Update(msg)
	return m, cmd
}

// search issues a query; returns the spinner command when a request started
func (m *Model) search(text string, category domain.Category) tea.Cmd {
	query := strings.TrimSpace(text)
	if !m.Session.PerformSearch(query, category, m.onSearchComplete(query, category)) {
		return nil
	}
	return m.searchStarted()
}

// changeCategory selects c and re-issues the search under it
func (m *Model) changeCategory(c domain.Category) tea.Cmd {
	m.SearchBar.SetCategory(c)

	if text := strings.TrimSpace(m.SearchBar.Value()); text != "" {
		return m.search(text, c)
	}
	// Input was cleared after searching: rerun the last query
	last := m.Session.Query()
	if !m.Session.Rerun(c, m.onSearchComplete(last, c)) {
		return nil
	}
	return m.searchStarted()
}

func (m *Model) searchStarted() tea.Cmd {
	m.Detail.Hide()
	m.syncState()
	return m.Results.Tick()
}

// onSearchComplete runs on the UI goroutine when a request is committed
func (m *Model) onSearchComplete(query string, category domain.Category) func(bool) {
	return func(success bool) {
		if !success {
			m.Alert.ShowStoreError()
			return
		}
		if m.History == nil {
			return
		}
		count := len(domain.ResultList(m.Session.State()))
		if err := m.History.Record(query, category, count); err != nil {
			m.logger.Warn("failed to record history", "error", err)
		}
		m.refreshHistory()
	}
}

// syncState pushes the session state into the views
func (m *Model) syncState() {
	state := m.Session.State()
	m.Results.SetState(state)
	m.Grid.SetState(state)
	m.Results.SetFocused(m.Focus == FocusResults)
	m.HistoryPanel.SetFocused(m.Focus == FocusResults)
}

// refreshHistory reloads the history panel, or suggestions for typed text
func (m *Model) refreshHistory() {
	if m.History == nil {
		return
	}
	if text := strings.TrimSpace(m.SearchBar.Value()); text != "" {
		if suggestions := m.History.Suggest(text, RecentLimit); len(suggestions) > 0 {
			m.HistoryPanel.SetEntries("Previous searches", suggestions)
			return
		}
	}
	m.HistoryPanel.SetEntries("Recent searches", m.History.Recent(RecentLimit))
}

// showingHistory reports whether the body shows the history panel
func (m *Model) showingHistory() bool {
	_, idle := m.Session.State().(domain.NotSearchedYet)
	return idle
}

// selected returns the result under the cursor in the active view
func (m *Model) selected() (domain.SearchResult, bool) {
	if m.Mode == ViewGrid {
		return m.Grid.Selected()
	}
	return m.Results.Selected()
}

func (m *Model) setFocus(f Focus) tea.Cmd {
	m.Focus = f
	m.Results.SetFocused(f == FocusResults)
	m.HistoryPanel.SetFocused(f == FocusResults)
	if f == FocusSearch {
		return m.SearchBar.Focus()
	}
	m.SearchBar.Blur()
	return nil
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	bodyHeight := max(m.Height-SearchBarHeight-m.footerHeight(), 3)

	m.SearchBar.SetWidth(m.Width)
	m.Results.SetSize(m.Width, bodyHeight)
	m.Grid.SetSize(m.Width, bodyHeight)
	m.HistoryPanel.SetSize(m.Width, bodyHeight)
	m.Detail.SetSize(m.Width, m.Height)
	m.Alert.SetSize(m.Width, m.Height)
	m.Help.Width = m.Width
}

func (m *Model) footerHeight() int {
	if m.Help.ShowAll {
		return FullHelpHeight
	}
	return FooterHeight
}

// handleKeyMsg routes keyboard input: modals first, then the focused pane
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, Keys.ForceQuit) {
		return tea.Quit
	}

	if m.Alert.IsVisible() {
		if key.Matches(msg, Keys.Enter, Keys.Escape) {
			m.Alert.Hide()
		}
		return nil
	}

	if m.Detail.IsVisible() {
		return m.handleDetailKey(msg)
	}

	if m.Results.IsFiltering() {
		var cmd tea.Cmd
		m.Results, cmd = m.Results.Update(msg)
		return cmd
	}

	if m.Focus == FocusSearch {
		return m.handleSearchKey(msg)
	}
	return m.handleResultsKey(msg)
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	url := m.Detail.Result().StoreURL
	switch {
	case key.Matches(msg, Keys.Open):
		if url == "" || m.Opener == nil {
			return nil
		}
		return OpenURLCmd(m.Opener, url)
	case key.Matches(msg, Keys.Copy):
		if url == "" || m.Opener == nil {
			return nil
		}
		return CopyURLCmd(m.Opener, url)
	case key.Matches(msg, Keys.Escape, Keys.Enter, Keys.Quit):
		m.Detail.Hide()
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, Keys.Search):
		cmd := m.search(m.SearchBar.Value(), m.SearchBar.Category())
		if cmd == nil {
			return nil
		}
		return tea.Batch(cmd, m.setFocus(FocusResults))

	case key.Matches(msg, Keys.NextCategory):
		return m.changeCategory(m.SearchBar.Category().Next())

	case key.Matches(msg, Keys.PrevCategory):
		return m.changeCategory(m.SearchBar.Category().Prev())

	case key.Matches(msg, Keys.FocusResults):
		return m.setFocus(FocusResults)
	}

	prev := m.SearchBar.Value()
	var cmd tea.Cmd
	m.SearchBar, cmd = m.SearchBar.Update(msg)
	if m.SearchBar.Value() != prev {
		m.refreshHistory()
	}
	return cmd
}

func (m *Model) handleResultsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, Keys.Quit):
		return tea.Quit

	case key.Matches(msg, Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		m.updateLayout()
		return nil

	case key.Matches(msg, Keys.FocusSearch):
		return m.setFocus(FocusSearch)

	case key.Matches(msg, Keys.NextCategory):
		return m.changeCategory(m.SearchBar.Category().Next())

	case key.Matches(msg, Keys.PrevCategory):
		return m.changeCategory(m.SearchBar.Category().Prev())

	case key.Matches(msg, Keys.Category):
		if idx, ok := categoryForKey(msg.String()); ok {
			return m.changeCategory(domain.Categories[idx])
		}
		return nil

	case key.Matches(msg, Keys.ToggleGrid):
		if m.Mode == ViewList {
			m.Mode = ViewGrid
			if i, ok := m.Results.SelectedIndex(); ok {
				m.Grid.SetCursor(i)
			}
		} else {
			m.Mode = ViewList
			m.Results.SelectIndex(m.Grid.Cursor())
		}
		return nil
	}

	if m.showingHistory() {
		return m.handleHistoryKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Enter):
		if r, ok := m.selected(); ok {
			m.Detail.Show(r)
		}
		return nil

	case key.Matches(msg, Keys.Filter):
		if m.Mode == ViewList {
			return m.Results.StartFilter()
		}
		return nil

	case key.Matches(msg, Keys.Escape):
		if m.Results.FilterQuery() != "" {
			m.Results.ClearFilter()
		}
		return nil
	}

	var cmd tea.Cmd
	if m.Mode == ViewGrid {
		m.Grid, cmd = m.Grid.Update(msg)
	} else {
		m.Results, cmd = m.Results.Update(msg)
	}
	return cmd
}

func (m *Model) handleHistoryKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, components.DefaultListKeyMap().Up):
		m.HistoryPanel.MoveUp()

	case key.Matches(msg, components.DefaultListKeyMap().Down):
		m.HistoryPanel.MoveDown()

	case key.Matches(msg, Keys.Enter):
		e, ok := m.HistoryPanel.Selected()
		if !ok {
			return nil
		}
		m.SearchBar.SetValue(e.Query)
		m.SearchBar.SetCategory(e.Category)
		return m.search(e.Query, e.Category)

	case key.Matches(msg, Keys.ClearHist):
		if m.History == nil {
			return nil
		}
		if err := m.History.Clear(); err != nil {
			return statusCmd(err.Error(), true)
		}
		m.refreshHistory()
		return statusCmd("History cleared", false)
	}
	return nil
}
