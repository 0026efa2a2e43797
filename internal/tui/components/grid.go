package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/storesearch/internal/domain"
	"github.com/mmcdole/storesearch/internal/tui/styles"
)

// Layout constants for grid tiles
const (
	// Tile footprint including border and gutter
	ItemWidth  = 24
	ItemHeight = 6

	// Page indicator line below the tiles
	PageIndicatorLines = 1
)

// PageCount returns the number of pages needed for n items at perPage per
// page. An empty set still has one (empty) page.
func PageCount(n, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	if n <= 0 {
		return 1
	}
	return 1 + (n-1)/perPage
}

// GridLayout returns columns and rows per page for the given area. Fixed
// values (> 0) override the fitted ones. Both are at least 1.
func GridLayout(width, height, fixedCols, fixedRows int) (cols, rows int) {
	cols = width / ItemWidth
	rows = (height - PageIndicatorLines) / ItemHeight
	if fixedCols > 0 {
		cols = fixedCols
	}
	if fixedRows > 0 {
		rows = fixedRows
	}
	return max(cols, 1), max(rows, 1)
}

// Grid tiles the result list into pages. Within a page tiles fill
// top-to-bottom, then left-to-right.
type Grid struct {
	results []domain.SearchResult
	state   domain.SearchState

	page   int
	cursor int // index into results

	cols, rows           int
	fixedCols, fixedRows int

	width  int
	height int

	keys ListKeyMap
}

// NewGrid creates a grid. fixedCols and fixedRows override the fitted layout when > 0.
func NewGrid(fixedCols, fixedRows int) Grid {
	return Grid{
		state:     domain.NotSearchedYet{},
		fixedCols: fixedCols,
		fixedRows: fixedRows,
		cols:      1,
		rows:      1,
		keys:      GridKeyMap(),
	}
}

// SetState replaces the displayed results and returns to the first page
func (g *Grid) SetState(state domain.SearchState) {
	g.state = state
	g.results = domain.ResultList(state)
	g.page = 0
	g.cursor = 0
}

// SetSize updates the component dimensions and recomputes the layout
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.cols, g.rows = GridLayout(width, height, g.fixedCols, g.fixedRows)

	// Keep the selected tile visible after a resize
	if len(g.results) > 0 {
		g.page = g.cursor / g.PerPage()
	}
}

// PerPage returns the number of tiles on one page
func (g Grid) PerPage() int {
	return g.cols * g.rows
}

// Pages returns the number of pages
func (g Grid) Pages() int {
	return PageCount(len(g.results), g.PerPage())
}

// Page returns the current page (0-based)
func (g Grid) Page() int {
	return g.page
}

// SetPage moves to page p, clamped, selecting its first tile
func (g *Grid) SetPage(p int) {
	if p < 0 {
		p = 0
	}
	if last := g.Pages() - 1; p > last {
		p = last
	}
	g.page = p
	if len(g.results) > 0 {
		g.cursor = min(p*g.PerPage(), len(g.results)-1)
	}
}

// Selected returns the highlighted result
func (g Grid) Selected() (domain.SearchResult, bool) {
	if g.cursor < 0 || g.cursor >= len(g.results) {
		return domain.SearchResult{}, false
	}
	return g.results[g.cursor], true
}

// Cursor returns the index of the highlighted result
func (g Grid) Cursor() int {
	return g.cursor
}

// SetCursor highlights result i and shows its page
func (g *Grid) SetCursor(i int) {
	if len(g.results) == 0 {
		return
	}
	i = max(0, min(i, len(g.results)-1))
	g.cursor = i
	g.page = i / g.PerPage()
}

// Update handles paging and tile movement
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || len(g.results) == 0 {
		return g, nil
	}

	switch {
	case key.Matches(km, g.keys.PageDown):
		g.SetPage(g.page + 1)
	case key.Matches(km, g.keys.PageUp):
		g.SetPage(g.page - 1)
	case key.Matches(km, g.keys.Down):
		g.SetCursor(g.cursor + 1)
	case key.Matches(km, g.keys.Up):
		g.SetCursor(g.cursor - 1)
	case key.Matches(km, g.keys.Home):
		g.SetCursor(0)
	case key.Matches(km, g.keys.End):
		g.SetCursor(len(g.results) - 1)
	}
	return g, nil
}

// View renders the current page and the page indicator
func (g Grid) View() string {
	var body string
	switch g.state.(type) {
	case domain.Results:
		body = g.renderPage()
	case domain.NoResults:
		body = styles.DimStyle.Render(NothingFoundText)
	case domain.Loading:
		body = styles.DimStyle.Render("Loading...")
	default:
		body = styles.DimStyle.Render("Search to fill the grid")
	}

	area := lipgloss.Place(g.width, max(g.height-PageIndicatorLines, 1), lipgloss.Center, lipgloss.Center, body)
	dots := lipgloss.PlaceHorizontal(g.width, lipgloss.Center, g.renderDots())
	return lipgloss.JoinVertical(lipgloss.Left, area, dots)
}

func (g Grid) renderPage() string {
	perPage := g.PerPage()
	start := g.page * perPage
	end := min(start+perPage, len(g.results))

	columns := make([]string, 0, g.cols)
	for c := 0; c < g.cols; c++ {
		var tiles []string
		for r := 0; r < g.rows; r++ {
			i := start + c*g.rows + r
			if i >= end {
				break
			}
			tiles = append(tiles, renderTile(g.results[i], i == g.cursor))
		}
		if len(tiles) == 0 {
			break
		}
		columns = append(columns, lipgloss.JoinVertical(lipgloss.Left, tiles...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func renderTile(r domain.SearchResult, selected bool) string {
	style := styles.GridCellStyle
	if selected {
		style = styles.GridCellSelectedStyle
	}
	// Border (2) and padding (2) sit inside the tile footprint; leave a 1-column gutter
	inner := ItemWidth - 5

	lines := []string{
		styles.TitleStyle.Render(styles.Truncate(r.Name, inner)),
		styles.SubtitleStyle.Render(styles.Truncate(r.ArtistText(), inner)),
		styles.DimStyle.Render(styles.Truncate(r.Type()+" · "+r.PriceText(), inner)),
	}
	return style.Width(inner + 2).MarginRight(1).Render(strings.Join(lines, "\n"))
}

// renderDots renders one dot per page, the current page highlighted
func (g Grid) renderDots() string {
	pages := g.Pages()
	if len(g.results) == 0 || pages <= 1 {
		return ""
	}
	dots := make([]string, pages)
	for i := range dots {
		if i == g.page {
			dots[i] = styles.ActivePageDotStyle.Render("●")
		} else {
			dots[i] = styles.PageDotStyle.Render("○")
		}
	}
	return strings.Join(dots, " ")
}
