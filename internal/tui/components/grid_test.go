package components

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/storesearch/internal/domain"
)

func makeResults(n int) []domain.SearchResult {
	out := make([]domain.SearchResult, n)
	for i := range out {
		out[i] = domain.SearchResult{Name: fmt.Sprintf("Item %03d", i), Kind: "song"}
	}
	return out
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		n, perPage, want int
	}{
		{0, 9, 1},
		{1, 9, 1},
		{9, 9, 1},
		{10, 9, 2},
		{18, 9, 2},
		{19, 9, 3},
		{200, 15, 14},
		{5, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageCount(tt.n, tt.perPage), "n=%d perPage=%d", tt.n, tt.perPage)
	}
}

func TestGridLayout(t *testing.T) {
	cols, rows := GridLayout(100, 25, 0, 0)
	assert.Equal(t, 4, cols)
	assert.Equal(t, 4, rows)

	cols, rows = GridLayout(10, 3, 0, 0)
	assert.Equal(t, 1, cols, "never less than one column")
	assert.Equal(t, 1, rows)

	cols, rows = GridLayout(100, 25, 2, 3)
	assert.Equal(t, 2, cols)
	assert.Equal(t, 3, rows)
}

func TestGridPaging(t *testing.T) {
	g := NewGrid(3, 2) // 6 per page
	g.SetSize(80, 20)
	g.SetState(domain.Results{List: makeResults(14)})

	require.Equal(t, 6, g.PerPage())
	assert.Equal(t, 3, g.Pages())
	assert.Equal(t, 0, g.Page())

	g.SetPage(1)
	assert.Equal(t, 1, g.Page())
	assert.Equal(t, 6, g.Cursor(), "first tile of the page is selected")

	g.SetPage(10)
	assert.Equal(t, 2, g.Page(), "clamped to last page")
	assert.Equal(t, 12, g.Cursor())

	g.SetPage(-1)
	assert.Equal(t, 0, g.Page())

	g.SetCursor(13)
	assert.Equal(t, 2, g.Page(), "cursor drags the page along")
	r, ok := g.Selected()
	require.True(t, ok)
	assert.Equal(t, "Item 013", r.Name)
}

func TestGridKeys(t *testing.T) {
	g := NewGrid(2, 2)
	g.SetSize(80, 20)
	g.SetState(domain.Results{List: makeResults(9)})

	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, g.Page())

	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, g.Page())

	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, g.Cursor())

	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	assert.Equal(t, 8, g.Cursor())
	assert.Equal(t, 2, g.Page())
}

func TestGridEmptyStates(t *testing.T) {
	g := NewGrid(0, 0)
	g.SetSize(80, 20)

	g.SetState(domain.NoResults{})
	assert.Equal(t, 1, g.Pages())
	_, ok := g.Selected()
	assert.False(t, ok)
	assert.Contains(t, g.View(), NothingFoundText)
}
