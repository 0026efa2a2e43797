package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/storesearch/internal/domain"
)

func newSizedList() ResultList {
	l := NewResultList()
	l.SetSize(80, 20)
	l.SetFocused(true)
	return l
}

func TestResultListRowsPerState(t *testing.T) {
	l := newSizedList()

	assert.Equal(t, 0, l.RowCount())

	l.SetState(domain.Loading{})
	assert.Equal(t, 1, l.RowCount())
	_, ok := l.Selected()
	assert.False(t, ok, "loading row is not selectable")

	l.SetState(domain.NoResults{})
	assert.Equal(t, 1, l.RowCount())
	assert.Contains(t, l.View(), NothingFoundText)
	_, ok = l.Selected()
	assert.False(t, ok, "nothing-found row is not selectable")

	l.SetState(domain.Results{List: makeResults(3)})
	assert.Equal(t, 3, l.RowCount())
	r, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "Item 000", r.Name)
}

func TestResultListCursor(t *testing.T) {
	l := newSizedList()
	l.SetState(domain.Results{List: makeResults(3)})

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, l.Cursor(), "clamped at last row")

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	assert.Equal(t, 0, l.Cursor())
}

func TestResultListFilter(t *testing.T) {
	l := newSizedList()
	l.SetState(domain.Results{List: []domain.SearchResult{
		{Name: "Abbey Road", Artist: "The Beatles"},
		{Name: "Minecraft", Artist: "Mojang"},
	}})

	l.StartFilter()
	assert.True(t, l.IsFiltering())

	for _, r := range "mine" {
		l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Equal(t, "mine", l.FilterQuery())
	assert.Equal(t, 1, l.RowCount())
	r, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "Minecraft", r.Name)

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, l.IsFiltering())
	assert.Equal(t, 1, l.RowCount(), "filter stays applied after enter")

	l.ClearFilter()
	assert.Equal(t, 2, l.RowCount())
}

func TestResultListFilterNeedsResults(t *testing.T) {
	l := newSizedList()
	l.SetState(domain.NoResults{})
	assert.Nil(t, l.StartFilter())
	assert.False(t, l.IsFiltering())
}
