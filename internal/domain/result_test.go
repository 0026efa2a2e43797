package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceText(t *testing.T) {
	free := SearchResult{Name: "Free App", Price: 0, Currency: "USD"}
	assert.Equal(t, "Free", free.PriceText())

	paid := SearchResult{Name: "Song", Price: 1.29, Currency: "USD"}
	assert.Equal(t, "$1.29", paid.PriceText())

	euro := SearchResult{Name: "Book", Price: 4.99, Currency: "EUR"}
	text := euro.PriceText()
	assert.Contains(t, text, "4.99")
	assert.NotContains(t, text, " ", "symbol sits directly against the amount")

	odd := SearchResult{Name: "Odd", Price: 3.5, Currency: "not-a-code"}
	assert.Equal(t, "3.50 not-a-code", odd.PriceText())
}

func TestArtistText(t *testing.T) {
	assert.Equal(t, "Unknown", SearchResult{}.ArtistText())
	assert.Equal(t, "Daft Punk", SearchResult{Artist: "Daft Punk"}.ArtistText())
}

func TestType(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{"song", "Song"},
		{"software", "App"},
		{"ebook", "E-Book"},
		{"feature-movie", "Movie"},
		{"tv-episode", "TV Episode"},
		{"something-new", "something-new"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			assert.Equal(t, tt.want, SearchResult{Kind: tt.kind}.Type())
		})
	}
}

func TestSortByName(t *testing.T) {
	results := []SearchResult{
		{ID: 1, Name: "Zebra"},
		{ID: 2, Name: "apple"},
		{ID: 3, Name: "Apple"},
		{ID: 4, Name: "Zebra"},
	}
	SortByName(results)

	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Name
	}
	// Ordinal comparison puts uppercase before lowercase
	assert.Equal(t, []string{"Apple", "Zebra", "Zebra", "apple"}, names)
	assert.Equal(t, int64(1), results[1].ID, "equal names keep response order")
	assert.Equal(t, int64(4), results[2].ID)
}

func TestResultList(t *testing.T) {
	list := []SearchResult{{Name: "A"}}
	assert.Equal(t, list, ResultList(Results{List: list}))
	assert.Nil(t, ResultList(Loading{}))
	assert.Nil(t, ResultList(NoResults{}))
	assert.Nil(t, ResultList(NotSearchedYet{}))
}
