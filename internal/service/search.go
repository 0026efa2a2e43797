package service

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/storesearch/internal/domain"
)

// FilterResult is one result that matched the in-results filter
type FilterResult struct {
	Index          int // Position in the unfiltered list
	Result         domain.SearchResult
	MatchedIndexes []int // Character positions in the display title that matched
	Score          int
}

// FilterIndex implements fuzzy.Source over a result list.
// Titles are lowercased once at build time.
type FilterIndex struct {
	results     []domain.SearchResult
	lowerTitles []string
}

// NewFilterIndex indexes results by their display title
func NewFilterIndex(results []domain.SearchResult) *FilterIndex {
	idx := &FilterIndex{
		results:     results,
		lowerTitles: make([]string, len(results)),
	}
	for i, r := range results {
		idx.lowerTitles[i] = strings.ToLower(FilterTitle(r))
	}
	return idx
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *FilterIndex) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of results (implements fuzzy.Source)
func (idx *FilterIndex) Len() int { return len(idx.results) }

// FilterTitle is the text the filter matches against: name and artist
func FilterTitle(r domain.SearchResult) string {
	return r.Name + " " + r.ArtistText()
}

// Filter returns the results matching query, best match first.
// An empty query returns every result in list order with no highlights.
func (idx *FilterIndex) Filter(query string) []FilterResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		out := make([]FilterResult, len(idx.results))
		for i, r := range idx.results {
			out[i] = FilterResult{Index: i, Result: r}
		}
		return out
	}

	matches := fuzzy.FindFrom(query, idx)
	out := make([]FilterResult, len(matches))
	for i, m := range matches {
		out[i] = FilterResult{
			Index:          m.Index,
			Result:         idx.results[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return out
}
