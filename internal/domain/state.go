package domain

// SearchState is the lifecycle state of a search session.
// Exactly one of NotSearchedYet, Loading, NoResults or Results.
type SearchState interface {
	isSearchState()
	String() string
}

// NotSearchedYet is the initial state, and the state after a failed request
type NotSearchedYet struct{}

// Loading means a request is in flight
type Loading struct{}

// NoResults means the last request succeeded with zero matches
type NoResults struct{}

// Results holds the sorted matches of the last successful request
type Results struct {
	List []SearchResult
}

func (NotSearchedYet) isSearchState() {}
func (Loading) isSearchState()        {}
func (NoResults) isSearchState()      {}
func (Results) isSearchState()        {}

func (NotSearchedYet) String() string { return "not_searched_yet" }
func (Loading) String() string        { return "loading" }
func (NoResults) String() string      { return "no_results" }
func (Results) String() string        { return "results" }

// ResultList returns the results carried by s, or nil for any other state
func ResultList(s SearchState) []SearchResult {
	if r, ok := s.(Results); ok {
		return r.List
	}
	return nil
}
