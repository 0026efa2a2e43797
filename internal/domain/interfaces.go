package domain

import "context"

// SearchClient queries the remote catalog.
// Implementations must return ctx.Err() (possibly wrapped) when ctx is canceled.
type SearchClient interface {
	Search(ctx context.Context, term string, category Category) ([]SearchResult, error)
}

// HistoryStore persists recent searches
type HistoryStore interface {
	GetHistory() ([]HistoryEntry, bool)
	SaveHistory(entries []HistoryEntry) error
	ClearHistory() error
	Close() error
}
