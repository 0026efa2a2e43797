package domain

import (
	"strings"
	"time"
)

// HistoryEntry records one successful search
type HistoryEntry struct {
	Query       string    `json:"query"`
	Category    Category  `json:"category"`
	ResultCount int       `json:"result_count"`
	SearchedAt  time.Time `json:"searched_at"`
}

// Key identifies an entry for deduplication (same query text and category)
func (e HistoryEntry) Key() string {
	return e.Category.String() + ":" + strings.ToLower(strings.TrimSpace(e.Query))
}
