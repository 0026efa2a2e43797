package service

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/storesearch/internal/domain"
)

// DefaultHistoryMax caps the number of remembered searches
const DefaultHistoryMax = 50

// HistoryService records successful searches and suggests previous queries
type HistoryService struct {
	store  domain.HistoryStore
	max    int
	logger *slog.Logger
	now    func() time.Time
}

// NewHistoryService creates a history service over store.
// max <= 0 uses DefaultHistoryMax.
func NewHistoryService(store domain.HistoryStore, max int, logger *slog.Logger) *HistoryService {
	if logger == nil {
		logger = slog.Default()
	}
	if max <= 0 {
		max = DefaultHistoryMax
	}
	return &HistoryService{
		store:  store,
		max:    max,
		logger: logger,
		now:    time.Now,
	}
}

// Record stores a search at the front of the history. An older entry for the
// same query and category is replaced. Empty queries are ignored.
func (h *HistoryService) Record(query string, category domain.Category, resultCount int) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	entry := domain.HistoryEntry{
		Query:       query,
		Category:    category,
		ResultCount: resultCount,
		SearchedAt:  h.now(),
	}

	existing, _ := h.store.GetHistory()
	entries := make([]domain.HistoryEntry, 0, len(existing)+1)
	entries = append(entries, entry)
	for _, e := range existing {
		if e.Key() == entry.Key() {
			continue
		}
		entries = append(entries, e)
	}
	if len(entries) > h.max {
		entries = entries[:h.max]
	}

	if err := h.store.SaveHistory(entries); err != nil {
		h.logger.Warn("failed to save history", "error", err)
		return err
	}
	h.logger.Debug("recorded search", "query", query, "category", category.String(), "entries", len(entries))
	return nil
}

// Recent returns up to limit entries, newest first. limit <= 0 returns all.
func (h *HistoryService) Recent(limit int) []domain.HistoryEntry {
	entries, ok := h.store.GetHistory()
	if !ok {
		return nil
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Suggest returns previous entries whose query fuzzily matches prefix,
// closest first. Ties keep recency order.
func (h *HistoryService) Suggest(prefix string, limit int) []domain.HistoryEntry {
	prefix = strings.TrimSpace(prefix)
	entries := h.Recent(0)
	if prefix == "" || len(entries) == 0 {
		return nil
	}

	queries := make([]string, len(entries))
	for i, e := range entries {
		queries[i] = e.Query
	}

	ranks := fuzzy.RankFindFold(prefix, queries)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	out := make([]domain.HistoryEntry, 0, len(ranks))
	seen := make(map[string]bool)
	for _, r := range ranks {
		e := entries[r.OriginalIndex]
		// Same text under several categories suggests once
		key := strings.ToLower(e.Query)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Clear removes all history
func (h *HistoryService) Clear() error {
	if err := h.store.ClearHistory(); err != nil {
		return err
	}
	h.logger.Info("cleared search history")
	return nil
}
