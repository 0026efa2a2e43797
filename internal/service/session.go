package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mmcdole/storesearch/internal/domain"
)

// ErrSessionClosed is returned by Dispatch after Close
var ErrSessionClosed = errors.New("search session closed")

// mailboxSize bounds completions waiting for the owner. Only the current
// request posts, so a small buffer is enough.
const mailboxSize = 4

// Completion is the outcome of one request, posted back to the session owner
type Completion struct {
	Generation uint64
	Query      string
	Category   domain.Category
	Results    []domain.SearchResult
	Err        error
}

// SearchSession owns the request/response/state lifecycle of one search box.
//
// PerformSearch, Rerun, Apply, Dispatch, Wait and Close must be called from a single
// owner goroutine (the UI loop). Network calls run on their own goroutines and
// hand their outcome back through the mailbox; only the owner mutates state or
// fires callbacks. State may be read from any goroutine.
type SearchSession struct {
	client domain.SearchClient
	logger *slog.Logger

	mailbox   chan Completion
	done      chan struct{}
	closeOnce sync.Once

	state atomic.Pointer[domain.SearchState]

	// Owner-goroutine fields
	generation uint64
	inFlight   bool
	cancel     context.CancelFunc
	onComplete func(success bool)
	query      string
	category   domain.Category
}

// NewSearchSession creates a session in the NotSearchedYet state
func NewSearchSession(client domain.SearchClient, logger *slog.Logger) *SearchSession {
	if logger == nil {
		logger = slog.Default()
	}
	s := &SearchSession{
		client:  client,
		logger:  logger,
		mailbox: make(chan Completion, mailboxSize),
		done:    make(chan struct{}),
	}
	s.setState(domain.NotSearchedYet{})
	return s
}

// State returns the current lifecycle state
func (s *SearchSession) State() domain.SearchState {
	return *s.state.Load()
}

func (s *SearchSession) setState(st domain.SearchState) {
	s.state.Store(&st)
}

// IsLoading reports whether a request is current
func (s *SearchSession) IsLoading() bool {
	_, ok := s.State().(domain.Loading)
	return ok
}

// Query returns the text of the last issued search
func (s *SearchSession) Query() string {
	return s.query
}

// Category returns the category of the last issued search
func (s *SearchSession) Category() domain.Category {
	return s.category
}

// Generation returns the generation of the current (or last) request
func (s *SearchSession) Generation() uint64 {
	return s.generation
}

// Result returns the i-th result when the session holds results
func (s *SearchSession) Result(i int) (domain.SearchResult, bool) {
	list := domain.ResultList(s.State())
	if i < 0 || i >= len(list) {
		return domain.SearchResult{}, false
	}
	return list[i], true
}

// PerformSearch starts a search and returns immediately.
//
// Empty (or whitespace-only) text is a no-op: it returns false, leaves the
// state alone and never calls onComplete. Otherwise any in-flight request is
// canceled, the state becomes Loading before PerformSearch returns, and
// onComplete runs later on the owner goroutine (from Apply) unless a newer
// search supersedes this one first.
func (s *SearchSession) PerformSearch(text string, category domain.Category, onComplete func(success bool)) bool {
	term := strings.TrimSpace(text)
	if term == "" {
		return false
	}

	if s.cancel != nil {
		s.cancel()
		s.logger.Debug("canceled superseded search", "generation", s.generation)
	}

	s.generation++
	gen := s.generation

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.onComplete = onComplete
	s.inFlight = true
	s.query = term
	s.category = category
	s.setState(domain.Loading{})

	s.logger.Info("search issued", "term", term, "category", category.String(), "generation", gen)

	go s.run(ctx, gen, term, category)
	return true
}

// Rerun re-issues the last query under a new category.
// Returns false when nothing has been searched yet.
func (s *SearchSession) Rerun(category domain.Category, onComplete func(success bool)) bool {
	if s.query == "" {
		return false
	}
	return s.PerformSearch(s.query, category, onComplete)
}

// run executes the request off the owner goroutine and posts the outcome
func (s *SearchSession) run(ctx context.Context, gen uint64, term string, category domain.Category) {
	results, err := s.client.Search(ctx, term, category)

	// Canceled requests were superseded (or the session closed): post nothing
	if ctx.Err() != nil {
		return
	}

	c := Completion{
		Generation: gen,
		Query:      term,
		Category:   category,
		Results:    results,
		Err:        err,
	}

	select {
	case s.mailbox <- c:
	case <-s.done:
	}
}

// Completions exposes the mailbox for event loops that deliver completions
// themselves. Each received value must be passed to Apply on the owner goroutine.
func (s *SearchSession) Completions() <-chan Completion {
	return s.mailbox
}

// Done is closed when the session is closed
func (s *SearchSession) Done() <-chan struct{} {
	return s.done
}

// Apply commits a completion. Completions from superseded requests are
// dropped without touching state or callbacks. Returns true if c was committed.
func (s *SearchSession) Apply(c Completion) bool {
	if !s.inFlight || c.Generation != s.generation {
		s.logger.Debug("dropped stale completion", "generation", c.Generation, "current", s.generation)
		return false
	}

	s.inFlight = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	callback := s.onComplete
	s.onComplete = nil

	if c.Err != nil {
		s.logger.Warn("search failed", "term", c.Query, "error", c.Err)
		s.setState(domain.NotSearchedYet{})
		if callback != nil {
			callback(false)
		}
		return true
	}

	results := c.Results
	domain.SortByName(results)

	if len(results) == 0 {
		s.setState(domain.NoResults{})
	} else {
		s.setState(domain.Results{List: results})
	}
	s.logger.Info("search complete", "term", c.Query, "results", len(results))

	if callback != nil {
		callback(true)
	}
	return true
}

// Dispatch waits for one completion and applies it on the calling goroutine
func (s *SearchSession) Dispatch(ctx context.Context) error {
	select {
	case c := <-s.mailbox:
		s.Apply(c)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrSessionClosed
	}
}

// Wait dispatches completions until the current request has been committed
func (s *SearchSession) Wait(ctx context.Context) error {
	for s.inFlight {
		if err := s.Dispatch(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close cancels any in-flight request and releases pending posters
func (s *SearchSession) Close() {
	s.closeOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		close(s.done)
	})
}
