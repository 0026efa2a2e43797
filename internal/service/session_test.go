package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/storesearch/internal/domain"
)

// searchCall is one request seen by fakeClient
type searchCall struct {
	term     string
	category domain.Category
	reply    chan fakeReply
	ctx      context.Context
}

type fakeReply struct {
	results []domain.SearchResult
	err     error
}

// fakeClient blocks every Search until the test replies to it
type fakeClient struct {
	calls chan *searchCall
	// ignoreCancel keeps waiting for a reply even after ctx is canceled
	ignoreCancel bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{calls: make(chan *searchCall, 16)}
}

func (f *fakeClient) Search(ctx context.Context, term string, category domain.Category) ([]domain.SearchResult, error) {
	call := &searchCall{term: term, category: category, reply: make(chan fakeReply, 1), ctx: ctx}
	f.calls <- call

	if f.ignoreCancel {
		r := <-call.reply
		return r.results, r.err
	}
	select {
	case r := <-call.reply:
		return r.results, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *fakeClient) next(t *testing.T) *searchCall {
	t.Helper()
	select {
	case c := <-f.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for search call")
		return nil
	}
}

// callbackRecorder counts onComplete invocations
type callbackRecorder struct {
	mu    sync.Mutex
	calls []bool
}

func (r *callbackRecorder) fn(success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, success)
}

func (r *callbackRecorder) get() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.calls...)
}

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestInitialState(t *testing.T) {
	s := NewSearchSession(newFakeClient(), nil)
	defer s.Close()

	assert.Equal(t, domain.NotSearchedYet{}, s.State())
	assert.False(t, s.IsLoading())
}

func TestEmptyQueryIsNoop(t *testing.T) {
	client := newFakeClient()
	s := NewSearchSession(client, nil)
	defer s.Close()

	rec := &callbackRecorder{}
	for _, q := range []string{"", "   ", "\t\n"} {
		assert.False(t, s.PerformSearch(q, domain.CategoryAll, rec.fn))
	}
	assert.Equal(t, domain.NotSearchedYet{}, s.State())
	assert.Empty(t, client.calls)
	assert.Empty(t, rec.get())
}

func TestEmptyQueryKeepsPreviousResults(t *testing.T) {
	client := newFakeClient()
	s := NewSearchSession(client, nil)
	defer s.Close()

	require.True(t, s.PerformSearch("apple", domain.CategoryAll, nil))
	client.next(t).reply <- fakeReply{results: []domain.SearchResult{{Name: "Apple"}}}
	require.NoError(t, s.Wait(testCtx(t)))
	before := s.State()

	assert.False(t, s.PerformSearch("  ", domain.CategoryMusic, nil))
	assert.Equal(t, before, s.State())
	assert.Equal(t, "apple", s.Query())
	assert.Equal(t, domain.CategoryAll, s.Category())
}

func TestLoadingIsSynchronous(t *testing.T) {
	client := newFakeClient()
	s := NewSearchSession(client, nil)
	defer s.Close()

	require.True(t, s.PerformSearch("jack johnson", domain.CategoryMusic, nil))
	assert.Equal(t, domain.Loading{}, s.State())

	call := client.next(t)
	assert.Equal(t, "jack johnson", call.term)
	assert.Equal(t, domain.CategoryMusic, call.category)
}

func TestSuccessSortsResults(t *testing.T) {
	client := newFakeClient()
	s := NewSearchSession(client, nil)
	defer s.Close()

	rec := &callbackRecorder{}
	s.PerformSearch("z", domain.CategoryAll, rec.fn)
	client.next(t).reply <- fakeReply{results: []domain.SearchResult{{Name: "Zebra"}, {Name: "Apple"}}}

	require.NoError(t, s.Wait(testCtx(t)))

	state, ok := s.State().(domain.Results)
	require.True(t, ok, "state is %v", s.State())
	require.Len(t, state.List, 2)
	assert.Equal(t, "Apple", state.List[0].Name)
	assert.Equal(t, "Zebra", state.List[1].Name)
	assert.Equal(t, []bool{true}, rec.get())

	r, ok := s.Result(1)
	require.True(t, ok)
	assert.Equal(t, "Zebra", r.Name)
	_, ok = s.Result(2)
	assert.False(t, ok)
}

func TestSuccessWithNoResults(t *testing.T) {
	client := newFakeClient()
	s := NewSearchSession(client, nil)
	defer s.Close()

	rec := &callbackRecorder{}
	s.PerformSearch("qwzxv", domain.CategoryAll, rec.fn)
	client.next(t).reply <- fakeReply{results: nil}

	require.NoError(t, s.Wait(testCtx(t)))
	assert.Equal(t, domain.NoResults{}, s.State())
	assert.Equal(t, []bool{true}, rec.get())
}

func TestFailureResetsState(t *testing.T) {
	client := newFakeClient()
	s := NewSearchSession(client, nil)
	defer s.Close()

	rec := &callbackRecorder{}
	s.PerformSearch("x", domain.CategoryAll, rec.fn)
	client.next(t).reply <- fakeReply{err: domain.ErrUnexpectedStatus}

	require.NoError(t, s.Wait(testCtx(t)))
	assert.Equal(t, domain.NotSearchedYet{}, s.State())
	assert.Equal(t, []bool{false}, rec.get())
}

func TestSupersededRequestIsCanceledAndSilent(t *testing.T) {
	client := newFakeClient()
	s := NewSearchSession(client, nil)
	defer s.Close()

	recA := &callbackRecorder{}
	recB := &callbackRecorder{}

	s.PerformSearch("first", domain.CategoryAll, recA.fn)
	callA := client.next(t)

	s.PerformSearch("second", domain.CategoryAll, recB.fn)
	callB := client.next(t)

	select {
	case <-callA.ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("superseded request was not canceled")
	}

	callB.reply <- fakeReply{results: []domain.SearchResult{{Name: "B"}}}
	require.NoError(t, s.Wait(testCtx(t)))

	assert.Empty(t, recA.get())
	assert.Equal(t, []bool{true}, recB.get())
	assert.Equal(t, "B", domain.ResultList(s.State())[0].Name)
}

func TestStaleCompletionNeverOverwritesNewerState(t *testing.T) {
	client := newFakeClient()
	client.ignoreCancel = true // A completes even though it was canceled
	s := NewSearchSession(client, nil)
	defer s.Close()

	recA := &callbackRecorder{}
	recB := &callbackRecorder{}

	s.PerformSearch("first", domain.CategoryAll, recA.fn)
	callA := client.next(t)
	s.PerformSearch("second", domain.CategoryAll, recB.fn)
	callB := client.next(t)

	// B finishes first, then A's late success and a late failure arrive
	callB.reply <- fakeReply{results: []domain.SearchResult{{Name: "Newer"}}}
	require.NoError(t, s.Wait(testCtx(t)))
	callA.reply <- fakeReply{results: []domain.SearchResult{{Name: "Older"}}}

	// A was canceled, so its goroutine posts nothing; feed a stale completion
	// directly to cover the race where it posted before cancellation.
	assert.False(t, s.Apply(Completion{Generation: 1, Results: []domain.SearchResult{{Name: "Older"}}}))
	assert.False(t, s.Apply(Completion{Generation: 1, Err: errors.New("boom")}))

	assert.Equal(t, "Newer", domain.ResultList(s.State())[0].Name)
	assert.Empty(t, recA.get())
	assert.Equal(t, []bool{true}, recB.get())
}

func TestStaleCompletionDroppedWhileNewerInFlight(t *testing.T) {
	client := newFakeClient()
	s := NewSearchSession(client, nil)
	defer s.Close()

	recA := &callbackRecorder{}
	s.PerformSearch("first", domain.CategoryAll, recA.fn)
	client.next(t)
	s.PerformSearch("second", domain.CategoryAll, nil)
	client.next(t)

	assert.False(t, s.Apply(Completion{Generation: 1, Err: errors.New("late failure")}))
	assert.Equal(t, domain.Loading{}, s.State())
	assert.Empty(t, recA.get())
}

func TestApplyIsOncePerRequest(t *testing.T) {
	client := newFakeClient()
	s := NewSearchSession(client, nil)
	defer s.Close()

	rec := &callbackRecorder{}
	s.PerformSearch("x", domain.CategoryAll, rec.fn)
	client.next(t).reply <- fakeReply{results: []domain.SearchResult{{Name: "X"}}}
	require.NoError(t, s.Wait(testCtx(t)))

	assert.False(t, s.Apply(Completion{Generation: s.Generation(), Err: errors.New("dup")}))
	assert.Equal(t, []bool{true}, rec.get())
	assert.IsType(t, domain.Results{}, s.State())
}

func TestRerunUsesLastQueryWithNewCategory(t *testing.T) {
	client := newFakeClient()
	s := NewSearchSession(client, nil)
	defer s.Close()

	assert.False(t, s.Rerun(domain.CategoryMusic, nil), "nothing to rerun yet")

	s.PerformSearch("beatles", domain.CategoryAll, nil)
	first := client.next(t)
	assert.Equal(t, domain.CategoryAll, first.category)

	require.True(t, s.Rerun(domain.CategoryEbooks, nil))
	second := client.next(t)
	assert.Equal(t, "beatles", second.term)
	assert.Equal(t, domain.CategoryEbooks, second.category)
	assert.Equal(t, domain.Loading{}, s.State())
}

func TestCompletionsChannel(t *testing.T) {
	client := newFakeClient()
	s := NewSearchSession(client, nil)
	defer s.Close()

	s.PerformSearch("x", domain.CategoryAll, nil)
	client.next(t).reply <- fakeReply{results: []domain.SearchResult{{Name: "X"}}}

	select {
	case c := <-s.Completions():
		assert.Equal(t, uint64(1), c.Generation)
		assert.Equal(t, "x", c.Query)
		assert.True(t, s.Apply(c))
	case <-time.After(2 * time.Second):
		t.Fatal("no completion delivered")
	}
}

func TestDispatchAfterClose(t *testing.T) {
	client := newFakeClient()
	s := NewSearchSession(client, nil)

	s.PerformSearch("x", domain.CategoryAll, nil)
	call := client.next(t)
	s.Close()

	<-call.ctx.Done()
	assert.ErrorIs(t, s.Dispatch(testCtx(t)), ErrSessionClosed)

	select {
	case <-s.Done():
	default:
		t.Fatal("Done not closed")
	}
}

func TestDispatchContextDone(t *testing.T) {
	s := NewSearchSession(newFakeClient(), nil)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Dispatch(ctx), context.Canceled)
}
