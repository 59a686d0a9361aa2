package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
)

// fetchOutcome is what a scripted fetch call resolves to.
type fetchOutcome struct {
	res FetchResult
	err error
}

// fetchCall is one in-flight invocation of a scripted fetch.
type fetchCall struct {
	query  domain.Query
	page   PageRequest
	ctx    context.Context
	result chan fetchOutcome
}

func (c *fetchCall) resolve(res FetchResult) {
	c.result <- fetchOutcome{res: res}
}

func (c *fetchCall) fail(err error) {
	c.result <- fetchOutcome{err: err}
}

// scriptedFetch records every invocation and blocks each one until the
// test resolves it, so completion order is fully controlled.
type scriptedFetch struct {
	mu    sync.Mutex
	calls []*fetchCall
}

func (s *scriptedFetch) fn(ctx context.Context, q domain.Query, page PageRequest) (FetchResult, error) {
	call := &fetchCall{query: q, page: page, ctx: ctx, result: make(chan fetchOutcome, 1)}
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()

	select {
	case out := <-call.result:
		return out.res, out.err
	case <-ctx.Done():
		return FetchResult{}, domain.NewTimeoutError(ctx.Err())
	}
}

func (s *scriptedFetch) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// call waits for the i-th invocation to start.
func (s *scriptedFetch) call(t *testing.T, i int) *fetchCall {
	t.Helper()
	require.Eventually(t, func() bool {
		return s.count() > i
	}, time.Second, time.Millisecond)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[i]
}

func segmentItems(offset, n int) []domain.ResultItem {
	items := make([]domain.ResultItem, n)
	for i := 0; i < n; i++ {
		items[i] = domain.Segment{VideoID: "v", StartMS: (offset + i) * 1000}
	}
	return items
}

func segQuery() domain.Query {
	return domain.Query{Text: "go", Enabled: map[domain.SourceType]bool{domain.SourceSegments: true}}
}

func waitPhase(t *testing.T, c *SectionCoordinator, phase domain.Phase) domain.SectionState {
	t.Helper()
	require.Eventually(t, func() bool {
		return c.State().Phase == phase
	}, time.Second, time.Millisecond)
	return c.State()
}

func TestCoordinatorDisabledSourceGoesIdle(t *testing.T) {
	var f scriptedFetch
	c := NewSectionCoordinator(domain.SourceTitles, CappedStrategy{Limit: 50}, f.fn, nil)

	q := domain.Query{Text: "go", Enabled: map[domain.SourceType]bool{domain.SourceSegments: true}}
	c.Trigger(context.Background(), q, 1)

	st := c.State()
	assert.Equal(t, domain.PhaseIdle, st.Phase)
	assert.Equal(t, 1, st.RequestEpoch)
	assert.Zero(t, f.count())
}

func TestCoordinatorFreshTriggerLoads(t *testing.T) {
	var f scriptedFetch
	c := NewSectionCoordinator(domain.SourceSegments, IncrementalStrategy{PageSize: 20}, f.fn, nil)

	c.Trigger(context.Background(), segQuery(), 1)
	assert.True(t, c.State().FreshLoading())

	call := f.call(t, 0)
	assert.Equal(t, PageRequest{Offset: 0, Limit: 20}, call.page)
	call.resolve(FetchResult{Items: segmentItems(0, 20), TotalCount: 847, HasMore: true})

	st := waitPhase(t, c, domain.PhaseLoaded)
	assert.Len(t, st.Items, 20)
	assert.Equal(t, 847, st.TotalCount)
	assert.True(t, st.HasMore)
	assert.Nil(t, st.Err)
}

func TestCoordinatorStaleResponseDropped(t *testing.T) {
	var f scriptedFetch
	c := NewSectionCoordinator(domain.SourceSegments, IncrementalStrategy{PageSize: 20}, f.fn, nil)

	c.Trigger(context.Background(), segQuery(), 1)
	old := f.call(t, 0)

	// A newer trigger supersedes the first before it completes.
	c.Trigger(context.Background(), segQuery(), 2)
	fresh := f.call(t, 1)

	// The new-epoch response lands first, then the old one straggles in.
	fresh.resolve(FetchResult{Items: segmentItems(0, 5), TotalCount: 5})
	waitPhase(t, c, domain.PhaseLoaded)
	old.resolve(FetchResult{Items: segmentItems(100, 20), TotalCount: 999})

	// The stale response must not mutate anything, regardless of timing.
	time.Sleep(20 * time.Millisecond)
	st := c.State()
	assert.Equal(t, 2, st.RequestEpoch)
	assert.Len(t, st.Items, 5)
	assert.Equal(t, 5, st.TotalCount)
}

func TestCoordinatorLoadMoreAppends(t *testing.T) {
	var f scriptedFetch
	c := NewSectionCoordinator(domain.SourceSegments, IncrementalStrategy{PageSize: 20}, f.fn, nil)

	c.Trigger(context.Background(), segQuery(), 1)
	f.call(t, 0).resolve(FetchResult{Items: segmentItems(0, 20), TotalCount: 45, HasMore: true})
	waitPhase(t, c, domain.PhaseLoaded)

	c.LoadMore(context.Background())
	call := f.call(t, 1)
	// Offset derives from the accumulated count.
	assert.Equal(t, PageRequest{Offset: 20, Limit: 20}, call.page)

	st := c.State()
	assert.True(t, st.IsFetchingMore)
	assert.Len(t, st.Items, 20, "existing items are kept while fetching more")

	call.resolve(FetchResult{Items: segmentItems(20, 20), TotalCount: 45, HasMore: true})
	require.Eventually(t, func() bool {
		return len(c.State().Items) == 40
	}, time.Second, time.Millisecond)

	// Item keys never duplicate across pages.
	seen := make(map[string]bool)
	for _, it := range c.State().Items {
		assert.False(t, seen[it.Key()], "duplicate key %s", it.Key())
		seen[it.Key()] = true
	}
}

func TestCoordinatorLoadMoreGuards(t *testing.T) {
	var f scriptedFetch
	c := NewSectionCoordinator(domain.SourceSegments, IncrementalStrategy{PageSize: 20}, f.fn, nil)

	c.Trigger(context.Background(), segQuery(), 1)
	f.call(t, 0).resolve(FetchResult{Items: segmentItems(0, 10), TotalCount: 10, HasMore: false})
	waitPhase(t, c, domain.PhaseLoaded)

	// hasMore=false is terminal: repeated calls never issue a request.
	c.LoadMore(context.Background())
	c.LoadMore(context.Background())
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 1, f.count())
}

func TestCoordinatorLoadMoreNoConcurrentDuplicates(t *testing.T) {
	var f scriptedFetch
	c := NewSectionCoordinator(domain.SourceSegments, IncrementalStrategy{PageSize: 20}, f.fn, nil)

	c.Trigger(context.Background(), segQuery(), 1)
	f.call(t, 0).resolve(FetchResult{Items: segmentItems(0, 20), HasMore: true, TotalCount: 100})
	waitPhase(t, c, domain.PhaseLoaded)

	// Rapid scroll-style double call: only one page fetch goes out.
	c.LoadMore(context.Background())
	c.LoadMore(context.Background())
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 2, f.count())
}

func TestCoordinatorLoadMoreFailureKeepsFirstPage(t *testing.T) {
	var f scriptedFetch
	c := NewSectionCoordinator(domain.SourceSegments, IncrementalStrategy{PageSize: 20}, f.fn, nil)

	c.Trigger(context.Background(), segQuery(), 1)
	f.call(t, 0).resolve(FetchResult{Items: segmentItems(0, 20), TotalCount: 100, HasMore: true})
	waitPhase(t, c, domain.PhaseLoaded)

	c.LoadMore(context.Background())
	f.call(t, 1).fail(domain.NewServerError(502, nil))

	st := waitPhase(t, c, domain.PhaseError)
	assert.Len(t, st.Items, 20, "failed second page never discards the first")
	assert.False(t, st.IsFetchingMore)
	require.NotNil(t, st.Err)
	assert.Equal(t, domain.ErrKindServer, st.Err.Kind)

	// Retry re-issues the same window under the same epoch.
	c.Retry(context.Background())
	call := f.call(t, 2)
	assert.Equal(t, PageRequest{Offset: 20, Limit: 20}, call.page)
	call.resolve(FetchResult{Items: segmentItems(20, 20), TotalCount: 100, HasMore: true})

	require.Eventually(t, func() bool {
		st := c.State()
		return st.Phase == domain.PhaseLoaded && len(st.Items) == 40
	}, time.Second, time.Millisecond)
	assert.Equal(t, 1, c.State().RequestEpoch)
}

func TestCoordinatorRetryOnlyAfterError(t *testing.T) {
	var f scriptedFetch
	c := NewSectionCoordinator(domain.SourceTitles, CappedStrategy{Limit: 50}, f.fn, nil)

	q := domain.Query{Text: "go", Enabled: map[domain.SourceType]bool{domain.SourceTitles: true}}
	c.Trigger(context.Background(), q, 1)
	f.call(t, 0).resolve(FetchResult{Items: nil, TotalCount: 0})
	waitPhase(t, c, domain.PhaseLoaded)

	// Retry in a non-error phase is a no-op.
	c.Retry(context.Background())
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 1, f.count())
}

func TestCoordinatorErrorPreservesPreviousItemsAcrossRetry(t *testing.T) {
	var f scriptedFetch
	c := NewSectionCoordinator(domain.SourceTitles, CappedStrategy{Limit: 50}, f.fn, nil)

	q := domain.Query{Text: "go", Enabled: map[domain.SourceType]bool{domain.SourceTitles: true}}
	c.Trigger(context.Background(), q, 1)
	f.call(t, 0).fail(domain.NewNetworkError(nil))
	st := waitPhase(t, c, domain.PhaseError)
	require.NotNil(t, st.Err)

	c.Retry(context.Background())
	assert.Equal(t, domain.PhaseLoading, c.State().Phase)

	f.call(t, 1).resolve(FetchResult{Items: segmentItems(0, 3), TotalCount: 3})
	st = waitPhase(t, c, domain.PhaseLoaded)
	assert.Len(t, st.Items, 3)
	assert.Equal(t, 1, st.RequestEpoch, "retry keeps the original epoch")
}

func TestCoordinatorCappedNeverAutoPaginates(t *testing.T) {
	var f scriptedFetch
	c := NewSectionCoordinator(domain.SourceTitles, CappedStrategy{Limit: 50}, f.fn, nil)

	q := domain.Query{Text: "go", Enabled: map[domain.SourceType]bool{domain.SourceTitles: true}}
	c.Trigger(context.Background(), q, 1)

	call := f.call(t, 0)
	assert.Equal(t, 50, call.page.Limit)
	// Server declares 75 but returns only the capped 50.
	call.resolve(FetchResult{Items: segmentItems(0, 50), TotalCount: 75, HasMore: true})

	st := waitPhase(t, c, domain.PhaseLoaded)
	assert.Len(t, st.Items, 50)
	assert.Equal(t, 75, st.TotalCount)
	assert.False(t, st.HasMore, "capped sections never expose more pages")

	c.LoadMore(context.Background())
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 1, f.count(), "capped sections never fetch a second page")
}

func TestCoordinatorClearResetsToIdle(t *testing.T) {
	var f scriptedFetch
	c := NewSectionCoordinator(domain.SourceSegments, IncrementalStrategy{PageSize: 20}, f.fn, nil)

	c.Trigger(context.Background(), segQuery(), 1)
	old := f.call(t, 0)

	c.Trigger(context.Background(), domain.Query{}, 2)
	st := c.State()
	assert.Equal(t, domain.PhaseIdle, st.Phase)
	assert.Empty(t, st.Items)

	// The in-flight fetch was cancelled; its late resolution is stale.
	old.resolve(FetchResult{Items: segmentItems(0, 20)})
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, domain.PhaseIdle, c.State().Phase)
}

func TestCoordinatorNotifiesOnChange(t *testing.T) {
	var mu sync.Mutex
	var notifications int
	notify := func(domain.SourceType) {
		mu.Lock()
		notifications++
		mu.Unlock()
	}

	var f scriptedFetch
	c := NewSectionCoordinator(domain.SourceSegments, IncrementalStrategy{PageSize: 20}, f.fn, notify)

	c.Trigger(context.Background(), segQuery(), 1)
	f.call(t, 0).resolve(FetchResult{Items: segmentItems(0, 5), TotalCount: 5})
	waitPhase(t, c, domain.PhaseLoaded)

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, notifications, 2, "loading and loaded transitions both notify")
}
