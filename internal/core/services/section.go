package services

import (
	"context"
	"sync"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
	"github.com/scrybe-labs/scrybe-cli/internal/logger"
)

// FetchResult is the shape every source query resolves to.
type FetchResult struct {
	// Items are the fetched results for the requested window.
	Items []domain.ResultItem

	// TotalCount is the server-declared total, or domain.TotalCountUnknown.
	TotalCount int

	// HasMore reports whether pages exist past the requested window.
	// Ignored for capped sections.
	HasMore bool
}

// FetchFunc issues one underlying source query. The orchestration core
// treats it as opaque; failures should carry a *domain.SearchError.
type FetchFunc func(ctx context.Context, q domain.Query, page PageRequest) (FetchResult, error)

// pageAttempt records a failed request so Retry can re-issue it under the
// same epoch and window.
type pageAttempt struct {
	page  PageRequest
	epoch int
	more  bool
}

// SectionCoordinator owns one source's request lifecycle: issue, cancel,
// retry, loading/error/success state, and page accumulation. Its
// SectionState is mutated exclusively here; everything else reads
// snapshots via State.
//
// Responses are applied in epoch order only: a response tagged with an
// epoch other than the state's current one is dropped without mutating
// anything, which eliminates out-of-order completion races.
type SectionCoordinator struct {
	mu       sync.Mutex
	source   domain.SourceType
	strategy PaginationStrategy
	fetch    FetchFunc
	notify   func(domain.SourceType)

	state      domain.SectionState
	query      domain.Query
	cancel     context.CancelFunc
	lastFailed *pageAttempt
}

// NewSectionCoordinator creates a coordinator for one source. notify is
// called (outside the coordinator's lock) after every state change; it
// may be nil.
func NewSectionCoordinator(
	source domain.SourceType,
	strategy PaginationStrategy,
	fetch FetchFunc,
	notify func(domain.SourceType),
) *SectionCoordinator {
	return &SectionCoordinator{
		source:   source,
		strategy: strategy,
		fetch:    fetch,
		notify:   notify,
		state:    domain.NewSectionState(0),
	}
}

// Source returns the coordinator's source type.
func (c *SectionCoordinator) Source() domain.SourceType {
	return c.source
}

// State returns a snapshot safe to read concurrently.
func (c *SectionCoordinator) State() domain.SectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Trigger starts a fresh request for q under the given epoch. If the
// section is not enabled by q, state resets to idle and nothing is
// issued. Any in-flight request is aborted; its result would be dropped
// by the epoch guard regardless.
func (c *SectionCoordinator) Trigger(ctx context.Context, q domain.Query, epoch int) {
	c.mu.Lock()
	c.abortLocked()
	c.query = q
	c.lastFailed = nil

	if !q.Active() || !q.SourceEnabled(c.source) {
		c.state = domain.NewSectionState(epoch)
		c.mu.Unlock()
		c.changed()
		return
	}

	c.state = domain.SectionState{
		Phase:        domain.PhaseLoading,
		TotalCount:   domain.TotalCountUnknown,
		RequestEpoch: epoch,
	}
	c.startLocked(ctx, q, c.strategy.FirstPage(), epoch, false)
	c.mu.Unlock()
	c.changed()
}

// LoadMore fetches the next page for an incremental section. It is a
// no-op for capped sections, while a fetch is already running, and once
// the server reported hasMore=false.
func (c *SectionCoordinator) LoadMore(ctx context.Context) {
	c.mu.Lock()
	if !c.strategy.Incremental() ||
		c.state.Phase != domain.PhaseLoaded ||
		c.state.IsFetchingMore {
		c.mu.Unlock()
		return
	}
	page, ok := c.strategy.NextPage(len(c.state.Items), c.state.HasMore)
	if !ok {
		c.mu.Unlock()
		return
	}

	c.state.Phase = domain.PhaseLoading
	c.state.IsFetchingMore = true
	c.startLocked(ctx, c.query, page, c.state.RequestEpoch, true)
	c.mu.Unlock()
	c.changed()
}

// Retry re-issues the most recent failed request under the same epoch
// and window, so retrying one section never disturbs its siblings.
// No-op unless the section is in the error phase.
func (c *SectionCoordinator) Retry(ctx context.Context) {
	c.mu.Lock()
	if c.state.Phase != domain.PhaseError || c.lastFailed == nil {
		c.mu.Unlock()
		return
	}
	attempt := *c.lastFailed

	c.state.Phase = domain.PhaseLoading
	c.state.IsFetchingMore = attempt.more
	c.state.Err = nil
	c.startLocked(ctx, c.query, attempt.page, attempt.epoch, attempt.more)
	c.mu.Unlock()
	c.changed()
}

// Stop aborts any in-flight request.
func (c *SectionCoordinator) Stop() {
	c.mu.Lock()
	c.abortLocked()
	c.mu.Unlock()
}

// startLocked launches the fetch goroutine. Caller holds the lock.
func (c *SectionCoordinator) startLocked(ctx context.Context, q domain.Query, page PageRequest, epoch int, more bool) {
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	go func() {
		defer cancel()
		res, err := c.fetch(fetchCtx, q, page)
		c.apply(epoch, page, more, res, err)
	}()
}

// apply folds a completed fetch into section state. The epoch guard is
// the sole arbiter of whether the response may still mutate state.
func (c *SectionCoordinator) apply(epoch int, page PageRequest, more bool, res FetchResult, err error) {
	c.mu.Lock()
	if epoch != c.state.RequestEpoch {
		c.mu.Unlock()
		logger.Debug("%s: dropping stale response (epoch %d, current %d)",
			c.source, epoch, c.state.RequestEpoch)
		return
	}

	if err != nil {
		// A failed next page keeps everything already accumulated; only
		// the attempted window is marked failed and retryable.
		c.state.Phase = domain.PhaseError
		c.state.Err = domain.AsSearchError(err)
		c.state.IsFetchingMore = false
		c.lastFailed = &pageAttempt{page: page, epoch: epoch, more: more}
		c.mu.Unlock()
		logger.Warn("%s: query failed: %v", c.source, err)
		c.changed()
		return
	}

	if more {
		c.state.Items = append(c.state.Items, res.Items...)
	} else {
		c.state.Items = res.Items
	}
	if res.TotalCount != domain.TotalCountUnknown {
		c.state.TotalCount = res.TotalCount
	}
	c.state.HasMore = c.strategy.Incremental() && res.HasMore
	c.state.Phase = domain.PhaseLoaded
	c.state.IsFetchingMore = false
	c.state.Err = nil
	c.lastFailed = nil
	c.mu.Unlock()
	c.changed()
}

// abortLocked cancels the in-flight fetch, if any. Caller holds the lock.
func (c *SectionCoordinator) abortLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *SectionCoordinator) changed() {
	if c.notify != nil {
		c.notify(c.source)
	}
}
