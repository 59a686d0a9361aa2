package services

import (
	"context"
	"sync"
	"time"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
	"github.com/scrybe-labs/scrybe-cli/internal/core/ports/driven"
	"github.com/scrybe-labs/scrybe-cli/internal/core/ports/driving"
	"github.com/scrybe-labs/scrybe-cli/internal/logger"
)

// Ensure Orchestrator implements the driving port.
var _ driving.SearchOrchestrator = (*Orchestrator)(nil)

// OrchestratorConfig tunes the search engine.
type OrchestratorConfig struct {
	// DebounceInterval is the quiet period applied to query edits.
	// Negative disables debouncing (synchronous dispatch); zero selects
	// DefaultDebounceInterval.
	DebounceInterval time.Duration

	// SegmentPageSize is the incremental page size for the segment section.
	SegmentPageSize int

	// CappedLimit is the single-shot limit for title/description sections.
	CappedLimit int

	// Language optionally restricts transcript segment search.
	Language string
}

func (c *OrchestratorConfig) applyDefaults() {
	if c.DebounceInterval == 0 {
		c.DebounceInterval = DefaultDebounceInterval
	}
	if c.SegmentPageSize <= 0 {
		c.SegmentPageSize = DefaultSegmentPageSize
	}
	if c.CappedLimit <= 0 {
		c.CappedLimit = DefaultCappedLimit
	}
}

// Orchestrator composes the debounce gate and the three section
// coordinators under one monotonically increasing epoch counter. The
// epoch is shared across the whole orchestrator, not per section, so
// "is this response still relevant" is answerable globally.
//
// Changing SegmentPageSize or CappedLimit means building a new
// orchestrator; a fresh instance starts at a fresh epoch, so offsets
// computed under an old page size can never be reused.
type Orchestrator struct {
	mu         sync.Mutex
	cfg        OrchestratorConfig
	client     driven.ArchiveClient
	history    driven.HistoryStore
	gate       *DebounceGate
	coords     map[domain.SourceType]*SectionCoordinator
	announcer  *Announcer
	epoch      int
	current    domain.Query
	normalized domain.Query
	haveInput  bool
	updates    chan struct{}
	ctx        context.Context
	cancelCtx  context.CancelFunc
}

// NewOrchestrator creates the search engine over the given archive client.
func NewOrchestrator(client driven.ArchiveClient, cfg OrchestratorConfig) *Orchestrator {
	cfg.applyDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	o := &Orchestrator{
		cfg:       cfg,
		client:    client,
		announcer: NewAnnouncer(),
		updates:   make(chan struct{}, 1),
		ctx:       ctx,
		cancelCtx: cancel,
	}
	o.gate = NewDebounceGate(cfg.DebounceInterval, o.dispatch)
	o.coords = map[domain.SourceType]*SectionCoordinator{
		domain.SourceSegments: NewSectionCoordinator(
			domain.SourceSegments,
			IncrementalStrategy{PageSize: cfg.SegmentPageSize},
			o.fetchSegments,
			o.sectionChanged,
		),
		domain.SourceTitles: NewSectionCoordinator(
			domain.SourceTitles,
			CappedStrategy{Limit: cfg.CappedLimit},
			o.fetchTitles,
			o.sectionChanged,
		),
		domain.SourceDescriptions: NewSectionCoordinator(
			domain.SourceDescriptions,
			CappedStrategy{Limit: cfg.CappedLimit},
			o.fetchDescriptions,
			o.sectionChanged,
		),
	}
	return o
}

// SetHistoryStore enables best-effort recording of dispatched searches.
func (o *Orchestrator) SetHistoryStore(h driven.HistoryStore) {
	o.mu.Lock()
	o.history = h
	o.mu.Unlock()
}

// SetInput feeds raw user input through normalization and the debounce
// gate. A no-op edit (normalizing to the previous query) is suppressed
// entirely and does not restart the quiet interval.
func (o *Orchestrator) SetInput(text string, enabled map[domain.SourceType]bool) error {
	q, err := NormalizeQuery(text, enabled)
	if err != nil {
		return err
	}

	o.mu.Lock()
	if o.haveInput && q.Equal(o.normalized) {
		o.mu.Unlock()
		return nil
	}
	o.normalized = q
	o.haveInput = true
	o.mu.Unlock()

	o.gate.Schedule(q)
	return nil
}

// dispatch is the gate's emission target: it supersedes the previous
// query, bumps the shared epoch, and triggers every coordinator in the
// same tick so their completions interleave arbitrarily.
func (o *Orchestrator) dispatch(q domain.Query) {
	o.mu.Lock()
	o.epoch++
	epoch := o.epoch
	o.current = q
	ctx := o.ctx
	o.mu.Unlock()

	logger.Section("Search Dispatch")
	logger.Debug("Query: %q, sources: %v, epoch: %d", q.Text, q.EnabledSources(), epoch)

	if q.Searchable() {
		o.recordHistory(q)
	}
	for _, t := range domain.ActiveSourceTypes() {
		o.coords[t].Trigger(ctx, q, epoch)
	}
}

// Query returns the currently dispatched query.
func (o *Orchestrator) Query() domain.Query {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Epoch returns the current shared epoch.
func (o *Orchestrator) Epoch() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.epoch
}

// Section returns a snapshot of one section's state.
func (o *Orchestrator) Section(t domain.SourceType) domain.SectionState {
	c, ok := o.coords[t]
	if !ok {
		return domain.NewSectionState(0)
	}
	return c.State()
}

// Sections returns snapshots of all wired sections.
func (o *Orchestrator) Sections() map[domain.SourceType]domain.SectionState {
	out := make(map[domain.SourceType]domain.SectionState, len(o.coords))
	for t, c := range o.coords {
		out[t] = c.State()
	}
	return out
}

// RetrySection re-issues one section's most recent failed request under
// its original epoch. Sibling sections' in-flight state is untouched.
func (o *Orchestrator) RetrySection(t domain.SourceType) {
	c, ok := o.coords[t]
	if !ok {
		return
	}
	o.mu.Lock()
	ctx := o.ctx
	o.mu.Unlock()
	c.Retry(ctx)
}

// LoadMoreSegments fetches the next transcript segment page.
func (o *Orchestrator) LoadMoreSegments() {
	o.mu.Lock()
	ctx := o.ctx
	o.mu.Unlock()
	o.coords[domain.SourceSegments].LoadMore(ctx)
}

// Aggregate derives the combined status across enabled sections.
func (o *Orchestrator) Aggregate() domain.AggregateStatus {
	return domain.Aggregate(o.Query(), o.Sections())
}

// Announcement returns the status sentence and whether it changed.
func (o *Orchestrator) Announcement() (string, bool) {
	return o.announcer.Announce(o.Query(), o.Sections())
}

// Updates returns the coalesced change-notification channel. Intended
// for a single consumer; receivers re-read snapshots after each signal.
func (o *Orchestrator) Updates() <-chan struct{} {
	return o.updates
}

// Stop cancels in-flight requests and pending debounce timers.
func (o *Orchestrator) Stop() {
	o.gate.CancelPending()
	o.cancelCtx()
	for _, c := range o.coords {
		c.Stop()
	}
}

// sectionChanged is each coordinator's notify hook. The buffered,
// non-blocking send coalesces bursts into one wakeup.
func (o *Orchestrator) sectionChanged(domain.SourceType) {
	select {
	case o.updates <- struct{}{}:
	default:
	}
}

// recordHistory stores the dispatched query, best effort.
func (o *Orchestrator) recordHistory(q domain.Query) {
	o.mu.Lock()
	h := o.history
	ctx := o.ctx
	o.mu.Unlock()
	if h == nil {
		return
	}

	go func() {
		err := h.Record(ctx, driven.HistoryEntry{
			Text:       q.Text,
			Sources:    q.EnabledSources(),
			SearchedAt: time.Now(),
		})
		if err != nil {
			logger.Warn("recording search history: %v", err)
		}
	}()
}

// fetchSegments adapts the archive client's segment endpoint to the
// coordinator's fetch contract.
func (o *Orchestrator) fetchSegments(ctx context.Context, q domain.Query, page PageRequest) (FetchResult, error) {
	res, err := o.client.SearchSegments(ctx, q.Text, page.Offset, page.Limit, o.cfg.Language)
	if err != nil {
		return FetchResult{}, err
	}
	items := make([]domain.ResultItem, len(res.Items))
	for i := range res.Items {
		items[i] = res.Items[i]
	}
	return FetchResult{Items: items, TotalCount: res.Total, HasMore: res.HasMore}, nil
}

func (o *Orchestrator) fetchTitles(ctx context.Context, q domain.Query, page PageRequest) (FetchResult, error) {
	res, err := o.client.SearchTitles(ctx, q.Text, page.Limit)
	if err != nil {
		return FetchResult{}, err
	}
	return videoFetchResult(res), nil
}

func (o *Orchestrator) fetchDescriptions(ctx context.Context, q domain.Query, page PageRequest) (FetchResult, error) {
	res, err := o.client.SearchDescriptions(ctx, q.Text, page.Limit)
	if err != nil {
		return FetchResult{}, err
	}
	return videoFetchResult(res), nil
}

func videoFetchResult(res *driven.VideoPage) FetchResult {
	items := make([]domain.ResultItem, len(res.Items))
	for i := range res.Items {
		items[i] = res.Items[i]
	}
	return FetchResult{Items: items, TotalCount: res.TotalCount}
}
