package services

import (
	"sync"
	"time"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
)

// DefaultDebounceInterval is the quiet period applied to query edits.
const DefaultDebounceInterval = 300 * time.Millisecond

// DebounceGate delays propagation of a changed query until a fixed quiet
// interval has elapsed with no further change. Rapid edits coalesce into
// one emission carrying the newest value.
//
// Inactive (cleared) queries bypass the delay entirely: any pending
// emission is cancelled and the sentinel is emitted synchronously, so
// clearing a search feels instantaneous.
type DebounceGate struct {
	mu       sync.Mutex
	interval time.Duration
	emit     func(domain.Query)
	timer    *time.Timer
	pending  domain.Query
	waiting  bool
	gen      int
}

// NewDebounceGate creates a gate that calls emit after interval of quiet.
// A non-positive interval makes every Schedule emit synchronously.
func NewDebounceGate(interval time.Duration, emit func(domain.Query)) *DebounceGate {
	return &DebounceGate{interval: interval, emit: emit}
}

// Schedule queues q for emission. A previously pending value is discarded;
// only the newest query survives.
func (g *DebounceGate) Schedule(q domain.Query) {
	g.mu.Lock()
	g.gen++
	gen := g.gen
	g.stopTimerLocked()

	if !q.Active() || g.interval <= 0 {
		g.mu.Unlock()
		g.emit(q)
		return
	}

	g.pending = q
	g.waiting = true
	g.timer = time.AfterFunc(g.interval, func() { g.fire(gen) })
	g.mu.Unlock()
}

// CancelPending discards any queued emission without emitting.
func (g *DebounceGate) CancelPending() {
	g.mu.Lock()
	g.gen++
	g.stopTimerLocked()
	g.mu.Unlock()
}

// Flush emits any pending value immediately instead of waiting out the
// interval.
func (g *DebounceGate) Flush() {
	g.mu.Lock()
	if !g.waiting {
		g.mu.Unlock()
		return
	}
	g.gen++
	g.stopTimerLocked()
	q := g.pending
	g.mu.Unlock()
	g.emit(q)
}

// Pending reports whether an emission is queued.
func (g *DebounceGate) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.waiting
}

// fire runs on the timer goroutine. The generation check discards firings
// that lost a race with Schedule or CancelPending.
func (g *DebounceGate) fire(gen int) {
	g.mu.Lock()
	if gen != g.gen || !g.waiting {
		g.mu.Unlock()
		return
	}
	q := g.pending
	g.waiting = false
	g.timer = nil
	g.mu.Unlock()
	g.emit(q)
}

func (g *DebounceGate) stopTimerLocked() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.waiting = false
}
