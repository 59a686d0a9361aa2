package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
)

// emissions collects gate output safely across goroutines.
type emissions struct {
	mu  sync.Mutex
	got []domain.Query
}

func (e *emissions) add(q domain.Query) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.got = append(e.got, q)
}

func (e *emissions) all() []domain.Query {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.Query, len(e.got))
	copy(out, e.got)
	return out
}

func activeQuery(text string) domain.Query {
	return domain.Query{Text: text, Enabled: map[domain.SourceType]bool{domain.SourceSegments: true}}
}

func TestDebounceCoalescesRapidEdits(t *testing.T) {
	var e emissions
	g := NewDebounceGate(30*time.Millisecond, e.add)

	// All edits land within the quiet interval.
	g.Schedule(activeQuery("k"))
	g.Schedule(activeQuery("ku"))
	g.Schedule(activeQuery("kub"))
	g.Schedule(activeQuery("kubernetes"))

	require.Eventually(t, func() bool {
		return len(e.all()) == 1
	}, time.Second, 5*time.Millisecond)

	// Only the newest edit survives; no second emission follows.
	time.Sleep(60 * time.Millisecond)
	got := e.all()
	require.Len(t, got, 1)
	assert.Equal(t, "kubernetes", got[0].Text)
}

func TestDebounceEmitsAfterQuiet(t *testing.T) {
	var e emissions
	g := NewDebounceGate(10*time.Millisecond, e.add)

	g.Schedule(activeQuery("go"))
	assert.True(t, g.Pending())

	require.Eventually(t, func() bool {
		return len(e.all()) == 1
	}, time.Second, time.Millisecond)
	assert.False(t, g.Pending())
}

func TestDebounceClearBypassesDelay(t *testing.T) {
	var e emissions
	g := NewDebounceGate(time.Hour, e.add)

	g.Schedule(activeQuery("pending forever"))
	g.Schedule(domain.Query{})

	// The inactive sentinel is emitted synchronously; the pending active
	// query is discarded, not delivered late.
	got := e.all()
	require.Len(t, got, 1)
	assert.False(t, got[0].Active())
	assert.False(t, g.Pending())
}

func TestDebounceCancelPending(t *testing.T) {
	var e emissions
	g := NewDebounceGate(20*time.Millisecond, e.add)

	g.Schedule(activeQuery("doomed"))
	g.CancelPending()

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, e.all())
}

func TestDebounceFlush(t *testing.T) {
	var e emissions
	g := NewDebounceGate(time.Hour, e.add)

	g.Flush() // nothing pending: no-op
	assert.Empty(t, e.all())

	g.Schedule(activeQuery("now"))
	g.Flush()

	got := e.all()
	require.Len(t, got, 1)
	assert.Equal(t, "now", got[0].Text)
}

func TestDebounceZeroIntervalIsSynchronous(t *testing.T) {
	var e emissions
	g := NewDebounceGate(-1, e.add)

	g.Schedule(activeQuery("direct"))
	require.Len(t, e.all(), 1)
}
