package driving

import (
	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
)

// SearchOrchestrator exposes the multi-source search engine to external
// actors. Implementations debounce input, fan one query out to every
// enabled section concurrently, and keep per-section state isolated.
type SearchOrchestrator interface {
	// SetInput feeds raw user input. Validation failures (text out of
	// bounds) are returned immediately and trigger nothing. Clearing the
	// input bypasses the debounce interval and resets synchronously.
	SetInput(text string, enabled map[domain.SourceType]bool) error

	// Query returns the currently dispatched query.
	Query() domain.Query

	// Section returns a snapshot of one section's state.
	Section(t domain.SourceType) domain.SectionState

	// Sections returns snapshots of all wired sections.
	Sections() map[domain.SourceType]domain.SectionState

	// RetrySection re-issues the most recent failed request of one
	// section under its original epoch. Sibling sections are untouched.
	RetrySection(t domain.SourceType)

	// LoadMoreSegments fetches the next transcript segment page. No-op
	// unless the segment section is loaded with more pages available.
	LoadMoreSegments()

	// Aggregate derives the combined status across enabled sections.
	Aggregate() domain.AggregateStatus

	// Announcement returns the current status sentence and whether it
	// changed since the previous call. An identical sentence is never
	// reported as changed twice in a row.
	Announcement() (string, bool)

	// Updates signals after any section state change. Notifications are
	// coalesced; receivers re-read snapshots.
	Updates() <-chan struct{}

	// Stop cancels in-flight work and pending debounce timers.
	Stop()
}
