package domain

// Phase is the lifecycle phase of one section's request state machine.
type Phase string

const (
	// PhaseIdle means the section is disabled or no search is active.
	PhaseIdle Phase = "idle"

	// PhaseLoading means a request is in flight.
	PhaseLoading Phase = "loading"

	// PhaseLoaded means the most recent request succeeded.
	PhaseLoaded Phase = "loaded"

	// PhaseError means the most recent request failed.
	PhaseError Phase = "error"
)

// TotalCountUnknown marks a section whose server-declared total has not
// arrived yet.
const TotalCountUnknown = -1

// SectionState is the full request-lifecycle state of one section.
// It is owned exclusively by the section's coordinator; everything else
// only reads snapshots.
type SectionState struct {
	// Phase is the current lifecycle phase.
	Phase Phase

	// Items is the ordered accumulated result list.
	Items []ResultItem

	// TotalCount is the server-declared total for the section, or
	// TotalCountUnknown until one has been received.
	TotalCount int

	// HasMore reports whether the server declared further pages.
	// Always false for capped sections.
	HasMore bool

	// IsFetchingMore distinguishes an incremental next-page fetch from a
	// fresh load. Items are retained while it is set.
	IsFetchingMore bool

	// Err holds the failure of the most recent request, if any.
	Err *SearchError

	// RequestEpoch tags the trigger this state belongs to. A response
	// carrying a different epoch never mutates the state.
	RequestEpoch int
}

// NewSectionState returns an idle state for the given epoch.
func NewSectionState(epoch int) SectionState {
	return SectionState{
		Phase:        PhaseIdle,
		TotalCount:   TotalCountUnknown,
		RequestEpoch: epoch,
	}
}

// Settled reports whether the section has reached a terminal phase for
// the current trigger (loaded or error).
func (s SectionState) Settled() bool {
	return s.Phase == PhaseLoaded || s.Phase == PhaseError
}

// FreshLoading reports whether the section is loading its first page for
// the current trigger, as opposed to fetching an additional page.
func (s SectionState) FreshLoading() bool {
	return s.Phase == PhaseLoading && !s.IsFetchingMore
}

// Count returns the best-known result count: the server total when
// declared, otherwise the number of accumulated items.
func (s SectionState) Count() int {
	if s.TotalCount != TotalCountUnknown {
		return s.TotalCount
	}
	return len(s.Items)
}

// Clone returns a copy safe to hand outside the owning coordinator.
// The item list is copied; items themselves are immutable values.
func (s SectionState) Clone() SectionState {
	out := s
	if s.Items != nil {
		out.Items = make([]ResultItem, len(s.Items))
		copy(out.Items, s.Items)
	}
	return out
}
