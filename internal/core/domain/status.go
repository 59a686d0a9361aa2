package domain

// AggregateStatus is the combined outcome across all enabled sections,
// derived on demand rather than stored.
type AggregateStatus struct {
	// QueryText is the active query text.
	QueryText string

	// AllSettled reports whether every enabled section has reached
	// loaded or error.
	AllSettled bool

	// PerSourceCounts maps each enabled, successfully loaded source to
	// its best-known count. Errored and unsettled sections are absent.
	PerSourceCounts map[SourceType]int
}

// Aggregate derives the combined status from the per-section states.
// Sections the query does not enable are ignored.
func Aggregate(q Query, states map[SourceType]SectionState) AggregateStatus {
	agg := AggregateStatus{
		QueryText:       q.Text,
		AllSettled:      true,
		PerSourceCounts: make(map[SourceType]int),
	}

	for _, t := range ActiveSourceTypes() {
		if !q.SourceEnabled(t) {
			continue
		}
		st, ok := states[t]
		if !ok || !st.Settled() {
			agg.AllSettled = false
			continue
		}
		if st.Phase == PhaseLoaded {
			agg.PerSourceCounts[t] = st.Count()
		}
	}

	return agg
}
