package domain

import "sort"

// Query length bounds. Text shorter than MinQueryLength (after trimming)
// is rejected before any request is issued.
const (
	MinQueryLength = 2
	MaxQueryLength = 500
)

// Query is a normalized search request: the free text plus the set of
// sources the search runs against.
//
// The zero Query is the inactive sentinel (no search in progress).
// A Query with text but no enabled sources is the distinct "disabled"
// state: valid input, but nothing to search.
type Query struct {
	// Text is the trimmed free-text query. Empty means inactive.
	Text string

	// Enabled holds the toggled-on sources. Only true entries are kept
	// by normalization, so map equality is well defined.
	Enabled map[SourceType]bool
}

// Active reports whether the query has text. An inactive query silences
// the announcer and resets all sections to idle.
func (q Query) Active() bool {
	return q.Text != ""
}

// Searchable reports whether the query should actually trigger requests:
// active text and at least one wired source enabled.
func (q Query) Searchable() bool {
	if !q.Active() {
		return false
	}
	for t, on := range q.Enabled {
		if on && t.Wired() {
			return true
		}
	}
	return false
}

// SourceEnabled reports whether source t participates in this query.
func (q Query) SourceEnabled(t SourceType) bool {
	return q.Enabled[t] && t.Wired()
}

// EnabledSources returns the enabled wired sources in stable order.
func (q Query) EnabledSources() []SourceType {
	var out []SourceType
	for _, t := range ActiveSourceTypes() {
		if q.SourceEnabled(t) {
			out = append(out, t)
		}
	}
	return out
}

// Equal reports whether two queries are equivalent: same text and the
// same set of enabled sources. Used to suppress no-op triggers.
func (q Query) Equal(other Query) bool {
	if q.Text != other.Text {
		return false
	}
	return equalEnabled(q.Enabled, other.Enabled)
}

func equalEnabled(a, b map[SourceType]bool) bool {
	keys := func(m map[SourceType]bool) []string {
		var ks []string
		for t, on := range m {
			if on {
				ks = append(ks, string(t))
			}
		}
		sort.Strings(ks)
		return ks
	}
	ka, kb := keys(a), keys(b)
	if len(ka) != len(kb) {
		return false
	}
	for i := range ka {
		if ka[i] != kb[i] {
			return false
		}
	}
	return true
}
