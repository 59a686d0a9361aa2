package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
)

// SearchingAnnouncement is emitted while the first enabled section is
// still loading and none has settled.
const SearchingAnnouncement = "Searching…"

// ComposeAnnouncement derives the screen-reader status sentence from the
// section states. It is a pure function; ok=false means no sentence
// applies right now and the previous one should stand (e.g. while some
// sections have settled and others are still loading).
//
// An empty sentence with ok=true means silence: the query is inactive or
// has no enabled sources.
func ComposeAnnouncement(q domain.Query, states map[domain.SourceType]domain.SectionState) (sentence string, ok bool) {
	if !q.Searchable() {
		return "", true
	}

	enabled := q.EnabledSources()
	settled := 0
	for _, t := range enabled {
		if states[t].Settled() {
			settled++
		}
	}

	if settled == 0 {
		for _, t := range enabled {
			if states[t].FreshLoading() {
				return SearchingAnnouncement, true
			}
		}
		return "", false
	}
	if settled < len(enabled) {
		return "", false
	}

	return composeSettled(q, enabled, states), true
}

// composeSettled builds the sentence once every enabled section reached
// loaded or error.
func composeSettled(q domain.Query, enabled []domain.SourceType, states map[domain.SourceType]domain.SectionState) string {
	var parts []string
	total := 0
	errored := 0

	for _, t := range enabled {
		st := states[t]
		if st.Phase == domain.PhaseError {
			// Errored sections are surfaced by their own retry affordance,
			// never silently folded into the totals.
			errored++
			continue
		}
		n := st.Count()
		total += n
		parts = append(parts, fmt.Sprintf("%d %s", n, t.Label()))
	}

	if errored == len(enabled) {
		return fmt.Sprintf("Search failed for '%s'", q.Text)
	}
	if total == 0 && errored == 0 {
		return fmt.Sprintf("No results found for '%s'", q.Text)
	}

	list := parts[len(parts)-1]
	if len(parts) > 1 {
		list = strings.Join(parts[:len(parts)-1], ", ") + " and " + list
	}

	noun := "matches"
	if len(parts) == 1 && total == 1 {
		noun = "match"
	}
	return fmt.Sprintf("Found %s %s for '%s'", list, noun, q.Text)
}

// Announcer wraps ComposeAnnouncement with the duplicate-suppression
// guarantee: the same sentence is never reported as changed twice in a
// row for the same query, preventing redundant assistive-technology
// chatter.
type Announcer struct {
	mu        sync.Mutex
	queryText string
	last      string
}

// NewAnnouncer creates an announcer with no previous sentence.
func NewAnnouncer() *Announcer {
	return &Announcer{}
}

// Announce returns the current sentence and whether it changed since the
// previous call. A query text change resets the duplicate guard.
func (a *Announcer) Announce(q domain.Query, states map[domain.SourceType]domain.SectionState) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if q.Text != a.queryText {
		a.queryText = q.Text
		a.last = ""
	}

	sentence, ok := ComposeAnnouncement(q, states)
	if !ok || sentence == a.last {
		return a.last, false
	}
	a.last = sentence
	return sentence, true
}
