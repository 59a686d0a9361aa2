// Package urlstate encodes the active search view as URL query
// parameters so a link or reload reconstructs an equivalent search.
package urlstate

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
)

// Query parameter names.
const (
	ParamQuery   = "q"
	ParamSources = "sources"
	ParamDepth   = "depth"
)

// State is the shareable slice of search view state. Depth records how
// many segment items were loaded; restoring always re-fetches from
// offset 0 and treats Depth as a hint, never as a resume cursor.
type State struct {
	Text    string
	Sources []domain.SourceType
	Depth   int
}

// FromQuery captures the current query and segment load depth.
func FromQuery(q domain.Query, segmentDepth int) State {
	return State{
		Text:    q.Text,
		Sources: q.EnabledSources(),
		Depth:   segmentDepth,
	}
}

// Encode renders the state as URL query parameters. Zero-value fields
// are omitted so an idle view encodes to the empty string.
func (s State) Encode() string {
	v := url.Values{}
	if s.Text != "" {
		v.Set(ParamQuery, s.Text)
	}
	if len(s.Sources) > 0 {
		names := make([]string, len(s.Sources))
		for i, t := range s.Sources {
			names[i] = string(t)
		}
		v.Set(ParamSources, strings.Join(names, ","))
	}
	if s.Depth > 0 {
		v.Set(ParamDepth, strconv.Itoa(s.Depth))
	}
	return v.Encode()
}

// Decode parses URL query parameters back into a State. Unknown source
// names and malformed depth values are dropped rather than rejected, so
// a stale or hand-edited link still restores the best possible view.
func Decode(raw string) (State, error) {
	v, err := url.ParseQuery(raw)
	if err != nil {
		return State{}, err
	}

	s := State{Text: v.Get(ParamQuery)}

	if names := v.Get(ParamSources); names != "" {
		for _, name := range strings.Split(names, ",") {
			t, ok := domain.ParseSourceType(strings.TrimSpace(name))
			if !ok {
				continue
			}
			s.Sources = append(s.Sources, t)
		}
	}

	if d := v.Get(ParamDepth); d != "" {
		if n, err := strconv.Atoi(d); err == nil && n > 0 {
			s.Depth = n
		}
	}

	return s, nil
}

// EnabledMap renders the source list in the shape SetInput consumes.
func (s State) EnabledMap() map[domain.SourceType]bool {
	if len(s.Sources) == 0 {
		return nil
	}
	enabled := make(map[domain.SourceType]bool, len(s.Sources))
	for _, t := range s.Sources {
		enabled[t] = true
	}
	return enabled
}
