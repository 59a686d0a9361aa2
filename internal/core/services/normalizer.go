package services

import (
	"strings"
	"unicode/utf8"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
)

// NormalizeQuery canonicalizes raw user input into a domain.Query.
//
// Empty (or whitespace-only) text yields the inactive sentinel with no
// error; clearing a search is not a validation failure. Out-of-bounds
// text is rejected with a validation SearchError before any request is
// issued. Unknown source toggles are dropped; only explicitly enabled,
// known sources are kept.
//
// Normalization is idempotent: feeding a normalized query's fields back
// in yields an equal Query, which callers use to suppress no-op edits.
func NormalizeQuery(text string, enabled map[domain.SourceType]bool) (domain.Query, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.Query{}, nil
	}

	n := utf8.RuneCountInString(trimmed)
	if n < domain.MinQueryLength {
		return domain.Query{}, domain.NewValidationError(domain.ErrQueryTooShort)
	}
	if n > domain.MaxQueryLength {
		return domain.Query{}, domain.NewValidationError(domain.ErrQueryTooLong)
	}

	var keep map[domain.SourceType]bool
	for t, on := range enabled {
		if !on || !t.Valid() {
			continue
		}
		if keep == nil {
			keep = make(map[domain.SourceType]bool)
		}
		keep[t] = true
	}

	return domain.Query{Text: trimmed, Enabled: keep}, nil
}
