package driven

import (
	"context"
	"time"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
)

// HistoryEntry is one recorded search.
type HistoryEntry struct {
	// Text is the normalized query text.
	Text string

	// Sources are the source types the search ran against.
	Sources []domain.SourceType

	// SearchedAt is when the search was triggered.
	SearchedAt time.Time
}

// HistoryStore persists recent searches. Query text only; results are
// never cached.
type HistoryStore interface {
	// Record stores a search. Repeating the same text updates its timestamp
	// rather than inserting a duplicate.
	Record(ctx context.Context, entry HistoryEntry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]HistoryEntry, error)

	// Clear removes all recorded searches.
	Clear(ctx context.Context) error

	// Close releases the underlying storage.
	Close() error
}
