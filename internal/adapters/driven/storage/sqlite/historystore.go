package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
	"github.com/scrybe-labs/scrybe-cli/internal/core/ports/driven"
)

// Ensure historyStore implements the interface.
var _ driven.HistoryStore = (*historyStore)(nil)

// historyStore implements driven.HistoryStore on the shared SQLite store.
type historyStore struct {
	store *Store
}

// Record stores a search. Repeating the same text updates its timestamp
// and source set rather than inserting a duplicate row.
func (h *historyStore) Record(ctx context.Context, entry driven.HistoryEntry) error {
	sources := make([]string, len(entry.Sources))
	for i, t := range entry.Sources {
		sources[i] = string(t)
	}

	_, err := h.store.db.ExecContext(ctx, `
		INSERT INTO search_history (text, sources, searched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(text) DO UPDATE SET
			sources = excluded.sources,
			searched_at = excluded.searched_at
	`, entry.Text, strings.Join(sources, ","), entry.SearchedAt.UTC())
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (h *historyStore) Recent(ctx context.Context, limit int) ([]driven.HistoryEntry, error) {
	rows, err := h.store.db.QueryContext(ctx, `
		SELECT text, sources, searched_at
		FROM search_history
		ORDER BY searched_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying search history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []driven.HistoryEntry
	for rows.Next() {
		var text, sources string
		var searchedAt time.Time
		if err := rows.Scan(&text, &sources, &searchedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, driven.HistoryEntry{
			Text:       text,
			Sources:    parseSources(sources),
			SearchedAt: searchedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history rows: %w", err)
	}
	return entries, nil
}

// Clear removes all recorded searches.
func (h *historyStore) Clear(ctx context.Context) error {
	if _, err := h.store.db.ExecContext(ctx, "DELETE FROM search_history"); err != nil {
		return fmt.Errorf("clearing search history: %w", err)
	}
	return nil
}

// Close is a no-op; the shared store owns the connection.
func (h *historyStore) Close() error {
	return nil
}

// parseSources decodes the comma-joined source column, dropping values
// no longer recognized after an upgrade.
func parseSources(s string) []domain.SourceType {
	if s == "" {
		return nil
	}
	var out []domain.SourceType
	for _, part := range strings.Split(s, ",") {
		t := domain.SourceType(part)
		if t.Valid() {
			out = append(out, t)
		}
	}
	return out
}
