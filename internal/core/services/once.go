package services

import (
	"context"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
	"github.com/scrybe-labs/scrybe-cli/internal/core/ports/driving"
)

// SearchOnce runs one synchronous search to completion: it feeds the
// input, waits for every enabled section to settle, and returns the
// aggregate plus the final per-section snapshots. The one-shot CLI and
// the MCP tool use it.
//
// The orchestrator should be built with a negative DebounceInterval so
// the dispatch happens inside SetInput.
func SearchOnce(
	ctx context.Context,
	orch driving.SearchOrchestrator,
	text string,
	sources []domain.SourceType,
) (domain.AggregateStatus, map[domain.SourceType]domain.SectionState, error) {
	enabled := make(map[domain.SourceType]bool, len(sources))
	for _, t := range sources {
		enabled[t] = true
	}

	updates := orch.Updates()
	if err := orch.SetInput(text, enabled); err != nil {
		return domain.AggregateStatus{}, nil, err
	}

	if !orch.Query().Searchable() {
		return orch.Aggregate(), orch.Sections(), nil
	}

	for {
		agg := orch.Aggregate()
		if agg.AllSettled {
			return agg, orch.Sections(), nil
		}
		select {
		case <-ctx.Done():
			return agg, orch.Sections(), ctx.Err()
		case <-updates:
		}
	}
}
