package mcp

import (
	"github.com/scrybe-labs/scrybe-cli/internal/core/ports/driven"
	"github.com/scrybe-labs/scrybe-cli/internal/core/services"
)

// Ports aggregates the dependencies required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Archive is the archive API client. Required.
	Archive driven.ArchiveClient

	// History records searches run through the server. Optional.
	History driven.HistoryStore

	// SearchConfig tunes the per-call search orchestrator. The debounce
	// interval is forced negative; MCP calls are one-shot.
	SearchConfig services.OrchestratorConfig
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Archive == nil {
		return ErrMissingArchiveClient
	}
	// History is optional
	return nil
}
