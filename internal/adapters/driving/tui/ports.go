// Package tui provides an interactive terminal user interface for scrybe.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/scrybe-labs/scrybe-cli/internal/core/ports/driven"
	"github.com/scrybe-labs/scrybe-cli/internal/core/ports/driving"
)

// Ports aggregates the dependencies required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search drives the live multi-source search view.
	Search driving.SearchOrchestrator

	// Archive backs the channel and playlist browse views.
	Archive driven.ArchiveClient
}

// NewPorts creates a new Ports aggregate.
func NewPorts(search driving.SearchOrchestrator, archive driven.ArchiveClient) *Ports {
	return &Ports{
		Search:  search,
		Archive: archive,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingOrchestrator
	}
	if p.Archive == nil {
		return ErrMissingArchiveClient
	}
	return nil
}
