package tui

import "errors"

// ErrMissingOrchestrator is returned when the search orchestrator is not provided.
var ErrMissingOrchestrator = errors.New("tui: search orchestrator is required")

// ErrMissingArchiveClient is returned when the archive client is not provided.
var ErrMissingArchiveClient = errors.New("tui: archive client is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
