// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - ArchiveClient: the remote archive search/browse API
//   - ConfigStore: application configuration
//   - HistoryStore: recent-search persistence
//
// Port packages can import domain only, never adapters.
package driven
