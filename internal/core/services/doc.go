// Package services implements the multi-source search orchestration core:
// query normalization, debounced triggering, per-section request
// coordination with epoch-based stale-response guarding, the two
// pagination disciplines, and the aggregated status announcer.
package services
