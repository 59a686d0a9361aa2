// Package driving defines the interfaces external actors use to drive
// the core: the CLI, the TUI, and the MCP server all talk to the search
// core through these ports.
package driving
