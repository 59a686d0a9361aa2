// Package mcp provides an MCP (Model Context Protocol) server adapter for Scrybe.
// It enables AI assistants to search the video archive and browse its contents.
package mcp

import "errors"

// ErrMissingArchiveClient is returned when the archive client is not provided.
var ErrMissingArchiveClient = errors.New("mcp: archive client is required")
