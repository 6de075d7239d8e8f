// Package mcp provides an MCP (Model Context Protocol) server adapter for jiri.
// It lets AI assistants search and read issues through the configured tracker.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrServiceNotConfigured is returned by tools whose service was not provided.
var ErrServiceNotConfigured = errors.New("mcp: service not configured")
