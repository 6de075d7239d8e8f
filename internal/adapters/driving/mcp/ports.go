package mcp

import (
	"github.com/custodia-labs/jiri/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs JQL queries.
	Search driving.SearchService

	// Fields resolves field names for search columns.
	Fields driving.FieldService

	// Issues reads single issues.
	Issues driving.IssueService

	// Projects lists projects.
	Projects driving.ProjectService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
