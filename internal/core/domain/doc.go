// Package domain defines the core business entities for jiri.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Issue: A tracked item as returned by the API
//   - FieldCatalog: The id/display-name directory of issue fields
//   - FieldPlan: Resolved query fields, column headers and value keys
//   - Node: A rich-text document tree (TextNode or BlockNode)
//   - Config: Site and credential settings
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
