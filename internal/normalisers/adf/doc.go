// Package adf converts rich-text documents between their JSON wire form,
// the domain.Node tree and plain text.
//
// Flattening is lossy: marks, links, tables and media are reduced to their
// text content. It is meant for terminal display, not round-tripping.
package adf
