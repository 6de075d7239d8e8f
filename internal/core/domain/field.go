package domain

import "strings"

// Field is one entry of the tracker's field directory.
type Field struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}

// FieldCatalog maps field identifiers to display names and back.
//
// NameToID is keyed by the lower-cased display name. When two fields share a
// display name the one listed last wins; callers should treat the inverse
// mapping as ambiguous for such names.
type FieldCatalog struct {
	IDToName map[string]string
	NameToID map[string]string
}

// NewFieldCatalog builds a catalog from a field directory listing.
// Entries with an empty id or name are skipped.
func NewFieldCatalog(fields []Field) *FieldCatalog {
	c := &FieldCatalog{
		IDToName: make(map[string]string, len(fields)),
		NameToID: make(map[string]string, len(fields)),
	}
	for _, f := range fields {
		if f.ID == "" || f.Name == "" {
			continue
		}
		c.IDToName[f.ID] = f.Name
		c.NameToID[strings.ToLower(f.Name)] = f.ID
	}
	return c
}

// Name returns the display name for a field id.
func (c *FieldCatalog) Name(id string) (string, bool) {
	if c == nil {
		return "", false
	}
	name, ok := c.IDToName[id]
	return name, ok
}

// ID returns the field id for a display name, ignoring case.
func (c *FieldCatalog) ID(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	id, ok := c.NameToID[strings.ToLower(name)]
	return id, ok
}

// Known reports whether token is a known field id or display name.
func (c *FieldCatalog) Known(token string) bool {
	if _, ok := c.Name(token); ok {
		return true
	}
	_, ok := c.ID(token)
	return ok
}

// Default columns used when no fields are requested.
const (
	DefaultKeyField     = "key"
	DefaultSummaryField = "summary"
)

// FieldPlan is the result of resolving user-supplied field tokens.
// The three slices are parallel and always have equal length.
type FieldPlan struct {
	// QueryFields are the identifiers sent to the search API.
	QueryFields []string

	// Headers are the upper-cased column titles.
	Headers []string

	// Keys are used to extract each column's value from a returned issue.
	Keys []string
}

// DefaultFieldPlan returns the two-column key/summary plan.
func DefaultFieldPlan() FieldPlan {
	return FieldPlan{
		QueryFields: []string{DefaultKeyField, DefaultSummaryField},
		Headers:     []string{"KEY", "SUMMARY"},
		Keys:        []string{DefaultKeyField, DefaultSummaryField},
	}
}

// Add appends one resolved column to the plan.
func (p *FieldPlan) Add(queryField, header, key string) {
	p.QueryFields = append(p.QueryFields, queryField)
	p.Headers = append(p.Headers, header)
	p.Keys = append(p.Keys, key)
}

// Len returns the number of columns in the plan.
func (p *FieldPlan) Len() int {
	return len(p.Keys)
}
