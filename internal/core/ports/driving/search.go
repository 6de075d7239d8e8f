package driving

import (
	"context"

	"github.com/custodia-labs/jiri/internal/core/domain"
)

// SearchService runs queries against the tracker.
type SearchService interface {
	// Collect pages through a query until limit issues are gathered or the
	// results run out.
	Collect(ctx context.Context, jql string, fields []string, limit int) (*domain.SearchResult, error)

	// FieldsOf returns the fields present on the first issue matching jql.
	FieldsOf(ctx context.Context, jql string) ([]domain.Field, error)
}
