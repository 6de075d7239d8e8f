package driving

import (
	"context"

	"github.com/custodia-labs/jiri/internal/core/domain"
)

// FieldService resolves user-supplied field tokens against the field directory.
type FieldService interface {
	// Catalog returns the field catalog, fetching it on first use.
	Catalog(ctx context.Context) (*domain.FieldCatalog, error)

	// Resolve turns field tokens into a query and display plan.
	Resolve(ctx context.Context, tokens []string) (domain.FieldPlan, error)

	// Suggest returns up to three known field names close to token.
	Suggest(ctx context.Context, token string) ([]string, error)
}
