package services

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/jiri/internal/core/domain"
	"github.com/custodia-labs/jiri/internal/core/ports/driven"
	"github.com/custodia-labs/jiri/internal/core/ports/driving"
	"github.com/custodia-labs/jiri/internal/logger"
)

// Ensure FieldService implements the interface.
var _ driving.FieldService = (*FieldService)(nil)

// FieldService owns the process-wide field catalog.
//
// The catalog is fetched on first use and kept for the lifetime of the
// service. A failed fetch is not cached, so the next call tries again.
type FieldService struct {
	tracker driven.IssueTracker

	mu      sync.Mutex
	catalog *domain.FieldCatalog
}

// NewFieldService creates a new field service.
func NewFieldService(tracker driven.IssueTracker) *FieldService {
	return &FieldService{tracker: tracker}
}

// Catalog returns the field catalog, fetching it on first use.
func (s *FieldService) Catalog(ctx context.Context) (*domain.FieldCatalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog != nil {
		logger.Debug("Field catalog: cache hit (%d fields)", len(s.catalog.IDToName))
		return s.catalog, nil
	}
	if s.tracker == nil {
		return nil, domain.ErrNotImplemented
	}

	fields, err := s.tracker.Fields(ctx)
	if err != nil {
		return nil, err
	}
	s.catalog = domain.NewFieldCatalog(fields)
	logger.Debug("Field catalog: loaded %d of %d fields", len(s.catalog.IDToName), len(fields))
	return s.catalog, nil
}

// Resolve fetches the catalog and resolves tokens against it.
func (s *FieldService) Resolve(ctx context.Context, tokens []string) (domain.FieldPlan, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return domain.FieldPlan{}, err
	}
	return ResolveFields(tokens, catalog), nil
}

// Suggest returns up to three field names close to token.
func (s *FieldService) Suggest(ctx context.Context, token string) ([]string, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return SuggestFields(token, catalog, maxSuggestions, maxSuggestionDistance), nil
}

// ResolveFields turns user field tokens into a query and display plan.
//
// A token that is a known field id keeps its id and takes the field's
// display name as header. A token matching a display name (ignoring case)
// is replaced by the field id. Any other token passes through unchanged so
// fields missing from the directory can still be requested.
func ResolveFields(tokens []string, catalog *domain.FieldCatalog) domain.FieldPlan {
	if len(tokens) == 0 {
		return domain.DefaultFieldPlan()
	}

	var plan domain.FieldPlan
	for _, token := range tokens {
		if name, ok := catalog.Name(token); ok {
			header := name
			if header == "" {
				header = token
			}
			plan.Add(token, strings.ToUpper(header), token)
			continue
		}
		if id, ok := catalog.ID(token); ok {
			plan.Add(id, strings.ToUpper(token), id)
			continue
		}
		logger.Debug("Field %q not in catalog, passing through", token)
		plan.Add(token, strings.ToUpper(token), token)
	}
	return plan
}
