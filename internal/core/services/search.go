package services

import (
	"context"
	"sort"
	"strings"

	"github.com/custodia-labs/jiri/internal/core/domain"
	"github.com/custodia-labs/jiri/internal/core/ports/driven"
	"github.com/custodia-labs/jiri/internal/core/ports/driving"
	"github.com/custodia-labs/jiri/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// PageSize is the number of issues requested per search page.
const PageSize = 100

// allFields asks the search API for every field.
const allFields = "*all"

// SearchService pages through query results.
type SearchService struct {
	tracker driven.IssueTracker
	fields  driving.FieldService
}

// NewSearchService creates a new search service.
// The field service supplies display names for FieldsOf.
func NewSearchService(tracker driven.IssueTracker, fields driving.FieldService) *SearchService {
	return &SearchService{tracker: tracker, fields: fields}
}

// Collect gathers up to limit issues matching jql.
//
// Pages of at most PageSize are requested, each continuing from the
// previous page's cursor, until limit is reached or a page arrives without
// a cursor or without issues. Issues beyond limit are dropped even when a
// page over-delivers. MoreAvailable is true only when collection stopped
// at limit while a cursor was still outstanding. A limit of zero or less
// returns an empty result without calling the tracker. If any page fails
// the error is returned and nothing collected so far is kept.
func (s *SearchService) Collect(
	ctx context.Context, jql string, fields []string, limit int,
) (*domain.SearchResult, error) {
	logger.Section("Search")
	logger.Debug("JQL: %q, fields: %v, limit: %d", jql, fields, limit)

	result := &domain.SearchResult{Issues: []domain.Issue{}}
	if limit <= 0 {
		return result, nil
	}
	if s.tracker == nil {
		return nil, domain.ErrNotImplemented
	}

	var cursor string
	for len(result.Issues) < limit {
		req := domain.SearchRequest{
			JQL:        jql,
			Fields:     fields,
			MaxResults: min(PageSize, limit-len(result.Issues)),
			PageToken:  cursor,
		}
		page, err := s.tracker.SearchPage(ctx, req)
		if err != nil {
			return nil, err
		}

		take := min(len(page.Issues), limit-len(result.Issues))
		result.Issues = append(result.Issues, page.Issues[:take]...)
		cursor = page.NextPageToken
		logger.Debug("Page: requested %d, got %d, total %d, cursor: %t",
			req.MaxResults, len(page.Issues), len(result.Issues), cursor != "")

		if cursor == "" || len(page.Issues) == 0 {
			break
		}
	}

	result.MoreAvailable = cursor != "" && len(result.Issues) >= limit
	logger.Info("Collected %d issues", len(result.Issues))
	return result, nil
}

// FieldsOf returns the fields set on the first issue matching jql, sorted
// with system fields first. Fields missing from the directory carry only
// their id. No matching issue yields an empty list.
func (s *SearchService) FieldsOf(ctx context.Context, jql string) ([]domain.Field, error) {
	if s.tracker == nil || s.fields == nil {
		return nil, domain.ErrNotImplemented
	}

	page, err := s.tracker.SearchPage(ctx, domain.SearchRequest{
		JQL:        jql,
		Fields:     []string{allFields},
		MaxResults: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(page.Issues) == 0 {
		return []domain.Field{}, nil
	}

	catalog, err := s.fields.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(page.Issues[0].Fields))
	for id := range page.Issues[0].Fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fields := make([]domain.Field, 0, len(ids))
	for _, id := range SortFieldsForDisplay(ids, catalog) {
		name, _ := catalog.Name(id)
		fields = append(fields, domain.Field{ID: id, Name: name, Custom: IsCustomField(id)})
	}
	return fields, nil
}

// IsCustomField reports whether id names a site-defined field.
func IsCustomField(id string) bool {
	return strings.HasPrefix(id, customFieldPrefix)
}
