package services

import (
	"context"

	"github.com/custodia-labs/jiri/internal/core/domain"
	"github.com/custodia-labs/jiri/internal/core/ports/driven"
	"github.com/custodia-labs/jiri/internal/core/ports/driving"
	"github.com/custodia-labs/jiri/internal/logger"
)

// Ensure ProjectService implements the interface.
var _ driving.ProjectService = (*ProjectService)(nil)

// maxProjectPages bounds the listing in case the server never reports the last page.
const maxProjectPages = 100

// ProjectService lists projects.
type ProjectService struct {
	tracker driven.IssueTracker
}

// NewProjectService creates a new project service.
func NewProjectService(tracker driven.IssueTracker) *ProjectService {
	return &ProjectService{tracker: tracker}
}

// List returns every visible project, following the listing's pages.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	if s.tracker == nil {
		return nil, domain.ErrNotImplemented
	}

	projects := []domain.Project{}
	startAt := 0
	for range maxProjectPages {
		page, err := s.tracker.Projects(ctx, startAt)
		if err != nil {
			return nil, err
		}
		projects = append(projects, page.Projects...)
		logger.Debug("Projects page at %d: %d projects, last: %t", startAt, len(page.Projects), page.IsLast)

		if page.IsLast || len(page.Projects) == 0 {
			break
		}
		startAt += len(page.Projects)
	}
	return projects, nil
}
