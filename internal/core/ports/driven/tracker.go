package driven

import (
	"context"

	"github.com/custodia-labs/jiri/internal/core/domain"
)

// IssueTracker is the upstream issue-tracking service.
// Implementations translate each call into one API round trip and report
// failures as *domain.NetworkError or *domain.UpstreamError.
type IssueTracker interface {
	// Fields returns the full field directory.
	Fields(ctx context.Context) ([]domain.Field, error)

	// SearchPage fetches one page of query results.
	// An empty NextPageToken in the reply means there are no further pages.
	SearchPage(ctx context.Context, req domain.SearchRequest) (*domain.SearchPage, error)

	// Projects fetches one page of the project listing starting at startAt.
	Projects(ctx context.Context, startAt int) (*domain.ProjectPage, error)

	// Issue fetches a single issue with all of its fields.
	Issue(ctx context.Context, key string) (*domain.Issue, error)

	// Transitions lists the workflow transitions available on an issue.
	Transitions(ctx context.Context, key string) ([]domain.Transition, error)

	// DoTransition applies the transition with the given id.
	DoTransition(ctx context.Context, key, transitionID string) error

	// CreateIssue creates a new issue. Description is sent as a document.
	CreateIssue(ctx context.Context, input domain.IssueInput) (*domain.CreatedIssue, error)

	// AddComment adds a comment with the given document body.
	AddComment(ctx context.Context, key string, body domain.Node) error
}
