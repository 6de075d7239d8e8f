package driving

import (
	"context"

	"github.com/custodia-labs/jiri/internal/core/domain"
)

// IssueService provides single-issue operations.
type IssueService interface {
	// View fetches an issue and prepares it for display.
	View(ctx context.Context, key string) (*domain.IssueDetail, error)

	// Transitions lists the transitions available on an issue.
	Transitions(ctx context.Context, key string) ([]domain.Transition, error)

	// Transition applies the transition whose name matches status.
	// Returns the applied transition.
	Transition(ctx context.Context, key, status string) (*domain.Transition, error)

	// Apply performs the given transition on an issue by its ID.
	Apply(ctx context.Context, key string, t domain.Transition) error

	// Create creates a new issue.
	Create(ctx context.Context, input domain.IssueInput) (*domain.CreatedIssue, error)

	// Comment adds a plain-text comment to an issue.
	Comment(ctx context.Context, key, text string) error
}

// ProjectService lists projects.
type ProjectService interface {
	// List returns every project visible to the user.
	List(ctx context.Context) ([]domain.Project, error)
}
