package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/jiri/internal/core/domain"
	"github.com/custodia-labs/jiri/internal/core/ports/driven"
	"github.com/custodia-labs/jiri/internal/core/ports/driving"
	"github.com/custodia-labs/jiri/internal/logger"
	"github.com/custodia-labs/jiri/internal/normalisers/adf"
)

// Ensure IssueService implements the interface.
var _ driving.IssueService = (*IssueService)(nil)

// RecentComments is the number of comments kept by View.
const RecentComments = 5

// Placeholders for missing issue attributes.
const (
	unknownValue   = "?"
	noSummary      = "(no summary)"
	unassignedUser = "Unassigned"
)

// IssueService provides single-issue operations.
type IssueService struct {
	tracker driven.IssueTracker
}

// NewIssueService creates a new issue service.
func NewIssueService(tracker driven.IssueTracker) *IssueService {
	return &IssueService{tracker: tracker}
}

// View fetches an issue and extracts its display attributes.
// Only the last RecentComments comments are kept, oldest first.
func (s *IssueService) View(ctx context.Context, key string) (*domain.IssueDetail, error) {
	if s.tracker == nil {
		return nil, domain.ErrNotImplemented
	}

	issue, err := s.tracker.Issue(ctx, key)
	if err != nil {
		return nil, err
	}
	return NewIssueDetail(issue), nil
}

// NewIssueDetail builds the display form of an issue.
func NewIssueDetail(issue *domain.Issue) *domain.IssueDetail {
	if issue == nil {
		issue = &domain.Issue{}
	}
	f := issue.Fields
	detail := &domain.IssueDetail{
		Key:         issue.Key,
		Summary:     stringOr(f["summary"], noSummary),
		Type:        nestedString(f, "issuetype", "name", unknownValue),
		Status:      nestedString(f, "status", "name", unknownValue),
		Priority:    nestedString(f, "priority", "name", unknownValue),
		Assignee:    nestedString(f, "assignee", "displayName", unassignedUser),
		Reporter:    nestedString(f, "reporter", "displayName", unknownValue),
		Created:     stringOr(f["created"], unknownValue),
		Updated:     stringOr(f["updated"], unknownValue),
		Description: richText(f["description"]),
		Comments:    []domain.Comment{},
		Raw:         issue,
	}
	if detail.Key == "" {
		detail.Key = unknownValue
	}

	var comments []any
	if c, ok := f["comment"].(map[string]any); ok {
		comments, _ = c["comments"].([]any)
	}
	detail.TotalComments = len(comments)
	if len(comments) > RecentComments {
		comments = comments[len(comments)-RecentComments:]
	}
	for _, c := range comments {
		obj, _ := c.(map[string]any)
		detail.Comments = append(detail.Comments, domain.Comment{
			Author:  nestedString(obj, "author", "displayName", unknownValue),
			Created: stringOr(obj["created"], unknownValue),
			Body:    richText(obj["body"]),
		})
	}
	return detail
}

// Transitions lists the transitions available on an issue.
func (s *IssueService) Transitions(ctx context.Context, key string) ([]domain.Transition, error) {
	if s.tracker == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.tracker.Transitions(ctx, key)
}

// Transition applies the first transition whose name equals status or
// starts with it, ignoring case. An exact match wins over a prefix match.
func (s *IssueService) Transition(ctx context.Context, key, status string) (*domain.Transition, error) {
	transitions, err := s.Transitions(ctx, key)
	if err != nil {
		return nil, err
	}

	t, err := MatchTransition(transitions, status)
	if err != nil {
		return nil, err
	}
	if err := s.Apply(ctx, key, *t); err != nil {
		return nil, err
	}
	return t, nil
}

// Apply performs t on the issue without matching by name.
func (s *IssueService) Apply(ctx context.Context, key string, t domain.Transition) error {
	if s.tracker == nil {
		return domain.ErrNotImplemented
	}
	logger.Debug("Applying transition %s (%s) to %s", t.ID, t.Name, key)
	return s.tracker.DoTransition(ctx, key, t.ID)
}

// MatchTransition finds the transition named by status.
// The error lists the available transition names.
func MatchTransition(transitions []domain.Transition, status string) (*domain.Transition, error) {
	target := strings.ToLower(status)
	prefix := -1
	for i := range transitions {
		name := strings.ToLower(transitions[i].Name)
		if name == target {
			return &transitions[i], nil
		}
		if prefix < 0 && strings.HasPrefix(name, target) {
			prefix = i
		}
	}
	if prefix >= 0 {
		return &transitions[prefix], nil
	}

	names := make([]string, len(transitions))
	for i, t := range transitions {
		names[i] = t.Name
	}
	return nil, fmt.Errorf("%w '%s'. Available: %s",
		domain.ErrNoMatchingTransition, status, strings.Join(names, ", "))
}

// Create creates a new issue.
func (s *IssueService) Create(ctx context.Context, input domain.IssueInput) (*domain.CreatedIssue, error) {
	if s.tracker == nil {
		return nil, domain.ErrNotImplemented
	}
	if input.ProjectKey == "" {
		return nil, fmt.Errorf("%w: project key is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Summary) == "" {
		return nil, fmt.Errorf("%w: summary is required", domain.ErrInvalidInput)
	}
	return s.tracker.CreateIssue(ctx, input)
}

// Comment adds text as a single-paragraph comment.
func (s *IssueService) Comment(ctx context.Context, key, text string) error {
	if s.tracker == nil {
		return domain.ErrNotImplemented
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: comment is empty", domain.ErrInvalidInput)
	}
	return s.tracker.AddComment(ctx, key, adf.FromText(text))
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}

func nestedString(m map[string]any, key, sub, fallback string) string {
	obj, ok := m[key].(map[string]any)
	if !ok {
		return fallback
	}
	return stringOr(obj[sub], fallback)
}

// richText flattens a document. Older servers return plain strings.
func richText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return adf.ToText(v)
}
