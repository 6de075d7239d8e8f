package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/jiri/internal/core/domain"
	"github.com/custodia-labs/jiri/internal/core/ports/driven"
)

// Ensure mockTracker implements the interface.
var _ driven.IssueTracker = (*mockTracker)(nil)

// mockTracker implements driven.IssueTracker for testing.
type mockTracker struct {
	fields     []domain.Field
	fieldsErr  error
	fieldCalls int

	pages     []domain.SearchPage
	searchErr map[int]error
	requests  []domain.SearchRequest

	projectPages []domain.ProjectPage
	projectsErr  error
	projectCalls []int

	issue    *domain.Issue
	issueErr error

	transitions    []domain.Transition
	transitionsErr error
	applied        []string
	applyErr       error

	created   []domain.IssueInput
	createErr error

	comments   map[string][]domain.Node
	commentErr error
}

func (m *mockTracker) Fields(_ context.Context) ([]domain.Field, error) {
	m.fieldCalls++
	if m.fieldsErr != nil {
		return nil, m.fieldsErr
	}
	return m.fields, nil
}

func (m *mockTracker) SearchPage(_ context.Context, req domain.SearchRequest) (*domain.SearchPage, error) {
	call := len(m.requests)
	m.requests = append(m.requests, req)
	if err := m.searchErr[call]; err != nil {
		return nil, err
	}
	if call >= len(m.pages) {
		return &domain.SearchPage{}, nil
	}
	page := m.pages[call]
	return &page, nil
}

func (m *mockTracker) Projects(_ context.Context, startAt int) (*domain.ProjectPage, error) {
	call := len(m.projectCalls)
	m.projectCalls = append(m.projectCalls, startAt)
	if m.projectsErr != nil {
		return nil, m.projectsErr
	}
	if call >= len(m.projectPages) {
		return &domain.ProjectPage{IsLast: true}, nil
	}
	page := m.projectPages[call]
	return &page, nil
}

func (m *mockTracker) Issue(_ context.Context, key string) (*domain.Issue, error) {
	if m.issueErr != nil {
		return nil, m.issueErr
	}
	if m.issue == nil {
		return nil, &domain.UpstreamError{StatusCode: 404, Body: "Issue does not exist: " + key}
	}
	return m.issue, nil
}

func (m *mockTracker) Transitions(_ context.Context, _ string) ([]domain.Transition, error) {
	return m.transitions, m.transitionsErr
}

func (m *mockTracker) DoTransition(_ context.Context, key, id string) error {
	if m.applyErr != nil {
		return m.applyErr
	}
	m.applied = append(m.applied, key+":"+id)
	return nil
}

func (m *mockTracker) CreateIssue(_ context.Context, input domain.IssueInput) (*domain.CreatedIssue, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, input)
	n := len(m.created)
	return &domain.CreatedIssue{
		ID:   fmt.Sprintf("1000%d", n),
		Key:  fmt.Sprintf("%s-%d", input.ProjectKey, n),
		Self: fmt.Sprintf("https://example.atlassian.net/rest/api/3/issue/1000%d", n),
	}, nil
}

func (m *mockTracker) AddComment(_ context.Context, key string, body domain.Node) error {
	if m.commentErr != nil {
		return m.commentErr
	}
	if m.comments == nil {
		m.comments = make(map[string][]domain.Node)
	}
	m.comments[key] = append(m.comments[key], body)
	return nil
}

// issues builds n issues keyed from start.
func issues(start, n int) []domain.Issue {
	out := make([]domain.Issue, n)
	for i := range out {
		out[i] = domain.Issue{
			ID:     fmt.Sprintf("%d", 10000+start+i),
			Key:    fmt.Sprintf("PROJ-%d", start+i),
			Fields: map[string]any{"summary": fmt.Sprintf("issue %d", start+i)},
		}
	}
	return out
}

func sampleFields() []domain.Field {
	return []domain.Field{
		{ID: "summary", Name: "Summary"},
		{ID: "status", Name: "Status"},
		{ID: "assignee", Name: "Assignee"},
		{ID: "created", Name: "Created"},
		{ID: "customfield_10016", Name: "Story Points", Custom: true},
		{ID: "customfield_10020", Name: "Sprint", Custom: true},
	}
}
