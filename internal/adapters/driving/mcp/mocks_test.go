package mcp

import (
	"context"

	"github.com/custodia-labs/jiri/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	result *domain.SearchResult
	fields []domain.Field
	err    error

	gotJQL    string
	gotFields []string
	gotLimit  int
}

func (m *mockSearchService) Collect(
	_ context.Context,
	jql string,
	fields []string,
	limit int,
) (*domain.SearchResult, error) {
	m.gotJQL, m.gotFields, m.gotLimit = jql, fields, limit
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return &domain.SearchResult{Issues: []domain.Issue{}}, nil
	}
	return m.result, nil
}

func (m *mockSearchService) FieldsOf(_ context.Context, jql string) ([]domain.Field, error) {
	m.gotJQL = jql
	return m.fields, m.err
}

// mockFieldService is a mock implementation of driving.FieldService.
type mockFieldService struct {
	catalog *domain.FieldCatalog
	err     error
}

func (m *mockFieldService) Catalog(_ context.Context) (*domain.FieldCatalog, error) {
	return m.catalog, m.err
}

func (m *mockFieldService) Resolve(_ context.Context, tokens []string) (domain.FieldPlan, error) {
	if m.err != nil {
		return domain.FieldPlan{}, m.err
	}
	if len(tokens) == 0 {
		return domain.DefaultFieldPlan(), nil
	}
	var plan domain.FieldPlan
	for _, t := range tokens {
		id := t
		if known, ok := m.catalog.ID(t); ok {
			id = known
		}
		plan.Add(id, t, id)
	}
	return plan, nil
}

func (m *mockFieldService) Suggest(_ context.Context, _ string) ([]string, error) {
	return nil, m.err
}

// mockIssueService is a mock implementation of driving.IssueService.
type mockIssueService struct {
	detail *domain.IssueDetail
	err    error
}

func (m *mockIssueService) View(_ context.Context, _ string) (*domain.IssueDetail, error) {
	return m.detail, m.err
}

func (m *mockIssueService) Transitions(_ context.Context, _ string) ([]domain.Transition, error) {
	return nil, m.err
}

func (m *mockIssueService) Transition(_ context.Context, _, _ string) (*domain.Transition, error) {
	return nil, m.err
}

func (m *mockIssueService) Apply(_ context.Context, _ string, _ domain.Transition) error {
	return m.err
}

func (m *mockIssueService) Create(_ context.Context, _ domain.IssueInput) (*domain.CreatedIssue, error) {
	return nil, m.err
}

func (m *mockIssueService) Comment(_ context.Context, _, _ string) error {
	return m.err
}

// mockProjectService is a mock implementation of driving.ProjectService.
type mockProjectService struct {
	projects []domain.Project
	err      error
}

func (m *mockProjectService) List(_ context.Context) ([]domain.Project, error) {
	return m.projects, m.err
}
