package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jiri/internal/core/domain"
)

func testCatalog() *domain.FieldCatalog {
	return domain.NewFieldCatalog([]domain.Field{
		{ID: "summary", Name: "Summary"},
		{ID: "status", Name: "Status"},
		{ID: "customfield_10016", Name: "Story Points", Custom: true},
	})
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns normalised rows", func(t *testing.T) {
		mockSearch := &mockSearchService{
			result: &domain.SearchResult{
				Issues: []domain.Issue{{
					Key: "ABC-1",
					Fields: map[string]any{
						"summary":           "First",
						"status":            map[string]any{"name": "Open"},
						"customfield_10016": float64(3),
					},
				}},
				MoreAvailable: true,
			},
		}
		ports := &Ports{Search: mockSearch, Fields: &mockFieldService{catalog: testCatalog()}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SearchInput{JQL: "project = ABC", Fields: []string{"status", "Story Points"}, Limit: 5}
		_, output, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.True(t, output.MoreAvailable)
		assert.Equal(t, "ABC-1", output.Issues[0].Key)
		assert.Equal(t, "Open", output.Issues[0].Fields["status"])
		assert.Equal(t, "3", output.Issues[0].Fields["customfield_10016"])
		assert.Equal(t, []string{"status", "customfield_10016"}, mockSearch.gotFields)
		assert.Equal(t, 5, mockSearch.gotLimit)
	})

	t.Run("default limit and fields", func(t *testing.T) {
		mockSearch := &mockSearchService{}
		server, err := NewServer(&Ports{Search: mockSearch})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{JQL: "x"})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.Equal(t, defaultToolLimit, mockSearch.gotLimit)
		assert.Equal(t, []string{"key", "summary"}, mockSearch.gotFields)
	})

	t.Run("requires jql", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockSearch := &mockSearchService{err: errors.New("search failed")}
		server, err := NewServer(&Ports{Search: mockSearch})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{JQL: "x"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleViewIssue(t *testing.T) {
	ctx := context.Background()

	t.Run("returns issue detail", func(t *testing.T) {
		issues := &mockIssueService{detail: &domain.IssueDetail{
			Key:           "ABC-1",
			Summary:       "First",
			Status:        "Open",
			Assignee:      "Unassigned",
			Comments:      []domain.Comment{{Author: "Ann", Created: "2024-01-01", Body: "hi\n"}},
			TotalComments: 7,
		}}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Issues: issues})
		require.NoError(t, err)

		_, output, err := server.handleViewIssue(ctx, nil, ViewInput{Key: "ABC-1"})

		require.NoError(t, err)
		assert.Equal(t, "First", output.Summary)
		assert.Equal(t, 7, output.TotalComments)
		require.Len(t, output.Comments, 1)
		assert.Equal(t, "Ann", output.Comments[0].Author)
	})

	t.Run("service not configured", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		_, _, err = server.handleViewIssue(ctx, nil, ViewInput{Key: "ABC-1"})

		assert.ErrorIs(t, err, ErrServiceNotConfigured)
	})

	t.Run("requires key", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Issues: &mockIssueService{}})
		require.NoError(t, err)

		_, _, err = server.handleViewIssue(ctx, nil, ViewInput{})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleListProjects(t *testing.T) {
	ctx := context.Background()

	projects := &mockProjectService{projects: []domain.Project{
		{Key: "ABC", Name: "Alpha"},
		{Key: "XYZ", Name: "Omega"},
	}}
	server, err := NewServer(&Ports{Search: &mockSearchService{}, Projects: projects})
	require.NoError(t, err)

	_, output, err := server.handleListProjects(ctx, nil, ListProjectsInput{})

	require.NoError(t, err)
	assert.Equal(t, 2, output.Count)
	assert.Equal(t, ProjectOutput{Key: "XYZ", Name: "Omega"}, output.Projects[1])
}

func TestServer_handleListFields(t *testing.T) {
	ctx := context.Background()

	t.Run("whole catalog with system fields first", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Search: &mockSearchService{},
			Fields: &mockFieldService{catalog: testCatalog()},
		})
		require.NoError(t, err)

		_, output, err := server.handleListFields(ctx, nil, ListFieldsInput{})

		require.NoError(t, err)
		require.Equal(t, 3, output.Count)
		assert.Equal(t, "status", output.Fields[0].ID)
		assert.Equal(t, "summary", output.Fields[1].ID)
		assert.Equal(t, "customfield_10016", output.Fields[2].ID)
		assert.True(t, output.Fields[2].Custom)
	})

	t.Run("fields of first match", func(t *testing.T) {
		search := &mockSearchService{fields: []domain.Field{{ID: "summary", Name: "Summary"}}}
		server, err := NewServer(&Ports{Search: search})
		require.NoError(t, err)

		_, output, err := server.handleListFields(ctx, nil, ListFieldsInput{JQL: "key = ABC-1"})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, "key = ABC-1", search.gotJQL)
	})

	t.Run("catalog without field service", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		_, _, err = server.handleListFields(ctx, nil, ListFieldsInput{})

		assert.ErrorIs(t, err, ErrServiceNotConfigured)
	})
}
