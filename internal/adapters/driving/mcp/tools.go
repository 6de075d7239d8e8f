package mcp

import (
	"context"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/jiri/internal/core/domain"
	"github.com/custodia-labs/jiri/internal/core/services"
	"github.com/custodia-labs/jiri/internal/normalisers/fieldvalue"
)

// defaultToolLimit caps search_issues when no limit is given.
const defaultToolLimit = 50

// SearchInput is the input schema for the search_issues tool.
type SearchInput struct {
	JQL    string   `json:"jql" jsonschema:"the JQL query, e.g. project = ABC AND status = Open"`
	Fields []string `json:"fields,omitempty" jsonschema:"field ids or display names to return (default key and summary)"`
	Limit  int      `json:"limit,omitempty" jsonschema:"maximum number of issues to return (default 50)"`
}

// SearchOutput is the output schema for the search_issues tool.
type SearchOutput struct {
	Issues        []IssueRowOutput `json:"issues"`
	Count         int              `json:"count"`
	MoreAvailable bool             `json:"more_available"`
}

// IssueRowOutput is one search result with normalised field values.
type IssueRowOutput struct {
	Key    string            `json:"key"`
	Fields map[string]string `json:"fields"`
}

// ViewInput is the input schema for the view_issue tool.
type ViewInput struct {
	Key string `json:"key" jsonschema:"the issue key, e.g. ABC-123"`
}

// IssueOutput is the output schema for the view_issue tool.
type IssueOutput struct {
	Key           string          `json:"key"`
	Summary       string          `json:"summary"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	Priority      string          `json:"priority"`
	Assignee      string          `json:"assignee"`
	Reporter      string          `json:"reporter"`
	Created       string          `json:"created"`
	Updated       string          `json:"updated"`
	Description   string          `json:"description,omitempty"`
	Comments      []CommentOutput `json:"comments,omitempty"`
	TotalComments int             `json:"total_comments"`
}

// CommentOutput is one comment of an issue.
type CommentOutput struct {
	Author  string `json:"author"`
	Created string `json:"created"`
	Body    string `json:"body"`
}

// ListProjectsInput is the (empty) input schema for the list_projects tool.
type ListProjectsInput struct{}

// ProjectsOutput is the output schema for the list_projects tool.
type ProjectsOutput struct {
	Projects []ProjectOutput `json:"projects"`
	Count    int             `json:"count"`
}

// ProjectOutput is one project.
type ProjectOutput struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// ListFieldsInput is the input schema for the list_fields tool.
type ListFieldsInput struct {
	JQL string `json:"jql,omitempty" jsonschema:"when set, list only fields present on the first matching issue"`
}

// FieldsOutput is the output schema for the list_fields tool.
type FieldsOutput struct {
	Fields []domain.Field `json:"fields"`
	Count  int            `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_issues",
		Description: "Search issues with a JQL query",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "view_issue",
		Description: "Show one issue with its description and recent comments",
	}, s.handleViewIssue)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_projects",
		Description: "List all projects visible to the user",
	}, s.handleListProjects)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_fields",
		Description: "List issue fields with their ids and display names",
	}, s.handleListFields)
}

// handleSearch handles the search_issues tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if input.JQL == "" {
		return nil, SearchOutput{}, fmt.Errorf("%w: jql is required", domain.ErrInvalidInput)
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultToolLimit
	}

	plan := domain.DefaultFieldPlan()
	if s.ports.Fields != nil {
		var err error
		if plan, err = s.ports.Fields.Resolve(ctx, input.Fields); err != nil {
			return nil, SearchOutput{}, err
		}
	} else if len(input.Fields) > 0 {
		plan = services.ResolveFields(input.Fields, nil)
	}

	result, err := s.ports.Search.Collect(ctx, input.JQL, plan.QueryFields, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Issues:        make([]IssueRowOutput, len(result.Issues)),
		Count:         len(result.Issues),
		MoreAvailable: result.MoreAvailable,
	}
	for i := range result.Issues {
		issue := &result.Issues[i]
		fields := make(map[string]string, plan.Len())
		for _, key := range plan.Keys {
			fields[key] = fieldvalue.FromIssue(issue, key)
		}
		output.Issues[i] = IssueRowOutput{Key: issue.Key, Fields: fields}
	}

	return nil, output, nil
}

// handleViewIssue handles the view_issue tool invocation.
func (s *Server) handleViewIssue(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ViewInput,
) (*mcp.CallToolResult, IssueOutput, error) {
	if s.ports.Issues == nil {
		return nil, IssueOutput{}, ErrServiceNotConfigured
	}
	if input.Key == "" {
		return nil, IssueOutput{}, fmt.Errorf("%w: key is required", domain.ErrInvalidInput)
	}

	d, err := s.ports.Issues.View(ctx, input.Key)
	if err != nil {
		return nil, IssueOutput{}, err
	}

	output := IssueOutput{
		Key:           d.Key,
		Summary:       d.Summary,
		Type:          d.Type,
		Status:        d.Status,
		Priority:      d.Priority,
		Assignee:      d.Assignee,
		Reporter:      d.Reporter,
		Created:       d.Created,
		Updated:       d.Updated,
		Description:   d.Description,
		TotalComments: d.TotalComments,
	}
	for _, c := range d.Comments {
		output.Comments = append(output.Comments, CommentOutput(c))
	}

	return nil, output, nil
}

// handleListProjects handles the list_projects tool invocation.
func (s *Server) handleListProjects(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListProjectsInput,
) (*mcp.CallToolResult, ProjectsOutput, error) {
	if s.ports.Projects == nil {
		return nil, ProjectsOutput{}, ErrServiceNotConfigured
	}

	projects, err := s.ports.Projects.List(ctx)
	if err != nil {
		return nil, ProjectsOutput{}, err
	}

	output := ProjectsOutput{
		Projects: make([]ProjectOutput, len(projects)),
		Count:    len(projects),
	}
	for i, p := range projects {
		output.Projects[i] = ProjectOutput{Key: p.Key, Name: p.Name}
	}
	return nil, output, nil
}

// handleListFields handles the list_fields tool invocation.
func (s *Server) handleListFields(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListFieldsInput,
) (*mcp.CallToolResult, FieldsOutput, error) {
	if input.JQL != "" {
		fields, err := s.ports.Search.FieldsOf(ctx, input.JQL)
		if err != nil {
			return nil, FieldsOutput{}, err
		}
		return nil, FieldsOutput{Fields: fields, Count: len(fields)}, nil
	}

	if s.ports.Fields == nil {
		return nil, FieldsOutput{}, ErrServiceNotConfigured
	}
	catalog, err := s.ports.Fields.Catalog(ctx)
	if err != nil {
		return nil, FieldsOutput{}, err
	}

	ids := make([]string, 0, len(catalog.IDToName))
	for id := range catalog.IDToName {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fields := make([]domain.Field, 0, len(ids))
	for _, id := range services.SortFieldsForDisplay(ids, catalog) {
		name, _ := catalog.Name(id)
		fields = append(fields, domain.Field{ID: id, Name: name, Custom: services.IsCustomField(id)})
	}
	return nil, FieldsOutput{Fields: fields, Count: len(fields)}, nil
}
