package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/jiri/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for jiri resources.
	uriScheme = "jiri://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "projects",
		Name:        "projects",
		Description: "All projects visible to the user",
		MIMEType:    "application/json",
	}, s.handleProjectsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "issues/{key}",
		Name:        "issue",
		Description: "A single issue as plain text",
		MIMEType:    "text/plain",
	}, s.handleIssueResource)
}

// handleProjectsResource returns the project list.
func (s *Server) handleProjectsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Projects == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	projects, err := s.ports.Projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	infos := make([]ProjectOutput, len(projects))
	for i, p := range projects {
		infos[i] = ProjectOutput{Key: p.Key, Name: p.Name}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling projects: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleIssueResource returns one issue rendered as text.
func (s *Server) handleIssueResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Issues == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	key := extractIssueKey(req.Params.URI)
	if key == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	d, err := s.ports.Issues.View(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("getting issue: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     issueText(d),
		}},
	}, nil
}

// extractIssueKey extracts the key from a URI like jiri://issues/{key}.
func extractIssueKey(uri string) string {
	const prefix = uriScheme + "issues/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	key := strings.TrimPrefix(uri, prefix)
	if strings.Contains(key, "/") {
		return ""
	}
	return key
}

func issueText(d *domain.IssueDetail) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", d.Key, d.Summary)
	fmt.Fprintf(&sb, "Type: %s\nStatus: %s\nPriority: %s\n", d.Type, d.Status, d.Priority)
	fmt.Fprintf(&sb, "Assignee: %s\nReporter: %s\n", d.Assignee, d.Reporter)
	fmt.Fprintf(&sb, "Created: %s\nUpdated: %s\n", d.Created, d.Updated)
	if d.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(strings.TrimRight(d.Description, "\n"))
		sb.WriteString("\n")
	}
	for _, c := range d.Comments {
		fmt.Fprintf(&sb, "\n%s (%s):\n%s\n", c.Author, c.Created, strings.TrimRight(c.Body, "\n"))
	}
	return sb.String()
}
