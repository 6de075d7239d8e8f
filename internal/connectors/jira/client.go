package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/jiri/internal/core/domain"
	"github.com/custodia-labs/jiri/internal/core/ports/driven"
	"github.com/custodia-labs/jiri/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.IssueTracker = (*Client)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// ProjectPageSize is the page size used for the project listing.
	ProjectPageSize = 50

	apiPrefix = "/rest/api/3"
)

// Client talks to a single Jira site.
type Client struct {
	http        *http.Client
	baseURL     string
	username    string
	token       string
	method      domain.AuthMethod
	rateLimiter *RateLimiter
}

// NewClient creates a client for the configured site.
//
// Basic auth sends the username and token on every request. Bearer auth
// uses an oauth2 static token source so the token is attached by the
// transport.
func NewClient(ctx context.Context, cfg *domain.Config) (*Client, error) {
	c, err := newClient(cfg)
	if err != nil {
		return nil, err
	}

	if c.method == domain.AuthMethodBearer {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: c.token},
		)
		tc := oauth2.NewClient(ctx, ts)
		tc.Timeout = DefaultTimeout
		c.http = tc
	} else {
		c.http = &http.Client{Timeout: DefaultTimeout}
	}
	return c, nil
}

// NewClientWithHTTPClient creates a client that sends requests through
// httpClient. Basic credentials are still applied per request.
func NewClientWithHTTPClient(cfg *domain.Config, httpClient *http.Client) (*Client, error) {
	c, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	c.http = httpClient
	return c, nil
}

func newClient(cfg *domain.Config) (*Client, error) {
	if cfg == nil || strings.TrimSpace(cfg.Site) == "" {
		return nil, ErrSiteRequired
	}
	if cfg.Token == "" {
		return nil, ErrTokenRequired
	}
	return &Client{
		baseURL:     normaliseSite(cfg.Site),
		username:    cfg.Username,
		token:       cfg.Token,
		method:      cfg.Method(),
		rateLimiter: NewRateLimiter(),
	}, nil
}

// normaliseSite trims trailing slashes and defaults the scheme to https.
func normaliseSite(site string) string {
	site = strings.TrimRight(strings.TrimSpace(site), "/")
	if !strings.Contains(site, "://") {
		site = "https://" + site
	}
	return site
}

// BaseURL returns the site URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends one request and decodes a JSON reply into out.
// A nil body sends no Content-Type; a nil out discards the reply.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.method == domain.AuthMethodBasic {
		req.SetBasicAuth(c.username, c.token)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return &domain.NetworkError{Method: method, URL: target, Err: err}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.NetworkError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()
	logger.Request(method, target, resp.StatusCode, time.Since(start))

	if err := c.rateLimiter.CheckRateLimit(resp); err != nil {
		return err
	}
	if limit := c.rateLimiter.Limit(); limit >= 0 {
		logger.Debug("Rate limit: %d of %d remaining", c.rateLimiter.Remaining(), limit)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.NetworkError{Method: method, URL: target, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.UpstreamError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func issuePath(key string, parts ...string) string {
	p := "/issue/" + url.PathEscape(key)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

// Fields returns the full field directory.
func (c *Client) Fields(ctx context.Context) ([]domain.Field, error) {
	var fields []domain.Field
	if err := c.do(ctx, http.MethodGet, "/field", nil, nil, &fields); err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	return fields, nil
}

type searchRequest struct {
	JQL           string   `json:"jql"`
	Fields        []string `json:"fields"`
	MaxResults    int      `json:"maxResults"`
	NextPageToken string   `json:"nextPageToken,omitempty"`
}

type searchResponse struct {
	Issues        []domain.Issue `json:"issues"`
	NextPageToken string         `json:"nextPageToken"`
}

// SearchPage fetches one page of query results.
func (c *Client) SearchPage(ctx context.Context, req domain.SearchRequest) (*domain.SearchPage, error) {
	fields := req.Fields
	if fields == nil {
		fields = []string{}
	}
	body := searchRequest{
		JQL:           req.JQL,
		Fields:        fields,
		MaxResults:    req.MaxResults,
		NextPageToken: req.PageToken,
	}

	var resp searchResponse
	if err := c.do(ctx, http.MethodPost, "/search/jql", nil, body, &resp); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return &domain.SearchPage{Issues: resp.Issues, NextPageToken: resp.NextPageToken}, nil
}

type projectResponse struct {
	Values     []domain.Project `json:"values"`
	StartAt    int              `json:"startAt"`
	MaxResults int              `json:"maxResults"`
	IsLast     *bool            `json:"isLast"`
}

// Projects fetches one page of the project listing.
// A reply without isLast is treated as the last page.
func (c *Client) Projects(ctx context.Context, startAt int) (*domain.ProjectPage, error) {
	query := url.Values{
		"startAt":    {strconv.Itoa(startAt)},
		"maxResults": {strconv.Itoa(ProjectPageSize)},
	}

	var resp projectResponse
	if err := c.do(ctx, http.MethodGet, "/project/search", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return &domain.ProjectPage{
		Projects:   resp.Values,
		StartAt:    resp.StartAt,
		MaxResults: resp.MaxResults,
		IsLast:     resp.IsLast == nil || *resp.IsLast,
	}, nil
}

// Issue fetches a single issue with all of its fields.
func (c *Client) Issue(ctx context.Context, key string) (*domain.Issue, error) {
	var issue domain.Issue
	if err := c.do(ctx, http.MethodGet, issuePath(key), nil, nil, &issue); err != nil {
		return nil, fmt.Errorf("get issue %s: %w", key, err)
	}
	return &issue, nil
}

// Transitions lists the workflow transitions available on an issue.
func (c *Client) Transitions(ctx context.Context, key string) ([]domain.Transition, error) {
	var resp struct {
		Transitions []domain.Transition `json:"transitions"`
	}
	if err := c.do(ctx, http.MethodGet, issuePath(key, "transitions"), nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("list transitions for %s: %w", key, err)
	}
	return resp.Transitions, nil
}

type transitionRequest struct {
	Transition struct {
		ID string `json:"id"`
	} `json:"transition"`
}

// DoTransition applies the transition with the given id.
func (c *Client) DoTransition(ctx context.Context, key, transitionID string) error {
	var body transitionRequest
	body.Transition.ID = transitionID
	if err := c.do(ctx, http.MethodPost, issuePath(key, "transitions"), nil, body, nil); err != nil {
		return fmt.Errorf("transition %s: %w", key, err)
	}
	return nil
}

type keyRef struct {
	Key string `json:"key"`
}

type nameRef struct {
	Name string `json:"name"`
}

type createFields struct {
	Project     keyRef      `json:"project"`
	Summary     string      `json:"summary"`
	IssueType   nameRef     `json:"issuetype"`
	Description domain.Node `json:"description,omitempty"`
}

// CreateIssue creates a new issue. An empty description is omitted.
func (c *Client) CreateIssue(ctx context.Context, input domain.IssueInput) (*domain.CreatedIssue, error) {
	fields := createFields{
		Project:   keyRef{Key: input.ProjectKey},
		Summary:   input.Summary,
		IssueType: nameRef{Name: input.IssueType},
	}
	if input.Description != "" {
		fields.Description = domain.DocumentFromText(input.Description)
	}

	var created domain.CreatedIssue
	body := struct {
		Fields createFields `json:"fields"`
	}{fields}
	if err := c.do(ctx, http.MethodPost, "/issue", nil, body, &created); err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}
	return &created, nil
}

// AddComment adds a comment with the given document body.
func (c *Client) AddComment(ctx context.Context, key string, body domain.Node) error {
	req := struct {
		Body domain.Node `json:"body"`
	}{body}
	if err := c.do(ctx, http.MethodPost, issuePath(key, "comment"), nil, req, nil); err != nil {
		return fmt.Errorf("comment on %s: %w", key, err)
	}
	return nil
}
