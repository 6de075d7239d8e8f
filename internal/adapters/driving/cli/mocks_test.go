package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/jiri/internal/core/domain"
	"github.com/custodia-labs/jiri/internal/core/services"
)

// mockFieldService resolves against a fixed catalog.
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
	return services.ResolveFields(tokens, m.catalog), nil
}

func (m *mockFieldService) Suggest(_ context.Context, token string) ([]string, error) {
	return services.SuggestFields(token, m.catalog, 3, 3), m.err
}

// mockSearchService records the last query.
type mockSearchService struct {
	result *domain.SearchResult
	fields []domain.Field
	err    error

	gotJQL    string
	gotFields []string
	gotLimit  int
}

func (m *mockSearchService) Collect(
	_ context.Context, jql string, fields []string, limit int,
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

// mockIssueService records mutations.
type mockIssueService struct {
	detail      *domain.IssueDetail
	transitions []domain.Transition
	created     *domain.CreatedIssue
	err         error

	applied  string
	gotInput domain.IssueInput
	comments map[string]string
}

func (m *mockIssueService) View(_ context.Context, _ string) (*domain.IssueDetail, error) {
	return m.detail, m.err
}

func (m *mockIssueService) Transitions(_ context.Context, _ string) ([]domain.Transition, error) {
	return m.transitions, m.err
}

func (m *mockIssueService) Transition(_ context.Context, key, status string) (*domain.Transition, error) {
	if m.err != nil {
		return nil, m.err
	}
	t, err := services.MatchTransition(m.transitions, status)
	if err != nil {
		return nil, err
	}
	m.applied = key + ":" + t.ID
	return t, nil
}

func (m *mockIssueService) Apply(_ context.Context, key string, t domain.Transition) error {
	if m.err != nil {
		return m.err
	}
	m.applied = key + ":" + t.ID
	return nil
}

func (m *mockIssueService) Create(_ context.Context, input domain.IssueInput) (*domain.CreatedIssue, error) {
	m.gotInput = input
	return m.created, m.err
}

func (m *mockIssueService) Comment(_ context.Context, key, text string) error {
	if m.err != nil {
		return m.err
	}
	if m.comments == nil {
		m.comments = make(map[string]string)
	}
	m.comments[key] = text
	return nil
}

// mockProjectService returns a fixed list.
type mockProjectService struct {
	projects []domain.Project
	err      error
}

func (m *mockProjectService) List(_ context.Context) ([]domain.Project, error) {
	return m.projects, m.err
}

// testEnv holds the mocks behind loadServices.
type testEnv struct {
	cfg      *domain.Config
	fields   *mockFieldService
	search   *mockSearchService
	issues   *mockIssueService
	projects *mockProjectService
}

func testFields() []domain.Field {
	return []domain.Field{
		{ID: "summary", Name: "Summary"},
		{ID: "status", Name: "Status"},
		{ID: "assignee", Name: "Assignee"},
		{ID: "customfield_10016", Name: "Story Points", Custom: true},
	}
}

// setupTestServices replaces loadServices with mocks for the duration of t.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		cfg:      &domain.Config{Site: "https://example.atlassian.net", Token: "tok", Username: "me"},
		fields:   &mockFieldService{catalog: domain.NewFieldCatalog(testFields())},
		search:   &mockSearchService{},
		issues:   &mockIssueService{},
		projects: &mockProjectService{},
	}

	old := loadServices
	loadServices = func(context.Context) (*Services, error) {
		return &Services{
			Config:   env.cfg,
			Fields:   env.fields,
			Search:   env.search,
			Issues:   env.issues,
			Projects: env.projects,
		}, nil
	}
	t.Cleanup(func() {
		loadServices = old
		resetFlags()
	})
	return env
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags()
	}()

	err := Execute()
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag to its default so tests do not leak state.
func resetFlags() {
	var reset func(c *cobra.Command)
	reset = func(c *cobra.Command) {
		visit := func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
		c.Flags().VisitAll(visit)
		c.PersistentFlags().VisitAll(visit)
		for _, sub := range c.Commands() {
			reset(sub)
		}
	}
	reset(rootCmd)
}
