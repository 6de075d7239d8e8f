package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jiri/internal/core/domain"
)

const defaultIssueType = "Task"

var (
	createProject     string
	createSummary     string
	createType        string
	createDescription string
)

var errProjectRequired = fmt.Errorf(
	"%w: project key is required. Use --project or set default_project in config", domain.ErrConfiguration)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an issue",
	Example: `  jiri create -p ABC -s "Fix the login page"
  jiri create -s "Write docs" -t Story -d "Cover the config commands"`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createProject, "project", "p", "", "project key (default general.default_project)")
	createCmd.Flags().StringVarP(&createSummary, "summary", "s", "", "issue summary (required)")
	createCmd.Flags().StringVarP(&createType, "type", "t", defaultIssueType, "issue type")
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "plain-text description")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, _ []string) error {
	if strings.TrimSpace(createSummary) == "" {
		return errors.New("summary is required. Use --summary")
	}

	svc, err := loadServices(cmd.Context())
	if err != nil {
		return err
	}

	project := createProject
	if project == "" {
		project = svc.Config.DefaultProject
	}
	if project == "" {
		return errProjectRequired
	}

	created, err := svc.Issues.Create(cmd.Context(), domain.IssueInput{
		ProjectKey:  project,
		Summary:     createSummary,
		IssueType:   createType,
		Description: createDescription,
	})
	if err != nil {
		return fmt.Errorf("creating issue: %w", err)
	}

	r, err := newRenderer(cmd, svc.Config)
	if err != nil {
		return err
	}
	if r.Format.Structured() {
		return r.Value(cmd.OutOrStdout(), created)
	}

	cmd.Printf("Created issue: %s\n", created.Key)
	if created.Self != "" {
		cmd.Printf("  %s\n", created.Self)
	}
	return nil
}
