package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List visible projects",
	Args:  cobra.NoArgs,
	RunE:  runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices(cmd.Context())
	if err != nil {
		return err
	}
	r, err := newRenderer(cmd, svc.Config)
	if err != nil {
		return err
	}

	projects, err := svc.Projects.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing projects: %w", err)
	}

	rows := make([][]string, len(projects))
	for i, p := range projects {
		rows[i] = []string{p.Key, p.Name}
	}
	return r.Table(cmd.OutOrStdout(), []string{"KEY", "NAME"}, rows)
}
