package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jiri/internal/adapters/driving/render"
	"github.com/custodia-labs/jiri/internal/core/domain"
)

// Wrap widths for the issue view.
const (
	descriptionWidth = 76
	commentWidth     = 72
)

var viewCmd = &cobra.Command{
	Use:   "view <KEY>",
	Short: "Show an issue",
	Long: `Shows an issue's summary, people, dates, description and its most
recent comments. With --json or --yaml the issue is printed as returned by
the API.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	svc, err := loadServices(cmd.Context())
	if err != nil {
		return err
	}
	r, err := newRenderer(cmd, svc.Config)
	if err != nil {
		return err
	}

	detail, err := svc.Issues.View(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("viewing %s: %w", args[0], err)
	}

	if r.Format.Structured() {
		return r.Value(cmd.OutOrStdout(), detail.Raw)
	}
	printIssue(cmd, detail)
	return nil
}

func printIssue(cmd *cobra.Command, d *domain.IssueDetail) {
	cmd.Printf("  %s — %s\n", d.Key, d.Summary)
	cmd.Println()
	cmd.Printf("  Type:       %s\n", d.Type)
	cmd.Printf("  Status:     %s\n", d.Status)
	cmd.Printf("  Priority:   %s\n", d.Priority)
	cmd.Printf("  Assignee:   %s\n", d.Assignee)
	cmd.Printf("  Reporter:   %s\n", d.Reporter)
	cmd.Printf("  Created:    %s\n", d.Created)
	cmd.Printf("  Updated:    %s\n", d.Updated)

	if strings.TrimSpace(d.Description) != "" {
		cmd.Println()
		cmd.Println("  Description:")
		for _, line := range render.Wrap(d.Description, descriptionWidth, "    ") {
			cmd.Println(line)
		}
	}

	if len(d.Comments) == 0 {
		return
	}
	cmd.Println()
	cmd.Printf("  Comments (%d total, showing last %d):\n", d.TotalComments, len(d.Comments))
	for _, c := range d.Comments {
		cmd.Println()
		cmd.Printf("    %s (%s)\n", c.Author, c.Created)
		for _, line := range render.Wrap(c.Body, commentWidth, "      ") {
			cmd.Println(line)
		}
	}
}
