package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:     "comment <KEY> <message...>",
	Short:   "Add a comment to an issue",
	Example: `  jiri comment ABC-1 "Deployed to staging"`,
	Args:    cobra.MinimumNArgs(2),
	RunE:    runComment,
}

func init() {
	rootCmd.AddCommand(commentCmd)
}

func runComment(cmd *cobra.Command, args []string) error {
	key := args[0]
	message := strings.Join(args[1:], " ")

	svc, err := loadServices(cmd.Context())
	if err != nil {
		return err
	}
	if err := svc.Issues.Comment(cmd.Context(), key, message); err != nil {
		return fmt.Errorf("commenting on %s: %w", key, err)
	}

	cmd.Printf("Comment added to %s\n", key)
	return nil
}
