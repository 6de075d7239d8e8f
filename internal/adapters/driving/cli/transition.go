package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jiri/internal/adapters/driving/render"
	"github.com/custodia-labs/jiri/internal/adapters/driving/tui/picker"
	"github.com/custodia-labs/jiri/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/jiri/internal/core/domain"
)

var transitionPick bool

// pickTransition asks the user to choose a transition. It returns -1 when
// the prompt is cancelled.
var pickTransition = func(title string, transitions []domain.Transition) (int, error) {
	items := make([]picker.Item, len(transitions))
	for i, t := range transitions {
		items[i] = picker.Item{Label: t.Name, Detail: "[" + t.ID + "]"}
	}
	return picker.Run(title, items, styles.DefaultStyles())
}

// stdoutIsTerminal reports whether the picker can be shown.
var stdoutIsTerminal = func(cmd *cobra.Command) bool {
	return render.IsTerminal(cmd.OutOrStdout())
}

var transitionCmd = &cobra.Command{
	Use:   "transition <KEY> [status]",
	Short: "List or apply workflow transitions",
	Long: `Without a status, lists the transitions available on the issue.

With a status, applies the transition whose name matches it, ignoring case.
An exact name wins; otherwise the first name starting with the status is used.`,
	Example: `  jiri transition ABC-1
  jiri transition ABC-1 "in progress"
  jiri transition ABC-1 done
  jiri transition ABC-1 --pick`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTransition,
}

func init() {
	transitionCmd.Flags().BoolVar(&transitionPick, "pick", false, "choose the transition interactively")
	rootCmd.AddCommand(transitionCmd)
}

func runTransition(cmd *cobra.Command, args []string) error {
	key := args[0]
	status := strings.TrimSpace(strings.Join(args[1:], " "))

	svc, err := loadServices(cmd.Context())
	if err != nil {
		return err
	}

	if status != "" {
		return applyTransition(cmd, svc, key, status)
	}

	transitions, err := svc.Issues.Transitions(cmd.Context(), key)
	if err != nil {
		return fmt.Errorf("listing transitions for %s: %w", key, err)
	}

	if transitionPick {
		if !stdoutIsTerminal(cmd) {
			return errors.New("--pick needs an interactive terminal")
		}
		if len(transitions) == 0 {
			return fmt.Errorf("no transitions available for %s", key)
		}
		choice, err := pickTransition(fmt.Sprintf("Transition %s to", key), transitions)
		if err != nil {
			return err
		}
		if choice < 0 {
			cmd.Println("Cancelled.")
			return nil
		}
		chosen := transitions[choice]
		if err := svc.Issues.Apply(cmd.Context(), key, chosen); err != nil {
			return fmt.Errorf("transitioning %s: %w", key, err)
		}
		cmd.Printf("Transitioned %s → %s\n", key, chosen.Name)
		return nil
	}

	r, err := newRenderer(cmd, svc.Config)
	if err != nil {
		return err
	}
	if r.Format.Structured() {
		return r.Value(cmd.OutOrStdout(), transitions)
	}

	cmd.Printf("Available transitions for %s:\n", key)
	for _, t := range transitions {
		cmd.Printf("  [%s] %s\n", t.ID, t.Name)
	}
	return nil
}

func applyTransition(cmd *cobra.Command, svc *Services, key, status string) error {
	t, err := svc.Issues.Transition(cmd.Context(), key, status)
	if err != nil {
		if errors.Is(err, domain.ErrNoMatchingTransition) {
			return err
		}
		return fmt.Errorf("transitioning %s: %w", key, err)
	}
	cmd.Printf("Transitioned %s → %s\n", key, t.Name)
	return nil
}
