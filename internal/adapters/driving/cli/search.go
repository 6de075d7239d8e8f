package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jiri/internal/core/domain"
	"github.com/custodia-labs/jiri/internal/core/ports/driving"
	"github.com/custodia-labs/jiri/internal/normalisers/fieldvalue"
)

// defaultSearchLimit caps search results when neither --limit nor
// search.limit is set.
const defaultSearchLimit = 1000

var (
	searchFields    string
	searchLimit     int
	searchGetFields bool
)

var errJQLRequired = errors.New(`JQL is required. Example: jiri search "assignee = currentUser()"`)

var searchCmd = &cobra.Command{
	Use:   "search <JQL>",
	Short: "Search issues with JQL",
	Long: `Runs a JQL query and prints one row per matching issue.

Columns are chosen with --fields, a comma-separated list of field ids or
display names (for example "key,summary,Story Points"). Use --get-fields
to list the fields present on the first matching issue.`,
	Example: `  jiri search "project = ABC AND status = Open"
  jiri search -f key,summary,status --limit 50 "assignee = currentUser()"
  jiri search --get-fields "key = ABC-1"`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchFields, "fields", "f", "", "comma-separated fields to show (default key,summary)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", defaultSearchLimit, "maximum number of issues to fetch")
	searchCmd.Flags().BoolVar(&searchGetFields, "get-fields", false, "list fields present on the first matching issue")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	jql := strings.TrimSpace(strings.Join(args, " "))
	if jql == "" {
		return errJQLRequired
	}

	ctx := cmd.Context()
	svc, err := loadServices(ctx)
	if err != nil {
		return err
	}
	r, err := newRenderer(cmd, svc.Config)
	if err != nil {
		return err
	}

	if searchGetFields {
		fields, err := svc.Search.FieldsOf(ctx, jql)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		rows := make([][]string, len(fields))
		for i, f := range fields {
			rows[i] = []string{fieldLabel(f)}
		}
		return r.Table(cmd.OutOrStdout(), []string{"FIELD"}, rows)
	}

	tokens := fieldTokens(svc.Config)
	plan, err := svc.Fields.Resolve(ctx, tokens)
	if err != nil {
		return fmt.Errorf("loading fields: %w", err)
	}
	warnUnknownFields(ctx, cmd, svc.Fields, tokens)

	limit := searchLimit
	if !cmd.Flags().Changed("limit") && svc.Config.DefaultLimit > 0 {
		limit = svc.Config.DefaultLimit
	}

	result, err := svc.Search.Collect(ctx, jql, plan.QueryFields, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	rows := make([][]string, len(result.Issues))
	for i := range result.Issues {
		rows[i] = fieldvalue.Row(&result.Issues[i], plan.Keys)
	}
	if err := r.Table(cmd.OutOrStdout(), plan.Headers, rows); err != nil {
		return err
	}

	if result.MoreAvailable && len(result.Issues) >= limit {
		cmd.PrintErrf("Warning: displayed %d issues (limit %d). More results are available; "+
			"rerun with a higher --limit to see more.\n", len(result.Issues), limit)
	}
	return nil
}

// fieldTokens returns the requested field tokens: --fields, then the
// configured default, then none.
func fieldTokens(cfg *domain.Config) []string {
	if searchFields == "" {
		if cfg != nil {
			return cfg.DefaultFields
		}
		return nil
	}

	var tokens []string
	for _, t := range strings.Split(searchFields, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// warnUnknownFields prints suggestions for tokens missing from the catalog.
// The tokens are still queried as given.
func warnUnknownFields(ctx context.Context, cmd *cobra.Command, fields driving.FieldService, tokens []string) {
	if len(tokens) == 0 {
		return
	}
	catalog, err := fields.Catalog(ctx)
	if err != nil {
		return
	}

	for _, token := range tokens {
		if catalog.Known(token) || fieldvalue.IsBuiltin(token) {
			continue
		}
		picks, err := fields.Suggest(ctx, token)
		if err != nil || len(picks) == 0 {
			cmd.PrintErrf("Field '%s' not found.\n", token)
			continue
		}
		cmd.PrintErrf("Field '%s' not found. Did you mean: %s?\n", token, strings.Join(picks, ", "))
	}
}

func fieldLabel(f domain.Field) string {
	if f.Name == "" {
		return f.ID
	}
	return fmt.Sprintf("\"%s\" (%s)", f.Name, f.ID)
}
