// Package cli implements the jiri command tree.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jiri/internal/adapters/driven/config/file"
	"github.com/custodia-labs/jiri/internal/adapters/driving/render"
	"github.com/custodia-labs/jiri/internal/connectors/jira"
	"github.com/custodia-labs/jiri/internal/core/domain"
	"github.com/custodia-labs/jiri/internal/core/ports/driving"
	"github.com/custodia-labs/jiri/internal/core/services"
	"github.com/custodia-labs/jiri/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// Global output flags.
var (
	outputCSV   bool
	outputPlain bool
	outputJSON  bool
	outputYAML  bool
	noHeader    bool
	verbose     bool
)

// Services bundles the driving ports a command needs.
type Services struct {
	Config   *domain.Config
	Fields   driving.FieldService
	Search   driving.SearchService
	Issues   driving.IssueService
	Projects driving.ProjectService
}

// newLoader returns the configuration loader. Tests point it at a temp dir.
var newLoader = func() *file.Loader {
	return &file.Loader{}
}

// loadServices resolves the configuration and wires the services.
// Commands that need no credentials never call it.
var loadServices = func(ctx context.Context) (*Services, error) {
	cfg, err := newLoader().Load()
	if err != nil {
		return nil, err
	}
	logger.Debug("Config source: %s", cfg.Source)

	client, err := jira.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	fields := services.NewFieldService(client)
	return &Services{
		Config:   cfg,
		Fields:   fields,
		Search:   services.NewSearchService(client, fields),
		Issues:   services.NewIssueService(client),
		Projects: services.NewProjectService(client),
	}, nil
}

var rootCmd = &cobra.Command{
	Use:   "jiri",
	Short: "A small command-line client for Jira Cloud",
	Long: `jiri searches, views and updates Jira Cloud issues from the terminal.

Credentials are read from ./jiri.toml, then the global config file
(see 'jiri config path'), then the JIRA_API_USERNAME, JIRA_API_TOKEN
and JIRA_SITE environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Execute runs the root command.
func Execute() error {
	return withHint(rootCmd.Execute())
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&outputCSV, "csv", false, "output as CSV")
	flags.BoolVar(&outputPlain, "plain", false, "output as plain space-aligned text")
	flags.BoolVar(&outputJSON, "json", false, "output as JSON")
	flags.BoolVar(&outputYAML, "yaml", false, "output as YAML")
	flags.BoolVar(&noHeader, "no-header", false, "omit the header row")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log requests and decisions to stderr")
}

// outputFormat picks the format from flags, then the configured default.
func outputFormat(cfg *domain.Config) (render.Format, error) {
	switch {
	case outputJSON:
		return render.FormatJSON, nil
	case outputYAML:
		return render.FormatYAML, nil
	case outputCSV:
		return render.FormatCSV, nil
	case outputPlain:
		return render.FormatPlain, nil
	}
	if cfg == nil {
		return render.FormatTable, nil
	}
	return render.ParseFormat(cfg.Output)
}

// newRenderer returns a renderer for the command's output stream.
// Colour is used only on a terminal and never when disabled by config or NO_COLOR.
func newRenderer(cmd *cobra.Command, cfg *domain.Config) (*render.Renderer, error) {
	format, err := outputFormat(cfg)
	if err != nil {
		return nil, err
	}
	color := render.IsTerminal(cmd.OutOrStdout()) && os.Getenv("NO_COLOR") == ""
	if cfg != nil && cfg.NoColor {
		color = false
	}
	return render.New(format, noHeader, color), nil
}
