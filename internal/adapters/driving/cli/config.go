package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/jiri/internal/adapters/driven/config/file"
	"github.com/custodia-labs/jiri/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage jiri configuration",
	Long: `Create and inspect the global configuration file.

A ./jiri.toml in the working directory takes precedence over the global
file; the environment is used only when neither exists.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or update the global config file interactively",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the global config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path, err := newLoader().GlobalPath()
	if err != nil {
		return fmt.Errorf("locating config directory: %w", err)
	}
	store, err := file.Open(path)
	if err != nil {
		return fmt.Errorf("%w: invalid config at %s: %v", domain.ErrConfiguration, path, err)
	}

	cmd.Printf("Configuring %s\n", path)
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())
	site := prompt(cmd, reader, "Jira site (e.g. https://example.atlassian.net)", store.GetString(file.KeySite))
	method := strings.ToLower(prompt(cmd, reader, "Auth method (basic or bearer)",
		valueOr(store.GetString(file.KeyAuthMethod), string(domain.AuthMethodBasic))))
	var username string
	if domain.AuthMethod(method) != domain.AuthMethodBearer {
		username = prompt(cmd, reader, "Username (email)", store.GetString(file.KeyUsername))
	}

	token := store.GetString(file.KeyToken)
	if token != "" {
		cmd.Printf("API token [%s]: ", maskToken(token))
	} else {
		cmd.Print("API token: ")
	}
	if entered := readPassword(cmd, reader); entered != "" {
		token = entered
	}
	project := prompt(cmd, reader, "Default project key (optional)", store.GetString(file.KeyDefaultProject))

	cfg := &domain.Config{
		Username:       username,
		Token:          token,
		Site:           site,
		DefaultProject: project,
		AuthMethod:     domain.AuthMethod(method),
		Source:         path,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	values := map[string]string{
		file.KeySite:           cfg.Site,
		file.KeyAuthMethod:     string(cfg.AuthMethod),
		file.KeyUsername:       cfg.Username,
		file.KeyToken:          cfg.Token,
		file.KeyDefaultProject: cfg.DefaultProject,
	}
	for key, value := range values {
		if err := store.Set(key, value); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}

	cmd.Println()
	cmd.Printf("Saved %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := newLoader().Load()
	if err != nil {
		return err
	}

	cmd.Printf("Source:          %s\n", cfg.Source)
	cmd.Printf("Site:            %s\n", cfg.Site)
	cmd.Printf("Auth method:     %s\n", cfg.Method())
	if cfg.Username != "" {
		cmd.Printf("Username:        %s\n", cfg.Username)
	}
	cmd.Printf("Token:           %s\n", maskToken(cfg.Token))
	if cfg.DefaultProject != "" {
		cmd.Printf("Default project: %s\n", cfg.DefaultProject)
	}
	if cfg.Output != "" {
		cmd.Printf("Output:          %s\n", cfg.Output)
	}
	if len(cfg.DefaultFields) > 0 {
		cmd.Printf("Search fields:   %s\n", strings.Join(cfg.DefaultFields, ","))
	}
	if cfg.DefaultLimit > 0 {
		cmd.Printf("Search limit:    %d\n", cfg.DefaultLimit)
	}
	if cfg.NoColor {
		cmd.Println("Color:           off")
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	path, err := newLoader().GlobalPath()
	if err != nil {
		return fmt.Errorf("locating config directory: %w", err)
	}
	cmd.Println(path)
	return nil
}

// prompt asks for a value, returning current when the answer is empty.
func prompt(cmd *cobra.Command, reader *bufio.Reader, label, current string) string {
	if current != "" {
		cmd.Printf("%s [%s]: ", label, current)
	} else {
		cmd.Printf("%s: ", label)
	}
	return valueOr(readLine(reader), current)
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readPassword reads a secret without echo when stdin is a terminal.
func readPassword(cmd *cobra.Command, reader *bufio.Reader) string {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		cmd.Println()
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
