package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/jiri/internal/core/domain"
	"github.com/custodia-labs/jiri/internal/core/ports/driven"
	"github.com/custodia-labs/jiri/internal/logger"
)

// LocalFileName is the per-directory config file name.
const LocalFileName = "jiri.toml"

// Configuration keys.
const (
	KeyUsername       = "auth.username"
	KeyToken          = "auth.token"
	KeySite           = "auth.site"
	KeyAuthMethod     = "auth.method"
	KeyDefaultProject = "general.default_project"
	KeyOutput         = "general.output"
	KeyColor          = "general.color"
	KeySearchFields   = "search.fields"
	KeySearchLimit    = "search.limit"
)

// Environment variables read when no config file exists.
const (
	EnvUsername       = "JIRA_API_USERNAME"
	EnvToken          = "JIRA_API_TOKEN"
	EnvSite           = "JIRA_SITE"
	EnvDefaultProject = "JIRA_DEFAULT_PROJECT"
	EnvAuthMethod     = "JIRA_AUTH_METHOD"
)

// SourceEnvironment is the Config.Source of environment configuration.
const SourceEnvironment = "environment"

// Loader resolves the active configuration.
//
// The first existing file among ./jiri.toml and <config dir>/jiri/config.toml
// is used; if neither exists the environment is read. A file that exists but
// is unreadable or incomplete is an error, not skipped.
type Loader struct {
	// WorkDir holds the local config file. Empty means the process working directory.
	WorkDir string

	// ConfigDir holds the global config file. Empty means DefaultDir.
	ConfigDir string

	// Getenv reads environment variables. Nil means os.Getenv.
	Getenv func(string) string
}

// Candidates returns the config file paths in lookup order.
func (l *Loader) Candidates() []string {
	var paths []string
	paths = append(paths, filepath.Join(l.WorkDir, LocalFileName))

	dir := l.ConfigDir
	if dir == "" {
		if d, err := DefaultDir(); err == nil {
			dir = d
		}
	}
	if dir != "" {
		paths = append(paths, filepath.Join(dir, FileName))
	}
	return paths
}

// GlobalPath returns the global config file path.
func (l *Loader) GlobalPath() (string, error) {
	if l.ConfigDir != "" {
		return filepath.Join(l.ConfigDir, FileName), nil
	}
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load returns the first available configuration, validated.
func (l *Loader) Load() (*domain.Config, error) {
	for _, path := range l.Candidates() {
		if _, err := os.Stat(path); err != nil {
			logger.Debug("Config: %s not found", path)
			continue
		}

		store, err := Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid config at %s: %v", domain.ErrConfiguration, path, err)
		}
		logger.Debug("Config: using %s", path)
		cfg := FromStore(store)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg := l.fromEnv()
	if cfg.Username == "" && cfg.Token == "" && cfg.Site == "" {
		return nil, fmt.Errorf("%w: no configuration found; run 'jiri config init', create ./%s, or set %s, %s and %s",
			domain.ErrConfiguration, LocalFileName, EnvUsername, EnvToken, EnvSite)
	}
	logger.Debug("Config: using environment")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromStore builds a Config from a config store.
func FromStore(store driven.ConfigStore) *domain.Config {
	cfg := &domain.Config{
		Username:       store.GetString(KeyUsername),
		Token:          store.GetString(KeyToken),
		Site:           store.GetString(KeySite),
		DefaultProject: store.GetString(KeyDefaultProject),
		AuthMethod:     domain.AuthMethod(strings.ToLower(store.GetString(KeyAuthMethod))),
		DefaultFields:  store.GetStringSlice(KeySearchFields),
		DefaultLimit:   store.GetInt(KeySearchLimit),
		Output:         store.GetString(KeyOutput),
		Source:         store.Path(),
	}
	if _, ok := store.Get(KeyColor); ok {
		cfg.NoColor = !store.GetBool(KeyColor)
	}
	return cfg
}

func (l *Loader) fromEnv() *domain.Config {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	return &domain.Config{
		Username:       getenv(EnvUsername),
		Token:          getenv(EnvToken),
		Site:           getenv(EnvSite),
		DefaultProject: getenv(EnvDefaultProject),
		AuthMethod:     domain.AuthMethod(strings.ToLower(getenv(EnvAuthMethod))),
		Source:         SourceEnvironment,
	}
}
