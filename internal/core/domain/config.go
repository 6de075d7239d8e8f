package domain

import (
	"fmt"
	"strings"
)

// AuthMethod selects how credentials are presented to the API.
type AuthMethod string

const (
	// AuthMethodBasic sends username and API token as HTTP basic auth.
	AuthMethodBasic AuthMethod = "basic"

	// AuthMethodBearer sends the token as a bearer token; username is unused.
	AuthMethodBearer AuthMethod = "bearer"
)

// Config holds the settings required to talk to the tracker.
type Config struct {
	Username       string
	Token          string
	Site           string
	DefaultProject string
	AuthMethod     AuthMethod

	// DefaultFields replaces key,summary when search is run without --fields.
	DefaultFields []string
	// DefaultLimit replaces the built-in search limit when positive.
	DefaultLimit int
	// Output is the default output format name.
	Output string
	// NoColor disables coloured output.
	NoColor bool

	// Source names where the configuration was read from.
	Source string
}

// Validate checks that all required settings are present.
func (c *Config) Validate() error {
	method := c.AuthMethod
	if method == "" {
		method = AuthMethodBasic
	}

	var missing []string
	if c.Username == "" && method == AuthMethodBasic {
		missing = append(missing, "username")
	}
	if c.Token == "" {
		missing = append(missing, "token")
	}
	if c.Site == "" {
		missing = append(missing, "site")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s: missing %s", ErrConfiguration, c.Source, strings.Join(missing, ", "))
	}

	switch method {
	case AuthMethodBasic, AuthMethodBearer:
	default:
		return fmt.Errorf("%w: %s: unknown auth method %q", ErrConfiguration, c.Source, c.AuthMethod)
	}
	return nil
}

// Method returns the configured auth method, defaulting to basic.
func (c *Config) Method() AuthMethod {
	if c.AuthMethod == "" {
		return AuthMethodBasic
	}
	return c.AuthMethod
}
