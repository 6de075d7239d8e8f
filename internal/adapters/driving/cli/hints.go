package cli

import (
	"fmt"

	"github.com/custodia-labs/jiri/internal/connectors/jira"
)

// withHint appends a short next step to errors the user can act on.
// The returned error still wraps err.
func withHint(err error) error {
	var hint string
	switch {
	case err == nil:
		return nil
	case jira.IsUnauthorized(err):
		hint = "the site rejected your credentials. Check them with 'jiri config show' or run 'jiri config init'"
	case jira.IsForbidden(err):
		hint = "your account does not have permission for this request"
	case jira.IsRateLimited(err):
		hint = "the site is throttling requests. Wait for the reset time and retry"
	case jira.IsNotFound(err):
		hint = "check the key and that your account can see it"
	default:
		return err
	}
	return fmt.Errorf("%w\nHint: %s", err, hint)
}
