// Command jiri is a small command-line client for Jira Cloud.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/jiri/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
