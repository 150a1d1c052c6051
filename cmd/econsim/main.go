// Command econsim runs the agent-based macroeconomic simulator.
package main

import (
	"fmt"
	"os"

	"github.com/jstammers/companies-house-abm/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
