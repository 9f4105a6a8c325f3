// Command ticketgrid is the CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/helpdesklite/ticketgrid/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
