// Command gotoh aligns two symbol sequences with affine gap penalties and
// reports every co-optimal alignment.
package main

import (
	"fmt"
	"os"

	"github.com/terryli710/gotoh/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gotoh:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
