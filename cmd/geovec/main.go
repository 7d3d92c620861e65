// Command geovec evaluates vectorized geometry operations from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/hupe1980/geovec/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
