// Command morphl is the translation-unit driver: it reads a
// syntax-rules file and a source file and prints the resulting operator
// tree and diagnostics to stdout.
//
// Grounded on the teacher's lang/cmd/cow-lang/main.go and lang/main.go,
// which parse os.Args by hand and exit(1) on error. This rewrite keeps the
// same "parse args → run → exit nonzero on failure" shape but moves
// argument parsing to the cli package's cobra command per SPEC_FULL.md's
// ambient stack.
package main

import (
	"os"

	"github.com/muyoamon/morphl/cli"
)

func main() {
	cmd := cli.NewRootCommand(os.Stdout)
	if err := cmd.Execute(); err != nil {
		if !cli.IsExitStatus(err) {
			cmd.PrintErrln(err)
		}
		os.Exit(1)
	}
}
