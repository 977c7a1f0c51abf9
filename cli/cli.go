// Package cli provides the command-line adapter for the morphl front-end:
// two positional arguments — syntax-rules path, source path — plus a
// --debug flag.
//
// The teacher hand-rolls flag parsing over os.Args (lang/in/cli/cli.go,
// lang/cmd/cow-lang/main.go). This rewrite upgrades that one outer layer
// to github.com/spf13/cobra and github.com/spf13/pflag, the pattern the
// wider retrieval pack reaches for almost universally — the core packages
// underneath (lexer, scopeparser, infer) are untouched by this choice.
package cli

import (
	"io"

	"github.com/muyoamon/morphl/ast"
	"github.com/muyoamon/morphl/runner"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the morphl root command. output is where both the
// rendered AST and diagnostics are written ("streams token
// diagnostics or lowered backend output to stdout").
func NewRootCommand(output io.Writer) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "morphl <syntax-rules-file> <source-file>",
		Short: "Parse and type-check a morphl source file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runner.Run(args[0], args[1], output, debug)
			if err != nil {
				return err
			}
			ast.Print(output, result.AST, result.In)
			if result.Sink.HadFailure() {
				return errExitStatus{}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "trace grammar loads, scope changes, and hook firing")
	return cmd
}

// errExitStatus is returned by RunE to signal a nonzero exit status
// (on any error or fatal diagnostic, the driver exits nonzero) without
// cobra printing a redundant error line — the diagnostics were already
// streamed to output by diag.Sink as they were emitted.
type errExitStatus struct{}

func (errExitStatus) Error() string { return "" }

// IsExitStatus reports whether err is the sentinel signaling a diagnostics-
// driven nonzero exit (as opposed to a cobra/argument-parsing error, which
// should still print its own message).
func IsExitStatus(err error) bool {
	_, ok := err.(errExitStatus)
	return ok
}
