// Package runner wires the core front-end packages into the single
// translation-unit pipeline the CLI driver runs: read syntax rules, read
// source, lex, parse (with preprocessor hooks applied), infer, and report.
//
// Grounded on the teacher's lang/runner/runner.go: one Run(filePath,
// output, debug) entry point performing "read file → lex → parse →
// evaluate" and wrapping every stage failure with fmt.Errorf("...: %w",
// err). This rewrite keeps that stage-by-stage shape and debug-dump
// behavior (grammar/scope tracing) but evaluates nothing — the core
// front-end stops at (AST, TypeContext); lowering is a backend's job and
// out of scope here.
package runner

import (
	"io"
	"os"

	"github.com/muyoamon/morphl/ast"
	"github.com/muyoamon/morphl/diag"
	"github.com/muyoamon/morphl/infer"
	"github.com/muyoamon/morphl/interner"
	"github.com/muyoamon/morphl/lexer"
	"github.com/muyoamon/morphl/registry"
	"github.com/muyoamon/morphl/scopeparser"
	"github.com/muyoamon/morphl/token"
	"github.com/muyoamon/morphl/typectx"
	"github.com/pkg/errors"
)

// Result carries the translation unit's output tree and the diagnostics
// sink a caller can inspect for exit-status purposes ("the caller
// is responsible for honoring the exit code").
type Result struct {
	AST  *ast.Node
	Sink *diag.Sink
	In   *interner.Interner
}

// Run executes the complete pipeline for one source file against one
// syntax-rules file and returns the resulting operator tree in Result.AST;
// diagnostics are written to output as they are emitted. If
// debug is true, internal tracing (grammar loads, scope push/pop, hook
// firing) is routed to output at debug level, matching the teacher's
// "--debug prints grammar/parse trace to stdout" behavior (lang/runner/
// runner.go, lang/ll1/debug.go) without touching the diagnostic wire
// format.
//
// Run returns a non-nil error only for I/O or internal failures (// fatal at the translation-unit level); lex/parse/type diagnostics are
// reported through Result.Sink, and whether those constitute failure is
// the caller's decision ("warnings do not change exit status").
func Run(syntaxRulesPath, sourcePath string, output io.Writer, debug bool) (*Result, error) {
	rulesSrc, err := os.ReadFile(syntaxRulesPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading syntax rules %q", syntaxRulesPath)
	}
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading source %q", sourcePath)
	}

	in := interner.New()
	reg := registry.Init(in)
	sink := diag.NewSink(output)
	if debug {
		sink.EnableTrace(output)
	}

	rules, err := lexer.LoadSyntaxRules(in, string(rulesSrc))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing syntax rules %q", syntaxRulesPath)
	}

	lx := lexer.New(in, rules, sourcePath, source)
	tokens := lx.Tokenize()
	sink.Trace().WithField("tokens", len(tokens)).Debug("tokenized source")

	sp := scopeparser.New(in, reg, sink, sourcePath)
	root := sp.Parse(tokens)
	sink.Trace().Debug("parsed translation unit")

	ctx := typectx.New()
	inf := infer.New(in, reg, ctx, sink)
	inf.Infer(root)
	if unresolved := ctx.CheckUnresolvedForwards(); len(unresolved) > 0 {
		for _, u := range unresolved {
			sink.Errorf(fileSpan(sourcePath), diag.CodeTypeBase+10, "$forward missing body for %q", in.Lookup(u.Name))
		}
	}

	return &Result{AST: root, Sink: sink, In: in}, nil
}

func fileSpan(filename string) token.Span {
	return token.Span{Filename: filename, Row: 1, Col: 1}
}

// PrintTree renders r.AST to w using the operator symbol table from in.
func PrintTree(w io.Writer, r *Result, in *interner.Interner) {
	ast.Print(w, r.AST, in)
}
