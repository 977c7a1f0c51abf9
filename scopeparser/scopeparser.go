// Package scopeparser implements the scoped parser orchestrator:
// a stack of active grammars, one per lexical scope, that drives
// statement-by-statement parsing and applies each produced statement's
// preprocessor hook before deciding whether it survives into the tree.
//
// Grounded on src/parser/parser.c's top-level parse loop and on the
// teacher's lang/parser/parser.go cursor-over-token-slice shape, but the
// orchestration responsibility itself — grammar-stack bookkeeping, hook
// dispatch, $syntax mid-file grammar replacement — has no teacher
// counterpart (cow-lang-go's grammar is fixed for the whole program); this
// package is grounded directly on src/parser/parser.c's file-scope grammar
// switching.
package scopeparser

import (
	"os"
	"path/filepath"

	"github.com/muyoamon/morphl/ast"
	"github.com/muyoamon/morphl/builtinparser"
	"github.com/muyoamon/morphl/diag"
	"github.com/muyoamon/morphl/grammar"
	"github.com/muyoamon/morphl/interner"
	"github.com/muyoamon/morphl/registry"
	"github.com/muyoamon/morphl/token"
)

// MaxDepth bounds nested-scope recursion ("recursion depth is
// capped; exceeding it emits a parse error").
const MaxDepth = 128

// frame is one entry in the grammar stack. A nil Grammar means "builtins",
// i.e. the file-default fallback parser is active for this scope.
type frame struct {
	Grammar *grammar.Grammar
}

// Parser is the scoped parser orchestrator. It is not safe for concurrent
// use; one Parser serves one translation unit.
type Parser struct {
	in       *interner.Interner
	reg      *registry.Registry
	sink     *diag.Sink
	filename string

	stack []frame

	eofKind                interner.Symbol
	opSpread, opSpreadSpread interner.Symbol
}

// New builds a Parser for one translation unit. filename is the source
// file's path, used to resolve $syntax/$import paths that are relative
// ("relative paths resolve against the current source file").
func New(in *interner.Interner, reg *registry.Registry, sink *diag.Sink, filename string) *Parser {
	return &Parser{
		in:       in,
		reg:      reg,
		sink:     sink,
		filename: filename,
		eofKind:  in.Intern(token.KindEOF),
		opSpread: in.Intern("$spread"), opSpreadSpread: in.Intern("$$spread"),
	}
}

// Push enters a new grammar scope. A nil g means the scope falls back to
// the builtin prefix parser ("use_builtins ← grammar == None").
func (p *Parser) Push(g *grammar.Grammar) {
	p.stack = append(p.stack, frame{Grammar: g})
	p.sink.Trace().WithField("builtins", g == nil).Debug("pushed grammar scope")
}

// Pop exits the innermost grammar scope.
func (p *Parser) Pop() {
	if len(p.stack) == 0 {
		return
	}
	p.stack = p.stack[:len(p.stack)-1]
	p.sink.Trace().Debug("popped grammar scope")
}

func (p *Parser) top() *frame {
	if len(p.stack) == 0 {
		return nil
	}
	return &p.stack[len(p.stack)-1]
}

func (p *Parser) useBuiltins() bool {
	f := p.top()
	return f == nil || f.Grammar == nil
}

// ReplaceCurrent loads a grammar from path and swaps it in for the current
// scope's top-of-stack entry. On load failure it emits a warning and keeps
// the previous grammar in place.
func (p *Parser) ReplaceCurrent(path string) bool {
	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(p.filename), path)
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		p.sink.Warnf(p.fileSpan(), diag.CodeParseBase+90, "failed to load grammar %q: %v", path, err)
		return false
	}
	g, err := grammar.Load(p.in, string(data))
	if err != nil {
		p.sink.Warnf(p.fileSpan(), diag.CodeParseBase+91, "failed to parse grammar %q: %v", path, err)
		return false
	}
	if f := p.top(); f != nil {
		f.Grammar = g
	} else {
		p.Push(g)
	}
	p.sink.Trace().WithField("path", resolved).Debug("installed grammar")
	return true
}

func (p *Parser) fileSpan() token.Span {
	return token.Span{Filename: p.filename, Row: 1, Col: 1}
}

// Parse drives the top-level parse: pushes the file-default
// scope (builtins), parses a sequence of statements applying hooks as they
// fire, then pops. The result is a single $block node when more than one
// statement survives, otherwise the sole statement.
func (p *Parser) Parse(tokens []token.Token) *ast.Node {
	p.Push(nil)
	stmts := p.parseScope(tokens, 0)
	p.Pop()

	if len(stmts) == 1 {
		return stmts[0]
	}
	block := ast.New(ast.Block)
	for _, s := range stmts {
		block.AppendChild(s)
	}
	return block
}

func (p *Parser) isEOFAt(tokens []token.Token, pos int) bool {
	return pos >= len(tokens) || tokens[pos].Kind == p.eofKind
}

// parseScope drives one lexical scope's statement sequence: parse one
// statement, run its hook, splice or append the result, repeat until EOF.
func (p *Parser) parseScope(tokens []token.Token, depth int) []*ast.Node {
	if depth > MaxDepth {
		p.sink.Fatalf(p.fileSpan(), diag.CodeParseBase, "max scope recursion depth %d exceeded", MaxDepth)
		return nil
	}

	var stmts []*ast.Node
	pos := 0
	for !p.isEOFAt(tokens, pos) {
		node, consumed, ok := p.parseOneStatement(tokens[pos:])
		if !ok {
			pos += consumed
			continue
		}
		pos += consumed

		node = p.postProcess(node)
		switch {
		case node == nil:
			// Dropped by its hook (e.g. $syntax).
		case node.Op == p.opSpread || node.Op == p.opSpreadSpread:
			stmts = append(stmts, node.Children...)
		default:
			stmts = append(stmts, node)
		}

		if !p.isEOFAt(tokens, pos) && tokens[pos].Lexeme == ";" {
			pos++
		}
	}
	return stmts
}

// parseOneStatement parses exactly one statement starting at the head of
// tokens and reports how many tokens it consumed. ok is false when a parse
// error was emitted and the caller should skip to the next statement
// boundary: unexpected token at top level reports an error and resynchronizes
// there rather than aborting the whole translation unit.
func (p *Parser) parseOneStatement(tokens []token.Token) (node *ast.Node, consumed int, ok bool) {
	if p.useBuiltins() {
		bp := builtinparser.New(tokens, p.in, p.reg)
		n, err := bp.ParseOne()
		if err != nil {
			p.sink.Errorf(tokens[0].Span, diag.CodeParseBase+1, "%v", err)
			return nil, skipToBoundary(tokens, p.eofKind), false
		}
		return n, bp.Pos(), true
	}

	// Custom-grammar scope: the grammar is expected to consume the rest of
	// the scope in one call. Grammar matching here only reports pass/fail;
	// tree construction still defers to the builtin-prefix parser over the
	// same tokens — AST construction directly from a loaded grammar's
	// template strings is not yet wired through.
	g := p.top().Grammar
	if !g.Match(tokens) {
		p.sink.Errorf(tokens[0].Span, diag.CodeParseBase+2, "tokens do not conform to the active grammar")
	}
	bp := builtinparser.New(tokens, p.in, p.reg)
	n, err := bp.ParseProgram()
	if err != nil {
		p.sink.Errorf(tokens[0].Span, diag.CodeParseBase+1, "%v", err)
		return nil, len(tokens), false
	}
	return n, bp.Pos(), true
}

// skipToBoundary advances past tokens until the next `;` (consumed) or EOF.
func skipToBoundary(tokens []token.Token, eofKind interner.Symbol) int {
	for i, t := range tokens {
		if t.Kind == eofKind {
			return i
		}
		if t.Lexeme == ";" {
			return i + 1
		}
	}
	return len(tokens)
}

// postProcess runs n's preprocessor hook, if any, and applies its result
// policy.
func (p *Parser) postProcess(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}
	info, ok := p.reg.Lookup(n.Op)
	if !ok || !info.IsPreprocessor {
		return n
	}
	p.sink.Trace().WithField("op", info.Name).Debug("firing preprocessor hook")
	hookContext{p: p}.run(info, n)
	if info.Policy == registry.Drop {
		return nil
	}
	return n
}
