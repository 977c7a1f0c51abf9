// Package builtinparser implements the always-available prefix parser
//, used whenever no custom grammar is active for the current
// scope.
//
// Grounded on src/parser/builtin_parser.c and on the teacher's
// lang/parser/parser.go shape (a Parser struct walking a filtered token
// slice with peek/advance/isAtEnd helpers and fmt.Errorf-wrapped errors);
// unlike the teacher's hand-picked function-name whitelist, arguments here
// are driven entirely by the operator registry, and arity is deliberately
// left unchecked ("arity is not validated here; the type
// checker reports arity errors later").
package builtinparser

import (
	"fmt"
	"strings"

	"github.com/muyoamon/morphl/ast"
	"github.com/muyoamon/morphl/interner"
	"github.com/muyoamon/morphl/registry"
	"github.com/muyoamon/morphl/token"
)

// MaxDepth bounds recursion to prevent stack overflow on malicious input
// ("implementation-defined ≥128").
const MaxDepth = 128

// Parser walks a fixed token slice with no custom grammar.
type Parser struct {
	tokens []token.Token
	pos    int
	in     *interner.Interner
	reg    *registry.Registry

	kindIdent, kindNumber, kindString, kindSymbol, kindEOF interner.Symbol
}

// New builds a Parser over tokens. in and reg must match the ones used to
// produce tokens, so Kind and Op symbols compare equal.
func New(tokens []token.Token, in *interner.Interner, reg *registry.Registry) *Parser {
	return &Parser{
		tokens: tokens, in: in, reg: reg,
		kindIdent:  in.Intern(token.KindIdent),
		kindNumber: in.Intern(token.KindNumber),
		kindString: in.Intern(token.KindString),
		kindSymbol: in.Intern(token.KindSymbol),
		kindEOF:    in.Intern(token.KindEOF),
	}
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: p.kindEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == p.kindEOF
}

// isStatementBoundary reports the stop set used for argument collection:
// EOF, or one of `) } ] ; ,` at any nesting depth.
func isStatementBoundary(tok token.Token, kindEOF interner.Symbol) bool {
	if tok.Kind == kindEOF {
		return true
	}
	switch tok.Lexeme {
	case ")", "}", "]", ";", ",":
		return true
	}
	return false
}

// ParseProgram parses a full sequence of expressions separated by optional
// `;`, wrapping more than one in an implicit $block.
func (p *Parser) ParseProgram() (*ast.Node, error) {
	var stmts []*ast.Node
	for !p.isAtEnd() {
		n, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, n)
		if p.peek().Lexeme == ";" {
			p.advance()
		}
	}
	if len(stmts) == 1 {
		return stmts[0], nil
	}
	block := ast.New(ast.Block)
	for _, s := range stmts {
		block.AppendChild(s)
	}
	return block, nil
}

// ParseOne parses exactly one top-level expression, used by the scoped
// parser orchestrator when driving one statement at a time.
func (p *Parser) ParseOne() (*ast.Node, error) {
	return p.parseExpr(0)
}

// Pos reports how many tokens have been consumed so far, for callers (the
// scoped parser orchestrator) that need to advance their own cursor over a
// larger token stream after one ParseOne/ParseProgram call.
func (p *Parser) Pos() int { return p.pos }

// Remaining reports how many tokens (other than the trailing EOF)
// remain unconsumed.
func (p *Parser) Remaining() int {
	if p.pos >= len(p.tokens) {
		return 0
	}
	n := len(p.tokens) - p.pos
	if p.tokens[len(p.tokens)-1].Kind == p.kindEOF {
		n--
	}
	return n
}

func (p *Parser) parseExpr(depth int) (*ast.Node, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("builtin parser: max recursion depth %d exceeded at %s", MaxDepth, spanString(p.peek().Span))
	}
	tok := p.peek()
	switch tok.Kind {
	case p.kindNumber, p.kindString:
		p.advance()
		return ast.NewLeaf(ast.Literal, tok.Lexeme, toASTSpan(tok.Span)), nil
	case p.kindIdent:
		if strings.HasPrefix(tok.Lexeme, "$") {
			return p.parseApplication(depth)
		}
		p.advance()
		return ast.NewLeaf(ast.Ident, tok.Lexeme, toASTSpan(tok.Span)), nil
	case p.kindEOF:
		return nil, fmt.Errorf("builtin parser: unexpected end of input")
	default:
		return nil, fmt.Errorf("builtin parser: unexpected token %q at %s", tok.Lexeme, spanString(tok.Span))
	}
}

// parseApplication consumes a `$`-headed operator and its arguments
// greedily until a statement boundary.
func (p *Parser) parseApplication(depth int) (*ast.Node, error) {
	head := p.advance()
	op := p.in.Intern(head.Lexeme)

	kind := ast.Builtin
	if info, ok := p.reg.Lookup(op); ok {
		kind = info.AstKind
	}

	node := ast.New(kind)
	node.Op = op
	node.Span = toASTSpan(head.Span)

	for !isStatementBoundary(p.peek(), p.kindEOF) {
		arg, err := p.parseExpr(depth + 1)
		if err != nil {
			return nil, err
		}
		node.AppendChild(arg)
	}
	return node, nil
}

func toASTSpan(s token.Span) ast.Span {
	return ast.Span{Filename: s.Filename, Row: s.Row, Col: s.Col}
}

func spanString(s token.Span) string {
	return fmt.Sprintf("%s:%d:%d", s.Filename, s.Row, s.Col)
}
