// Package token defines the token and syntax-rule data model.
package token

import "github.com/muyoamon/morphl/interner"

// Well-known token kind names, interned once at lexer construction. Custom
// syntax rules may introduce further kinds ("plus whatever the
// active syntax rules introduce").
const (
	KindIdent   = "IDENT"
	KindNumber  = "NUMBER"
	KindString  = "STRING"
	KindSymbol  = "SYMBOL"
	KindUnknown = "UNKNOWN"
	KindEOF     = "EOF"
)

// Span identifies a source location for diagnostics.
type Span struct {
	Filename string
	Row      int // 1-based
	Col      int // 1-based
}

// Token is one lexeme produced by the lexer. Kind is an interned
// symbol so registry/grammar matching never re-derives or re-compares raw
// strings at match time.
type Token struct {
	Kind   interner.Symbol
	Lexeme string
	Span   Span
}

// SyntaxRule is a loadable lexical rule: match Literal verbatim, emit a
// token of Kind.
type SyntaxRule struct {
	Kind    interner.Symbol
	Literal string
}
