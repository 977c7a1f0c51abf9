// Package lexer implements the programmable, longest-match lexer.
//
// Grounded on the teacher's lexer shape (token kind/value/position, a
// Tokenize entry point producing a flat slice — lang/lexer/lexer_test.go,
// tooling/lexer/lexer.go) but reimplementing the matching strategy: a flat
// list of SyntaxRule literals matched by longest prefix (ties broken by
// declaration order), not the teacher's NFA/DFA regex compiler — plain
// literal matching, nothing regex-like.
package lexer

import (
	"github.com/muyoamon/morphl/interner"
	"github.com/muyoamon/morphl/token"
)

// Lexer tokenizes source text against a set of SyntaxRules plus the fixed
// identifier/number/unknown/EOF fallback.
type Lexer struct {
	interns  *interner.Interner
	rules    []token.SyntaxRule
	filename string
	src      []byte
	pos      int
	row      int
	col      int

	identKind   interner.Symbol
	numberKind  interner.Symbol
	stringKind  interner.Symbol
	unknownKind interner.Symbol
	eofKind     interner.Symbol
}

// New creates a Lexer over src, tokenizing against rules in declaration
// order. Kind names in rules and in the fixed fallback set are interned
// against interns so downstream matching never compares raw strings.
func New(interns *interner.Interner, rules []token.SyntaxRule, filename string, src []byte) *Lexer {
	return &Lexer{
		interns:     interns,
		rules:       rules,
		filename:    filename,
		src:         src,
		row:         1,
		col:         1,
		identKind:   interns.Intern(token.KindIdent),
		numberKind:  interns.Intern(token.KindNumber),
		stringKind:  interns.Intern(token.KindString),
		unknownKind: interns.Intern(token.KindUnknown),
		eofKind:     interns.Intern(token.KindEOF),
	}
}

// Tokenize runs the lexer to completion. It always terminates and always
// ends with exactly one EOF token.
func (l *Lexer) Tokenize() []token.Token {
	var out []token.Token
	for {
		l.skipWhitespace()
		if l.pos >= len(l.src) {
			break
		}

		start := l.span()
		if kind, lexeme, ok := l.matchRule(); ok {
			out = append(out, token.Token{Kind: kind, Lexeme: lexeme, Span: start})
			continue
		}
		if l.src[l.pos] == '"' {
			lexeme := l.consumeString()
			out = append(out, token.Token{Kind: l.stringKind, Lexeme: lexeme, Span: start})
			continue
		}
		if isIdentStart(l.src[l.pos]) {
			lexeme := l.consumeWhile(isIdentCont)
			out = append(out, token.Token{Kind: l.identKind, Lexeme: lexeme, Span: start})
			continue
		}
		if isDigit(l.src[l.pos]) {
			lexeme := l.consumeWhile(isDigit)
			out = append(out, token.Token{Kind: l.numberKind, Lexeme: lexeme, Span: start})
			continue
		}

		lexeme := string(l.src[l.pos : l.pos+1])
		out = append(out, token.Token{Kind: l.unknownKind, Lexeme: lexeme, Span: start})
		l.advance(1)
	}
	out = append(out, token.Token{Kind: l.eofKind, Lexeme: "", Span: l.span()})
	return out
}

// matchRule scans every rule and returns the longest literal match at the
// current position; ties are broken by declaration order.
func (l *Lexer) matchRule() (interner.Symbol, string, bool) {
	bestLen := -1
	var bestKind interner.Symbol
	for _, r := range l.rules {
		n := len(r.Literal)
		if n == 0 || n > len(l.src)-l.pos {
			continue
		}
		if string(l.src[l.pos:l.pos+n]) != r.Literal {
			continue
		}
		if n > bestLen {
			bestLen = n
			bestKind = r.Kind
		}
	}
	if bestLen < 0 {
		return 0, "", false
	}
	lexeme := string(l.src[l.pos : l.pos+bestLen])
	l.advance(bestLen)
	return bestKind, lexeme, true
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && isWhitespace(l.src[l.pos]) {
		l.advance(1)
	}
}

func (l *Lexer) consumeWhile(pred func(byte) bool) string {
	start := l.pos
	for l.pos < len(l.src) && pred(l.src[l.pos]) {
		l.advance(1)
	}
	return string(l.src[start:l.pos])
}

// consumeString scans a double-quoted literal, honoring `\"` and `\\` as
// escapes. The returned lexeme is the unquoted, unescaped content; an
// unterminated string consumes to end of input (diagnosed downstream; the
// lexer itself stays free of parse-level errors).
func (l *Lexer) consumeString() string {
	l.advance(1) // opening quote
	var sb []byte
	for l.pos < len(l.src) && l.src[l.pos] != '"' {
		if l.src[l.pos] == '\\' && l.pos+1 < len(l.src) {
			l.advance(1)
		}
		sb = append(sb, l.src[l.pos])
		l.advance(1)
	}
	if l.pos < len(l.src) {
		l.advance(1) // closing quote
	}
	return string(sb)
}

func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.src[l.pos] == '\n' {
			l.row++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func (l *Lexer) span() token.Span {
	return token.Span{Filename: l.filename, Row: l.row, Col: l.col}
}

// isWhitespace treats '\r' as whitespace too, so CRLF line endings degrade
// cleanly to LF handling.
func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// isIdentStart admits '$' alongside [A-Za-z_]. A leading '$' marks a
// builtin operator head downstream, and that only works if the identifier
// scan admits '$' as a leading (and continuing) byte, so `$add` lexes as
// one IDENT token rather than UNKNOWN('$') + IDENT(add).
func isIdentStart(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '_' || b == '$'
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}
