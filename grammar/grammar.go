// Package grammar implements the loadable file-scope grammar and its
// Pratt-style matcher.
//
// The teacher's lang/grammar/syntactic.go models a grammar as a marker
// interface (ProductionRule) with one Go type per alternative (Terminal,
// NonTerminal, SynSequence, SynAlternative, SynOptional, SynZeroOrMore,
// SynOneOrMore). The GrammarAtom variant this package needs — Literal |
// TokenKind | Expr{min_bp} | Repeat{subatoms,min,max} — maps directly onto
// that same idiom, so this package keeps the teacher's interface-per-variant
// shape rather than the tagged-struct shape used by ast.Node.
package grammar

import (
	"github.com/muyoamon/morphl/interner"
	"github.com/muyoamon/morphl/token"
)

// Atom is the marker interface every grammar atom implements.
type Atom interface {
	IsAtom()
}

// Literal matches a token's lexeme verbatim.
type Literal struct {
	Text string
}

func (Literal) IsAtom() {}

// TokenKind matches a token whose Kind equals the given interned symbol.
type TokenKind struct {
	Kind interner.Symbol
}

func (TokenKind) IsAtom() {}

// Expr recurses into the Pratt matcher at the given minimum binding power.
// A production whose first atom is an Expr is an infix/postfix extension;
// otherwise the production is a prefix.
type Expr struct {
	Rule  interner.Symbol
	MinBP int
}

func (Expr) IsAtom() {}

// Repeat exists in the data model for future extension; the matcher
// treats it as an unbounded-optional sequence of Subatoms, matching
// greedily up to Max and succeeding once at least Min repetitions have
// matched.
type Repeat struct {
	Subatoms []Atom
	Min      int
	Max      int // 0 means unbounded
}

func (Repeat) IsAtom() {}

// Production is an ordered sequence of atoms plus a capture-name list
// (parallel to Atoms, empty string where no capture was given) and the
// template string captured verbatim ("not interpreted by the
// parser ... captured for downstream expansion").
type Production struct {
	Atoms          []Atom
	Captures       []string
	Template       string
	StartsWithExpr bool
}

// GrammarRule is one named rule with its alternative productions, tried in
// declaration order.
type GrammarRule struct {
	Name        interner.Symbol
	Productions []Production
}

// Grammar is a complete loaded syntax description, owned by the scope that
// installed it.
type Grammar struct {
	Rules     []GrammarRule
	StartRule interner.Symbol
	Interner  *interner.Interner
}

func (g *Grammar) rule(name interner.Symbol) (*GrammarRule, bool) {
	for i := range g.Rules {
		if g.Rules[i].Name == name {
			return &g.Rules[i], true
		}
	}
	return nil, false
}

// cursor walks an immutable token slice without mutating it, so a failed
// production can be abandoned by simply discarding its cursor (// "failure of any atom fails the whole production, rewinds").
type cursor struct {
	tokens []token.Token
	pos    int
}

func (c cursor) peek() (token.Token, bool) {
	if c.pos >= len(c.tokens) {
		return token.Token{}, false
	}
	return c.tokens[c.pos], true
}

func (c cursor) advance() cursor {
	return cursor{tokens: c.tokens, pos: c.pos + 1}
}

// Match runs the Pratt parser over tokens starting at g.StartRule and
// reports whether the entire slice (excluding a trailing EOF token) is
// consumed ("succeeds only when the entire token stream...
// is consumed by the start rule").
func (g *Grammar) Match(tokens []token.Token) bool {
	end, ok := g.parseExpr(g.StartRule, 0, cursor{tokens: tokens})
	if !ok {
		return false
	}
	for end.pos < len(end.tokens) {
		tok, ok := end.peek()
		if !ok {
			break
		}
		if tok.Kind == g.eofKind() {
			return true
		}
		return false
	}
	return true
}

func (g *Grammar) eofKind() interner.Symbol {
	return g.Interner.Intern(token.KindEOF)
}

// parseExpr tries every prefix production in declaration order, then
// repeatedly extends with productions whose leading Expr.MinBP is at
// least minBP.
func (g *Grammar) parseExpr(rule interner.Symbol, minBP int, c cursor) (cursor, bool) {
	r, ok := g.rule(rule)
	if !ok {
		return c, false
	}

	var lhs cursor
	matched := false
	for _, p := range r.Productions {
		if p.StartsWithExpr {
			continue
		}
		if next, ok := g.matchProduction(p, c); ok {
			lhs = next
			matched = true
			break
		}
	}
	if !matched {
		return c, false
	}

	for {
		extended := false
		for _, p := range r.Productions {
			if !p.StartsWithExpr {
				continue
			}
			bp := p.Atoms[0].(Expr).MinBP
			if bp < minBP {
				continue
			}
			// The leading Expr atom stands for the lhs already matched; only
			// the atoms after it are matched from the current cursor.
			rest := Production{Atoms: p.Atoms[1:]}
			if next, ok := g.matchProduction(rest, lhs); ok && next.pos > lhs.pos {
				lhs = next
				extended = true
				break
			}
		}
		if !extended {
			break
		}
	}
	return lhs, true
}

// matchProduction matches one production's atom sequence from c, returning
// the advanced cursor on success.
func (g *Grammar) matchProduction(p Production, c cursor) (cursor, bool) {
	cur := c
	for _, atom := range p.Atoms {
		next, ok := g.matchAtom(atom, cur)
		if !ok {
			return c, false
		}
		cur = next
	}
	return cur, true
}

func (g *Grammar) matchAtom(a Atom, c cursor) (cursor, bool) {
	switch v := a.(type) {
	case Literal:
		tok, ok := c.peek()
		if !ok || tok.Lexeme != v.Text {
			return c, false
		}
		return c.advance(), true
	case TokenKind:
		tok, ok := c.peek()
		if !ok || tok.Kind != v.Kind {
			return c, false
		}
		return c.advance(), true
	case Expr:
		return g.parseExpr(v.Rule, v.MinBP, c)
	case Repeat:
		cur := c
		count := 0
		for v.Max == 0 || count < v.Max {
			matchedAny := false
			next := cur
			for _, sub := range v.Subatoms {
				n, ok := g.matchAtom(sub, next)
				if !ok {
					matchedAny = false
					break
				}
				next = n
				matchedAny = true
			}
			if !matchedAny {
				break
			}
			cur = next
			count++
		}
		if count < v.Min {
			return c, false
		}
		return cur, true
	default:
		return c, false
	}
}
