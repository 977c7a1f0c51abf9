package grammar

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/muyoamon/morphl/interner"
)

// Load parses a grammar file in this block form:
//
//	rule <name>:
//	  <pattern> => <template>
//	  <pattern> => <template>
//	end
//
// Patterns are whitespace-separated atoms: bare word or "quoted" string is
// a Literal, %KIND is a TokenKind, $rule[n] is an Expr, and a trailing
// bare identifier after an atom is a capture name for it. The first rule
// encountered becomes the start rule.
func Load(in *interner.Interner, source string) (*Grammar, error) {
	g := &Grammar{Interner: in}

	scanner := bufio.NewScanner(strings.NewReader(source))
	var current *GrammarRule

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "rule "):
			name := strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(line, "rule ")), ":")
			if name == "" {
				return nil, fmt.Errorf("grammar line %d: missing rule name", lineNo)
			}
			rule := GrammarRule{Name: in.Intern(name)}
			g.Rules = append(g.Rules, rule)
			current = &g.Rules[len(g.Rules)-1]
			if g.StartRule == 0 {
				g.StartRule = current.Name
			}
		case line == "end":
			current = nil
		default:
			if current == nil {
				return nil, fmt.Errorf("grammar line %d: production outside of a rule block", lineNo)
			}
			prod, err := parseProduction(in, line)
			if err != nil {
				return nil, fmt.Errorf("grammar line %d: %w", lineNo, err)
			}
			current.Productions = append(current.Productions, prod)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

func parseProduction(in *interner.Interner, line string) (Production, error) {
	parts := strings.SplitN(line, "=>", 2)
	if len(parts) != 2 {
		return Production{}, fmt.Errorf("production missing '=>': %q", line)
	}
	pattern := strings.TrimSpace(parts[0])
	template := strings.TrimSpace(parts[1])

	fields := strings.Fields(pattern)
	var atoms []Atom
	var captures []string

	for _, f := range fields {
		switch {
		case strings.HasPrefix(f, "%"):
			kind := strings.TrimPrefix(f, "%")
			atoms = append(atoms, TokenKind{Kind: in.Intern(kind)})
			captures = append(captures, "")
		case strings.HasPrefix(f, "$"):
			atom, err := parseExprAtom(in, f)
			if err != nil {
				return Production{}, err
			}
			atoms = append(atoms, atom)
			captures = append(captures, "")
		case strings.HasPrefix(f, `"`) && strings.HasSuffix(f, `"`) && len(f) >= 2:
			atoms = append(atoms, Literal{Text: f[1 : len(f)-1]})
			captures = append(captures, "")
		default:
			// A bare word right after an atom that has no capture yet names
			// that atom; first in the pattern, or after an already-named
			// atom, it is a Literal.
			if len(atoms) == 0 || captures[len(captures)-1] != "" {
				atoms = append(atoms, Literal{Text: f})
				captures = append(captures, "")
				continue
			}
			captures[len(captures)-1] = f
		}
	}

	return Production{
		Atoms:          atoms,
		Captures:       captures,
		Template:       template,
		StartsWithExpr: len(atoms) > 0 && isExprAtom(atoms[0]),
	}, nil
}

func isExprAtom(a Atom) bool {
	_, ok := a.(Expr)
	return ok
}

// parseExprAtom parses "$rule[n]" or "$rule" (defaulting min_bp to 0).
func parseExprAtom(in *interner.Interner, f string) (Atom, error) {
	body := strings.TrimPrefix(f, "$")
	name := body
	bp := 0
	if open := strings.IndexByte(body, '['); open >= 0 {
		if !strings.HasSuffix(body, "]") {
			return nil, fmt.Errorf("malformed expr atom %q", f)
		}
		name = body[:open]
		bpStr := body[open+1 : len(body)-1]
		n, err := strconv.Atoi(bpStr)
		if err != nil {
			return nil, fmt.Errorf("malformed binding power in %q: %w", f, err)
		}
		bp = n
	}
	if name == "" {
		return nil, fmt.Errorf("malformed expr atom %q", f)
	}
	return Expr{Rule: in.Intern(name), MinBP: bp}, nil
}
