package lexer

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/muyoamon/morphl/interner"
	"github.com/muyoamon/morphl/token"
)

// LoadSyntaxRules parses the line-oriented syntax-rule file format: blank
// lines and `#`-comments are ignored, and each remaining line is
// `TOKEN_KIND literal`, where literal is bare or double-quoted with
// `\n \t \\ \"` escapes. Rule kind names are interned against in; literal
// text is returned as a plain Go string (the caller's arena, if any, is
// responsible for any further copying).
//
// Grounded on src/lexer/lexer.c's parse_rule_line/syntax_load_file: a bare
// literal runs to end of line (trimmed), a quoted literal supports the four
// named escapes, and an unterminated quote (or any other malformed line) is
// a fatal *per-rule* error — parse_rule_line returns false, syntax_load_file
// skips to the next line and keeps going, and the overall load still
// succeeds. Only a real I/O failure aborts the whole load.
func LoadSyntaxRules(in *interner.Interner, source string) ([]token.SyntaxRule, error) {
	var rules []token.SyntaxRule
	scanner := bufio.NewScanner(strings.NewReader(source))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sp := strings.IndexAny(line, " \t")
		if sp < 0 {
			// Missing literal: drop this rule, keep scanning.
			continue
		}
		kindName := line[:sp]
		rest := strings.TrimSpace(line[sp+1:])
		if rest == "" {
			// Empty literal: drop this rule, keep scanning.
			continue
		}

		literal, err := parseRuleLiteral(rest)
		if err != nil {
			// Unterminated quote or bad escape: drop this rule, keep scanning.
			continue
		}
		rules = append(rules, token.SyntaxRule{Kind: in.Intern(kindName), Literal: literal})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}

// parseRuleLiteral unquotes and unescapes a double-quoted literal, or
// returns a bare literal verbatim.
func parseRuleLiteral(s string) (string, error) {
	if !strings.HasPrefix(s, `"`) {
		return s, nil
	}
	if len(s) < 2 || !strings.HasSuffix(s, `"`) {
		return "", fmt.Errorf("unterminated quoted literal: %q", s)
	}
	body := s[1 : len(s)-1]
	var out strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			out.WriteByte(c)
			continue
		}
		if i+1 >= len(body) {
			return "", fmt.Errorf("trailing escape in quoted literal: %q", s)
		}
		i++
		switch body[i] {
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case '\\':
			out.WriteByte('\\')
		case '"':
			out.WriteByte('"')
		default:
			return "", fmt.Errorf("unknown escape '\\%c' in quoted literal: %q", body[i], s)
		}
	}
	return out.String(), nil
}
