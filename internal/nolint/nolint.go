package nolint

import (
	"math"
	"regexp"
	"strings"

	"github.com/gnolang/solint/internal/rules"
)

// directiveRe matches solhint inline directives. Longer alternatives come
// first so "disable-next-line" is not read as "disable".
var directiveRe = regexp.MustCompile(`solhint-(disable-next-line|disable-line|disable|enable)\b([^\n]*)`)

// Manager answers whether a rule is disabled on a given source line.
type Manager struct {
	scopes []nolintScope
}

// nolintScope is a line range in which rules are disabled.
// An empty rule set disables every rule except the ones in except.
type nolintScope struct {
	rules  map[string]struct{}
	except map[string]struct{}
	start  int
	end    int
}

// ParseLines scans source lines (1-based line numbers) for directives:
//
//	// solhint-disable-next-line [rule, ...]
//	// solhint-disable-line [rule, ...]
//	/* solhint-disable [rule, ...] */ ... /* solhint-enable [rule, ...] */
func ParseLines(lines []string) *Manager {
	m := &Manager{}
	var open []nolintScope

	for i, text := range lines {
		line := i + 1
		comment := commentText(text)
		if comment == "" {
			continue
		}
		match := directiveRe.FindStringSubmatch(comment)
		if match == nil {
			continue
		}
		names := parseRuleNames(match[2])

		switch match[1] {
		case "disable-next-line":
			m.scopes = append(m.scopes, nolintScope{rules: names, start: line + 1, end: line + 1})
		case "disable-line":
			m.scopes = append(m.scopes, nolintScope{rules: names, start: line, end: line})
		case "disable":
			open = append(open, nolintScope{rules: names, start: line, end: math.MaxInt})
		case "enable":
			open = m.enable(open, names, line)
		}
	}

	m.scopes = append(m.scopes, open...)
	return m
}

// enable closes the open scopes at line and reopens what is still disabled.
func (m *Manager) enable(open []nolintScope, names map[string]struct{}, line int) []nolintScope {
	var still []nolintScope
	for _, s := range open {
		closed := s
		closed.end = line
		m.scopes = append(m.scopes, closed)

		if len(names) == 0 {
			continue
		}

		next := nolintScope{start: line + 1, end: math.MaxInt}
		if len(s.rules) == 0 {
			next.except = union(s.except, names)
		} else {
			next.rules = difference(s.rules, names)
			if len(next.rules) == 0 {
				continue
			}
		}
		still = append(still, next)
	}
	return still
}

// IsNolint reports whether rule is disabled on line. Deprecated rule
// names resolve to their replacement.
func (m *Manager) IsNolint(line int, rule string) bool {
	if m == nil {
		return false
	}
	rule, _ = rules.Canonical(rule)
	for _, s := range m.scopes {
		if line < s.start || line > s.end {
			continue
		}
		if _, excluded := s.except[rule]; excluded {
			continue
		}
		if len(s.rules) == 0 {
			return true
		}
		if _, ok := s.rules[rule]; ok {
			return true
		}
	}
	return false
}

// commentText returns the comment part of a source line, if any.
func commentText(line string) string {
	idx := strings.Index(line, "//")
	if block := strings.Index(line, "/*"); block >= 0 && (idx < 0 || block < idx) {
		idx = block
	}
	if idx < 0 {
		return ""
	}
	return line[idx:]
}

// parseRuleNames splits the rule list that follows a directive and
// resolves deprecated names.
func parseRuleNames(text string) map[string]struct{} {
	text = strings.TrimSpace(text)
	if end := strings.Index(text, "*/"); end >= 0 {
		text = text[:end]
	}
	result := make(map[string]struct{})
	for _, field := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	}) {
		id, _ := rules.Canonical(field)
		result[id] = struct{}{}
	}
	return result
}

func union(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}

func difference(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(a))
	for k := range a {
		if _, ok := b[k]; !ok {
			out[k] = struct{}{}
		}
	}
	return out
}
