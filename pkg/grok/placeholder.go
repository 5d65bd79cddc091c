package grok

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// placeholderExpr recognizes %{NAME}, %{NAME:alias}, %{NAME=inline} and
// %{NAME:alias=inline}. Inline definitions cannot contain braces, since they
// would be indistinguishable from the placeholder's own delimiters.
const placeholderExpr = `%\{(?<name>(?<pattern>[A-Za-z0-9_]+)(?::(?<alias>[A-Za-z0-9_:;/\s.]+))?)(?:=(?<definition>[^{}]+))?\}`

// placeholderRegexp matches one whole candidate span. No part of a
// placeholder may contain a brace, so a placeholder starting at "%{" always
// ends at the first "}" after it.
var placeholderRegexp = regexp2.MustCompile(`\A`+placeholderExpr+`\z`, 0)

// placeholder is one parsed %{...} occurrence.
type placeholder struct {
	text       string // exact surface text, e.g. "%{INT:pid}"
	pattern    string // definition name
	alias      string
	definition string
	hasAlias   bool
	hasInline  bool
}

// fieldName is the name the placeholder's capture is registered under: the
// alias if given, otherwise the pattern name, with "=inline" appended for
// inline definitions so variants of one base name stay distinct.
func (p placeholder) fieldName() string {
	if p.hasAlias {
		return p.alias
	}
	if p.hasInline {
		return p.pattern + "=" + p.definition
	}
	return p.pattern
}

// findPlaceholder returns the leftmost placeholder in s at or after byte
// offset from, and its byte offset.
//
// Candidate spans are cut out of s by byte offsets, and only the span is
// handed to regexp2. The placeholder text and inline body are therefore the
// verbatim bytes of s, even when s is not valid UTF-8.
func findPlaceholder(s string, from int) (placeholder, int, bool, error) {
	for from < len(s) {
		i := strings.Index(s[from:], "%{")
		if i < 0 {
			break
		}
		start := from + i
		j := strings.IndexByte(s[start+2:], '}')
		if j < 0 {
			break
		}
		end := start + 2 + j + 1
		candidate := s[start:end]

		m, err := placeholderRegexp.FindStringMatch(candidate)
		if err != nil {
			return placeholder{}, 0, false, &CompileError{Err: ErrGenericCompilationFailure, Cause: err}
		}
		if m == nil {
			from = start + 2
			continue
		}

		p, err := parsePlaceholder(candidate, m)
		if err != nil {
			return placeholder{}, 0, false, err
		}
		return p, start, true, nil
	}
	return placeholder{}, 0, false, nil
}

func parsePlaceholder(text string, m *regexp2.Match) (placeholder, error) {
	pattern, ok := groupValue(m, "pattern")
	if !ok {
		return placeholder{}, &CompileError{
			Err:   ErrGenericCompilationFailure,
			Cause: errMissingGroup("pattern"),
		}
	}

	p := placeholder{text: text, pattern: pattern}
	p.alias, p.hasAlias = groupValue(m, "alias")
	if _, p.hasInline = groupValue(m, "definition"); p.hasInline {
		// Neither the name nor the alias may contain '=', so the body is
		// everything between the first '=' and the closing brace.
		eq := strings.IndexByte(text, '=')
		p.definition = text[eq+1 : len(text)-1]
	}
	return p, nil
}

func groupValue(m *regexp2.Match, name string) (string, bool) {
	g := m.GroupByName(name)
	if g == nil || len(g.Captures) == 0 {
		return "", false
	}
	return g.String(), true
}

type errMissingGroup string

func (e errMissingGroup) Error() string {
	return "could not find " + string(e) + " in placeholder match"
}
