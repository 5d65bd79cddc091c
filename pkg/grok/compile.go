package grok

import (
	"errors"
	"strconv"
	"strings"
)

// tagPrefix prefixes the synthetic group names written into flattened
// expressions. Field names are mapped back from these tags after compiling.
const tagPrefix = "group"

// maxExpandedLength caps the flattened expression. A definition that
// references itself more than once doubles the working text on every
// iteration, which would exhaust memory long before the recursion ceiling.
const maxExpandedLength = 4 << 20

func syntheticTag(index int) string {
	return tagPrefix + strconv.Itoa(index)
}

// Compile expands every placeholder in pattern and compiles the result.
//
// Placeholders take the forms %{NAME}, %{NAME:alias}, %{NAME=inline} and
// %{NAME:alias=inline}. Each one becomes a named capture group registered
// under its alias, or under NAME (NAME=inline for inline definitions) when no
// alias is given. With aliasOnly set, placeholders without an alias become
// non-capturing groups instead, which keeps the helper fields of composite
// definitions out of the result.
//
// An inline definition is stored under NAME before it is used, replacing any
// existing definition. The change persists in g and is visible to later
// Compile calls.
//
// When the same field name is produced more than once, lookups by that name
// resolve to the last group assigned; the earlier groups remain reachable
// under their synthetic names (group0, group1, ...). Should a field itself be
// named like a synthetic tag, the unclaimed group gets a numeric suffix
// (group0_1).
//
// Compilation is all-or-nothing: on error no Pattern is returned and the
// error is a *CompileError matching one of the Err* sentinels.
func (g *Grok) Compile(pattern string, aliasOnly bool) (*Pattern, error) {
	expr, aliases, err := g.expand(pattern, aliasOnly)
	if err != nil {
		return nil, err
	}

	m, err := g.cfg.engine.Compile(expr)
	if err != nil {
		return nil, &CompileError{
			Err:     ErrRegexCompilationFailed,
			Pattern: pattern,
			Expr:    expr,
			Cause:   err,
		}
	}

	p := newPattern(expr, m, aliases)
	g.cfg.logger.Debug("compiled pattern",
		"engine", g.cfg.engine.Name(),
		"fields", len(p.fields),
		"expr_len", len(expr),
	)
	return p, nil
}

// expand rewrites pattern until no placeholders remain. Each outer iteration
// resolves one distinct placeholder text (every verbatim copy of it present
// at that moment, left to right) and spends one unit of the recursion budget.
// Bodies are substituted unexpanded; placeholders inside them are found by
// later iterations.
//
// Text before the first substituted occurrence never changes and holds no
// placeholder, so each search resumes there (see resumeOffset) instead of
// rescanning the whole expression.
//
// It returns the flattened expression and the field name -> synthetic tag map.
func (g *Grok) expand(pattern string, aliasOnly bool) (string, map[string]string, error) {
	working := pattern
	aliases := make(map[string]string)
	index := 0
	from := 0

	for budget := g.cfg.maxRecursion; ; budget-- {
		ph, start, found, err := findPlaceholder(working, from)
		if err != nil {
			var ce *CompileError
			if errors.As(err, &ce) {
				ce.Pattern = pattern
			}
			return "", nil, err
		}
		if !found {
			break
		}
		if budget == 0 {
			return "", nil, &CompileError{
				Err:     ErrRecursionTooDeep,
				Pattern: pattern,
				Limit:   g.cfg.maxRecursion,
			}
		}

		if ph.hasInline {
			if prev, ok := g.definitions[ph.pattern]; ok && prev != ph.definition {
				g.cfg.logger.Debug("inline definition overrides stored definition", "name", ph.pattern)
			}
			g.definitions[ph.pattern] = ph.definition
		}
		field := ph.fieldName()

		var b strings.Builder
		b.WriteString(working[:start])
		rest := working[start:]
		for {
			i := strings.Index(rest, ph.text)
			if i < 0 {
				b.WriteString(rest)
				break
			}
			body, ok := g.definitions[ph.pattern]
			if !ok {
				return "", nil, &CompileError{
					Err:     ErrDefinitionNotFound,
					Pattern: pattern,
					Name:    ph.pattern,
				}
			}

			b.WriteString(rest[:i])
			if aliasOnly && !ph.hasAlias {
				b.WriteString("(?:")
			} else {
				tag := syntheticTag(index)
				aliases[field] = tag
				b.WriteString("(?<" + tag + ">")
			}
			b.WriteString(body)
			b.WriteString(")")
			rest = rest[i+len(ph.text):]
			index++

			if b.Len() > maxExpandedLength {
				return "", nil, &CompileError{
					Err:     ErrRecursionTooDeep,
					Pattern: pattern,
					Limit:   g.cfg.maxRecursion,
				}
			}
		}
		working = b.String()
		from = resumeOffset(working, start)
	}

	if working == "" {
		return "", nil, &CompileError{Err: ErrCompiledPatternIsEmpty, Pattern: pattern}
	}
	return working, aliases, nil
}

// resumeOffset returns where the next placeholder search may start after a
// substitution at start. Placeholders contain no braces, so the only earlier
// "%{" that can now complete is the last one before start with no "}"
// between them, closed by a "}" inside the substituted body.
func resumeOffset(s string, start int) int {
	open := strings.LastIndex(s[:start], "%{")
	if open < 0 || strings.Contains(s[open:start], "}") {
		return start
	}
	return open
}
