package grok

import (
	"sort"
	"strconv"

	"github.com/loggrok/grok/pkg/grok/engine"
)

// Pattern is a compiled grok pattern. It is immutable and safe for concurrent
// use by multiple goroutines; every match allocates its own state.
type Pattern struct {
	expr    string
	matcher engine.Matcher
	names   map[string]int // field name -> engine group index
	fields  []string       // sorted keys of names
}

// newPattern builds the name resolution table. Groups whose synthetic tag
// was recorded for a field are exposed under that field name. Every other
// engine group (groups written directly in the pattern, or earlier
// duplicates of a field name) keeps its engine name; if a field already
// claims that name, the group is exposed as name_1, name_2, ... instead.
// Every engine group is thus reachable under exactly one name.
func newPattern(expr string, m engine.Matcher, aliases map[string]string) *Pattern {
	fieldByTag := make(map[string]string, len(aliases))
	for field, tag := range aliases {
		fieldByTag[tag] = field
	}

	groups := m.NamedGroups()
	engineNames := make([]string, 0, len(groups))
	for name := range groups {
		engineNames = append(engineNames, name)
	}
	sort.Slice(engineNames, func(i, j int) bool {
		return groups[engineNames[i]] < groups[engineNames[j]]
	})

	names := make(map[string]int, len(groups))
	var unaliased []string
	for _, engineName := range engineNames {
		if field, ok := fieldByTag[engineName]; ok {
			names[field] = groups[engineName]
			continue
		}
		unaliased = append(unaliased, engineName)
	}
	for _, engineName := range unaliased {
		name := engineName
		for n := 1; ; n++ {
			if _, taken := names[name]; !taken {
				break
			}
			name = engineName + "_" + strconv.Itoa(n)
		}
		names[name] = groups[engineName]
	}

	fields := make([]string, 0, len(names))
	for name := range names {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	return &Pattern{
		expr:    expr,
		matcher: m,
		names:   names,
		fields:  fields,
	}
}

// Match matches text against the pattern. ok is false when text does not match.
func (p *Pattern) Match(text string) (*Matches, bool) {
	c, ok := p.matcher.Match(text)
	if !ok {
		return nil, false
	}
	return &Matches{captures: c, pattern: p}, true
}

// MatchString reports whether text matches the pattern.
func (p *Pattern) MatchString(text string) bool {
	_, ok := p.matcher.Match(text)
	return ok
}

// Parse matches text and returns every field with its value. Fields that did
// not participate in the match map to "". The result is nil when text does
// not match.
func (p *Pattern) Parse(text string) map[string]string {
	m, ok := p.Match(text)
	if !ok {
		return nil
	}
	return m.Map()
}

// FieldNames returns the names of all fields the pattern can produce, sorted.
// Each call returns a fresh slice.
func (p *Pattern) FieldNames() []string {
	out := make([]string, len(p.fields))
	copy(out, p.fields)
	return out
}

// String returns the flattened expression handed to the regex engine.
func (p *Pattern) String() string {
	return p.expr
}
