package engine

import (
	"regexp"

	"github.com/wasilibs/go-re2"
)

// RE2Name is the registered name of the RE2 engine.
const RE2Name = "re2"

// namedGroupOpen finds "(?<name" openings. Lookbehind openings "(?<=" and
// "(?<!" do not match because a name must start with a letter or underscore.
var namedGroupOpen = regexp.MustCompile(`\(\?<([A-Za-z_])`)

// RE2 adapts github.com/wasilibs/go-re2. Matching runs in linear time, but
// RE2 has no lookaround or atomic groups, so definitions using them fail to
// compile with this engine.
type RE2 struct{}

// NewRE2 returns an RE2 engine.
func NewRE2() *RE2 {
	return &RE2{}
}

// Name implements Engine.
func (e *RE2) Name() string { return RE2Name }

// Compile implements Engine.
func (e *RE2) Compile(expr string) (Matcher, error) {
	re, err := re2.Compile(namedGroupOpen.ReplaceAllString(expr, `(?P<$1`))
	if err != nil {
		return nil, err
	}

	groups := make(map[string]int)
	for i, name := range re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		groups[name] = i
	}

	return &re2Matcher{re: re, groups: groups}, nil
}

type re2Matcher struct {
	re     *re2.Regexp
	groups map[string]int
}

func (m *re2Matcher) NamedGroups() map[string]int {
	out := make(map[string]int, len(m.groups))
	for k, v := range m.groups {
		out[k] = v
	}
	return out
}

func (m *re2Matcher) Match(text string) (Captures, bool) {
	loc := m.re.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, false
	}
	return re2Captures{text: text, loc: loc}, true
}

type re2Captures struct {
	text string
	loc  []int
}

func (c re2Captures) At(i int) (string, bool) {
	if i < 0 || 2*i+1 >= len(c.loc) {
		return "", false
	}
	start, end := c.loc[2*i], c.loc[2*i+1]
	if start < 0 || end < 0 {
		return "", false
	}
	return c.text[start:end], true
}

var _ Engine = (*RE2)(nil)
