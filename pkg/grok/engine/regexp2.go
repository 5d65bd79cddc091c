package engine

import (
	"strconv"
	"time"

	"github.com/dlclark/regexp2"
)

// Regexp2Name is the registered name of the regexp2 engine.
const Regexp2Name = "regexp2"

// Regexp2 adapts github.com/dlclark/regexp2, a backtracking engine compatible
// with Perl and .NET syntax. It supports lookbehind and atomic groups, which
// the bundled pattern table relies on.
//
// Expressions are compiled with ExplicitCapture: unnamed (...) groups do not
// capture, so the only groups a compiled grok pattern exposes are the named
// ones it introduced.
type Regexp2 struct {
	timeout time.Duration
}

// NewRegexp2 returns a regexp2 engine. A positive timeout bounds each match;
// a match that runs out of time is reported as no match.
func NewRegexp2(timeout time.Duration) *Regexp2 {
	return &Regexp2{timeout: timeout}
}

// Name implements Engine.
func (e *Regexp2) Name() string { return Regexp2Name }

// Compile implements Engine.
func (e *Regexp2) Compile(expr string) (Matcher, error) {
	re, err := regexp2.Compile(expr, regexp2.ExplicitCapture)
	if err != nil {
		return nil, err
	}
	if e.timeout > 0 {
		re.MatchTimeout = e.timeout
	}

	groups := make(map[string]int)
	for _, name := range re.GetGroupNames() {
		num := re.GroupNumberFromName(name)
		if num <= 0 {
			continue
		}
		// Unnamed groups are reported under their decimal number.
		if strconv.Itoa(num) == name {
			continue
		}
		groups[name] = num
	}

	return &regexp2Matcher{re: re, groups: groups}, nil
}

type regexp2Matcher struct {
	re     *regexp2.Regexp
	groups map[string]int
}

func (m *regexp2Matcher) NamedGroups() map[string]int {
	out := make(map[string]int, len(m.groups))
	for k, v := range m.groups {
		out[k] = v
	}
	return out
}

func (m *regexp2Matcher) Match(text string) (Captures, bool) {
	// The only error regexp2 reports at match time is a timeout.
	match, err := m.re.FindStringMatch(text)
	if err != nil || match == nil {
		return nil, false
	}
	return regexp2Captures{match: match}, true
}

type regexp2Captures struct {
	match *regexp2.Match
}

func (c regexp2Captures) At(i int) (string, bool) {
	g := c.match.GroupByNumber(i)
	if g == nil || len(g.Captures) == 0 {
		return "", false
	}
	return g.String(), true
}

var _ Engine = (*Regexp2)(nil)
