package grok

import "sort"

// ChainMode specifies how a Chain applies its patterns.
type ChainMode int

const (
	// ChainFirst stops at the first pattern that matches (default).
	ChainFirst ChainMode = iota

	// ChainAll tries every pattern and returns all matches.
	ChainAll
)

// ChainMatch is one successful match within a Chain.
type ChainMatch struct {
	// Index is the position of the matching pattern in Chain.Patterns.
	Index   int
	Matches *Matches
}

// Chain matches a text against several patterns, for inputs that come in
// more than one shape (for example access and error lines in one stream).
type Chain struct {
	Mode     ChainMode
	Patterns []*Pattern
}

// Match applies the chain's patterns in order. Nil patterns are skipped.
// The result is empty when nothing matched.
func (c *Chain) Match(text string) []ChainMatch {
	var out []ChainMatch
	for i, p := range c.Patterns {
		if p == nil {
			continue
		}
		m, ok := p.Match(text)
		if !ok {
			continue
		}
		out = append(out, ChainMatch{Index: i, Matches: m})
		if c.Mode == ChainFirst {
			break
		}
	}
	return out
}

// FieldNames returns the union of all patterns' field names, sorted.
func (c *Chain) FieldNames() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range c.Patterns {
		if p == nil {
			continue
		}
		for _, name := range p.fields {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
