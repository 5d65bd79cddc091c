package grok

import (
	"iter"

	"github.com/loggrok/grok/pkg/grok/engine"
)

// Matches is the result of one successful match.
type Matches struct {
	captures engine.Captures
	pattern  *Pattern
}

// Get returns the value of the named field. ok is false only when the pattern
// has no such field; a field that did not take part in the match yields "", true.
func (m *Matches) Get(name string) (string, bool) {
	idx, ok := m.pattern.names[name]
	if !ok {
		return "", false
	}
	v, _ := m.captures.At(idx)
	return v, true
}

// Len returns the number of fields, which equals the number of capture
// groups in the compiled expression excluding the whole match.
func (m *Matches) Len() int {
	return len(m.pattern.fields)
}

// IsEmpty reports whether the pattern has no fields.
func (m *Matches) IsEmpty() bool {
	return m.Len() == 0
}

// All yields every field and its value in field name order. Fields that did
// not participate in the match yield "". The sequence can be ranged over
// any number of times.
func (m *Matches) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range m.pattern.fields {
			v, _ := m.captures.At(m.pattern.names[name])
			if !yield(name, v) {
				return
			}
		}
	}
}

// Map returns the fields as a map.
func (m *Matches) Map() map[string]string {
	out := make(map[string]string, len(m.pattern.fields))
	for name, v := range m.All() {
		out[name] = v
	}
	return out
}
