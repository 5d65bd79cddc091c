// Package engine defines the narrow regular-expression capability the grok
// compiler depends on, plus adapters for concrete engines.
//
// The compiler only needs to compile a flattened expression, ask which named
// groups it contains, and read group values after a match. Any engine that can
// do those three things and understands (?<name>...) groups can be plugged in
// with grok.WithEngine.
package engine

// Engine compiles flattened expressions into matchers.
type Engine interface {
	// Name identifies the engine in logs and CLI flags.
	Name() string

	// Compile parses expr. The returned error is the engine's own syntax error.
	Compile(expr string) (Matcher, error)
}

// Matcher is a compiled expression. Implementations must be safe for
// concurrent use by multiple goroutines.
type Matcher interface {
	// NamedGroups returns the engine-native group names mapped to their group
	// indices. The implicit whole-match group is never included.
	NamedGroups() map[string]int

	// Match runs the expression against text. ok is false when there is no match.
	Match(text string) (c Captures, ok bool)
}

// Captures holds the per-match group values. It is only valid for the match
// that produced it.
type Captures interface {
	// At returns the value of group i. ok is false when the group did not
	// participate in the match or i is out of range.
	At(i int) (value string, ok bool)
}

// Default returns the engine used when none is configured.
func Default() Engine {
	return NewRegexp2(0)
}

// ByName returns the engine registered under name ("regexp2" or "re2").
func ByName(name string) (Engine, bool) {
	switch name {
	case "", Regexp2Name:
		return Default(), true
	case RE2Name:
		return NewRE2(), true
	}
	return nil, false
}

// Names lists the engines accepted by ByName.
func Names() []string {
	return []string{Regexp2Name, RE2Name}
}
