package grok

import (
	"fmt"
	"sort"

	"github.com/loggrok/grok/pkg/grok/patterns"
)

// Grok is a definition store plus the compiler that expands patterns against
// it.
//
// A Grok is not safe for concurrent mutation: AddDefinition and Compile (which
// inserts inline definitions as a side effect) must be serialized by the
// caller. Compiled patterns are independent of the store and safe for
// concurrent use.
type Grok struct {
	definitions map[string]string
	cfg         *config
}

// NewEmpty creates a Grok with no definitions.
func NewEmpty(opts ...Option) (*Grok, error) {
	cfg := applyOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return &Grok{
		definitions: make(map[string]string),
		cfg:         cfg,
	}, nil
}

// New creates a Grok preloaded with the built-in definition table
// (see patterns.Builtin).
func New(opts ...Option) (*Grok, error) {
	g, err := NewEmpty(opts...)
	if err != nil {
		return nil, err
	}
	g.AddDefinitions(patterns.Builtin())
	return g, nil
}

// AddDefinition inserts or overwrites a definition. The body is not checked
// here; syntax errors surface when a pattern using it is compiled.
func (g *Grok) AddDefinition(name, body string) {
	g.definitions[name] = body
}

// AddDefinitions inserts defs in order, so later entries win on duplicate names.
func (g *Grok) AddDefinitions(defs []patterns.Definition) {
	for _, d := range defs {
		g.definitions[d.Name] = d.Body
	}
}

// Definition returns the body stored under name.
func (g *Grok) Definition(name string) (string, bool) {
	body, ok := g.definitions[name]
	return body, ok
}

// Definitions returns all definitions sorted by name.
func (g *Grok) Definitions() []patterns.Definition {
	names := make([]string, 0, len(g.definitions))
	for name := range g.definitions {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]patterns.Definition, len(names))
	for i, name := range names {
		defs[i] = patterns.Definition{Name: name, Body: g.definitions[name]}
	}
	return defs
}

// Len returns the number of stored definitions.
func (g *Grok) Len() int {
	return len(g.definitions)
}

// LoadDefinitions loads a definition file (see patterns.Load) into the store.
func (g *Grok) LoadDefinitions(path string) error {
	defs, err := patterns.Load(path)
	if err != nil {
		return err
	}
	g.AddDefinitions(defs)
	g.cfg.logger.Debug("loaded definitions", "count", len(defs))
	return nil
}

// LoadDefinitionsGlob loads every file matching a doublestar glob into the
// store (see patterns.LoadGlob).
func (g *Grok) LoadDefinitionsGlob(pattern string) error {
	defs, err := patterns.LoadGlob(pattern)
	if err != nil {
		return err
	}
	g.AddDefinitions(defs)
	g.cfg.logger.Debug("loaded definitions", "glob", pattern, "count", len(defs))
	return nil
}
