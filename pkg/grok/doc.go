// Package grok compiles grok patterns into regular expressions and extracts
// named fields from text.
//
// A grok pattern is a regular expression that may reference named fragments
// through placeholders:
//
//	%{NAME}               capture NAME's definition as field "NAME"
//	%{NAME:alias}         capture it as field "alias"
//	%{NAME=inline}        define NAME as "inline", then capture it as "NAME=inline"
//	%{NAME:alias=inline}  define NAME as "inline", then capture it as "alias"
//
// Definitions may themselves contain placeholders; they are expanded
// transitively until none remain or the recursion ceiling is reached.
//
// # Basic Usage
//
//	g, err := grok.New() // preloaded with the built-in table
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p, err := g.Compile(`%{IP:client} %{WORD:method} %{URIPATHPARAM:request}`, true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if m, ok := p.Match("55.3.244.1 GET /index.html"); ok {
//	    for name, value := range m.All() {
//	        fmt.Printf("%s=%s\n", name, value)
//	    }
//	}
//
// # Alias-only Mode
//
// Composite definitions such as MAC or IPORHOST reference helper definitions
// that would otherwise become fields too. Passing aliasOnly=true to Compile
// turns every placeholder without an explicit alias into a non-capturing
// group, so only the fields the caller named are extracted.
//
// # Definition Files
//
// Custom definitions can be added in code with AddDefinition or loaded from
// plain-text or YAML files with LoadDefinitions and LoadDefinitionsGlob. See
// the patterns subpackage for the file formats.
//
// # Engines
//
// Flattened expressions are compiled by the regexp2 engine by default, which
// supports the lookbehind and atomic groups used by the built-in table. An
// RE2 engine is available through WithEngine(engine.NewRE2()) for patterns
// that avoid those constructs.
//
// # Concurrency
//
// A Grok must not be mutated concurrently; Compile counts as a mutation
// because inline definitions are stored. A compiled Pattern is immutable and
// may be matched from any number of goroutines.
//
// Callers that compile patterns on demand from several goroutines can use a
// Cache, which serializes compilation and keeps recently used patterns.
package grok
