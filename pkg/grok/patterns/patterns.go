// Package patterns provides the built-in grok definition table and loaders for
// user definition files.
//
// Two file formats are understood. Plain-text pattern files hold one
// definition per line, the name and body separated by the first space:
//
//	# comments and blank lines are ignored
//	USERNAME [a-zA-Z0-9._-]+
//	USER %{USERNAME}
//
// YAML definition files carry a version and a list of definitions:
//
//	version: 1
//	definitions:
//	  - name: MYAPP
//	    pattern: '%{WORD:app}\[%{POSINT:pid}\]'
package patterns

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"sync"
)

// Definition is a named pattern fragment. Body may reference other
// definitions through %{NAME} placeholders.
type Definition struct {
	Name string `yaml:"name"`
	Body string `yaml:"pattern"`
}

//go:embed data/*.pattern
var builtinFS embed.FS

var builtin = sync.OnceValues(func() ([]Definition, error) {
	return loadFS(builtinFS, "data")
})

// Builtin returns the bundled definition table in file order (files sorted by
// name, lines in file order). The returned slice is a copy.
func Builtin() []Definition {
	defs, err := builtin()
	if err != nil {
		// The table is embedded at build time; a parse failure is a build defect.
		panic(fmt.Sprintf("patterns: bundled table is malformed: %v", err))
	}
	out := make([]Definition, len(defs))
	copy(out, defs)
	return out
}

func loadFS(fsys fs.FS, dir string) ([]Definition, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var defs []Definition
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := fs.ReadFile(fsys, dir+"/"+e.Name())
		if err != nil {
			return nil, err
		}
		parsed, err := ParseText(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		defs = append(defs, parsed...)
	}
	return defs, nil
}
