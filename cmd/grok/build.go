package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/loggrok/grok/pkg/grok"
	"github.com/loggrok/grok/pkg/grok/engine"
)

// compileFlags are the flags shared by commands that compile a pattern.
type compileFlags struct {
	definitions []string
	engine      string
	timeout     time.Duration
	aliasOnly   bool
}

func addDefinitionFlags(cmd *cobra.Command, f *compileFlags) {
	cmd.Flags().StringArrayVarP(&f.definitions, "definitions", "D", nil,
		"Definition file or glob (e.g. 'patterns/**/*.pattern'); repeatable")
}

func addCompileFlags(cmd *cobra.Command, f *compileFlags) {
	addDefinitionFlags(cmd, f)
	cmd.Flags().StringVar(&f.engine, "engine", engine.Regexp2Name,
		"Regex engine: "+strings.Join(engine.Names(), ", "))
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0,
		"Per-line match timeout for the regexp2 engine (0 = none)")
	cmd.Flags().BoolVar(&f.aliasOnly, "alias-only", false,
		"Only capture placeholders that have an alias")
}

// buildGrok creates a store holding the built-in definitions plus every file
// matched by the -D globs, in flag order.
func buildGrok(f *compileFlags, logger *slog.Logger) (*grok.Grok, error) {
	opts := []grok.Option{grok.WithLogger(logger)}

	switch f.engine {
	case "", engine.Regexp2Name:
		opts = append(opts, grok.WithMatchTimeout(f.timeout))
	default:
		e, ok := engine.ByName(f.engine)
		if !ok {
			return nil, fmt.Errorf("unknown engine %q (valid: %s)", f.engine, strings.Join(engine.Names(), ", "))
		}
		if f.timeout > 0 {
			logger.Warn("--timeout only applies to the regexp2 engine", "engine", f.engine)
		}
		opts = append(opts, grok.WithEngine(e))
	}

	g, err := grok.New(opts...)
	if err != nil {
		return nil, err
	}

	for i, glob := range f.definitions {
		if err := g.LoadDefinitionsGlob(glob); err != nil {
			return nil, fmt.Errorf("definitions %d: %w", i+1, err)
		}
	}
	return g, nil
}

func compilePattern(f *compileFlags, pattern string, logger *slog.Logger) (*grok.Pattern, error) {
	g, err := buildGrok(f, logger)
	if err != nil {
		return nil, err
	}
	return g.Compile(pattern, f.aliasOnly)
}
