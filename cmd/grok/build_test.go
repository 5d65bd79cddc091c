package main

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/loggrok/grok/pkg/grok"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestBuildGrok_Builtins(t *testing.T) {
	g, err := buildGrok(&compileFlags{}, testLogger)
	if err != nil {
		t.Fatalf("buildGrok() error = %v", err)
	}
	if _, ok := g.Definition("COMBINEDAPACHELOG"); !ok {
		t.Error("built-in COMBINEDAPACHELOG missing")
	}
}

func TestBuildGrok_Definitions(t *testing.T) {
	g, err := buildGrok(&compileFlags{definitions: []string{"testdata/*.pattern"}}, testLogger)
	if err != nil {
		t.Fatalf("buildGrok() error = %v", err)
	}
	if _, ok := g.Definition("APPLINE"); !ok {
		t.Error("APPLINE not loaded from testdata")
	}
}

func TestBuildGrok_DefinitionsNoMatch(t *testing.T) {
	_, err := buildGrok(&compileFlags{definitions: []string{"testdata/*.missing"}}, testLogger)
	if err == nil {
		t.Fatal("buildGrok() expected error for glob without matches")
	}
	if !strings.HasPrefix(err.Error(), "definitions 1:") {
		t.Errorf("error = %q, want prefix %q", err, "definitions 1:")
	}
}

func TestBuildGrok_Engines(t *testing.T) {
	tests := []struct {
		engine  string
		timeout time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"regexp2", time.Second, false},
		{"re2", 0, false},
		{"re2", time.Second, false},
		{"pcre", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			_, err := buildGrok(&compileFlags{engine: tt.engine, timeout: tt.timeout}, testLogger)
			if (err != nil) != tt.wantErr {
				t.Errorf("buildGrok(engine=%q) error = %v, wantErr %v", tt.engine, err, tt.wantErr)
			}
		})
	}
}

func TestCompilePattern_Error(t *testing.T) {
	_, err := compilePattern(&compileFlags{}, "%{NOT_DEFINED_ANYWHERE}", testLogger)
	if !errors.Is(err, grok.ErrDefinitionNotFound) {
		t.Errorf("compilePattern() error = %v, want ErrDefinitionNotFound", err)
	}
}
