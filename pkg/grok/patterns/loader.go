package patterns

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/loggrok/grok/internal/safefile"
)

const (
	// MaxFileSize is the maximum allowed size for a definition file (1MB).
	MaxFileSize = 1 * 1024 * 1024

	// MaxPatternLength is the maximum allowed length of a single definition
	// body in a YAML definition file.
	MaxPatternLength = 4096

	// MaxDefinitionCount is the maximum number of definitions in one YAML file.
	MaxDefinitionCount = 1000

	// SupportedVersion is the currently supported YAML file format version.
	SupportedVersion = 1
)

// DefinitionFile is the structure of a YAML definition file.
type DefinitionFile struct {
	// Version is the file format version. Only version 1 is supported.
	Version int `yaml:"version"`

	// Definitions is the list of named pattern fragments.
	Definitions []Definition `yaml:"definitions"`
}

// sanitizePathError removes the path from os.PathError so error messages do
// not expose file system layout.
func sanitizePathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%s: %w", pathErr.Op, pathErr.Err)
	}
	return err
}

// Load reads a definition file. Files ending in .yaml or .yml are parsed as
// YAML definition files; anything else uses the plain-text format.
//
// Only regular files up to MaxFileSize are accepted.
func Load(path string) ([]Definition, error) {
	data, err := safefile.ReadRegular(path, MaxFileSize)
	if err != nil {
		if errors.Is(err, safefile.ErrTooLarge) {
			return nil, fmt.Errorf("definition file too large (max %d bytes)", MaxFileSize)
		}
		return nil, fmt.Errorf("failed to read definition file: %w", sanitizePathError(err))
	}
	if len(data) == 0 {
		return nil, errors.New("definition file is empty")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		df, err := LoadBytes(data)
		if err != nil {
			return nil, err
		}
		return df.Definitions, nil
	default:
		return ParseText(data)
	}
}

// LoadGlob loads every file matching a doublestar glob such as
// "patterns/**/*.pattern". Files are loaded in sorted path order and their
// definitions concatenated, so later files override earlier ones when
// inserted into a store. A glob that matches nothing is an error.
func LoadGlob(pattern string) ([]Definition, error) {
	paths, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("glob %q matched no files", pattern)
	}
	sort.Strings(paths)

	var defs []Definition
	for i, p := range paths {
		loaded, err := Load(p)
		if err != nil {
			return nil, fmt.Errorf("definition file %d: %w", i+1, err)
		}
		defs = append(defs, loaded...)
	}
	return defs, nil
}

// LoadBytes parses and validates a YAML definition file.
func LoadBytes(data []byte) (*DefinitionFile, error) {
	if len(data) == 0 {
		return nil, errors.New("definition file is empty")
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("definition file too large: %d bytes (max %d)", len(data), MaxFileSize)
	}

	var df DefinitionFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := df.Validate(); err != nil {
		return nil, err
	}

	return &df, nil
}

// Validate performs schema-level validation. It does not compile anything:
// placeholder and regex errors surface when a pattern using the definition is
// compiled.
func (df *DefinitionFile) Validate() error {
	if df.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", df.Version, SupportedVersion),
		}
	}

	if len(df.Definitions) == 0 {
		return &ValidationError{
			Field:   "definitions",
			Message: "at least one definition is required",
		}
	}

	if len(df.Definitions) > MaxDefinitionCount {
		return &ValidationError{
			Field:   "definitions",
			Message: fmt.Sprintf("too many definitions (%d), maximum allowed is %d", len(df.Definitions), MaxDefinitionCount),
		}
	}

	seen := make(map[string]int, len(df.Definitions))
	for i, d := range df.Definitions {
		if d.Name == "" {
			return &DefinitionError{Index: i, Field: "name", Message: "name is required"}
		}
		if !validName(d.Name) {
			return &DefinitionError{Index: i, Name: d.Name, Field: "name", Message: "name must match [A-Za-z0-9_]+", Cause: ErrInvalidName}
		}
		if d.Body == "" {
			return &DefinitionError{Index: i, Name: d.Name, Field: "pattern", Message: "pattern is required"}
		}
		if prev, ok := seen[d.Name]; ok {
			return &DefinitionError{
				Index:   i,
				Name:    d.Name,
				Field:   "name",
				Message: fmt.Sprintf("duplicate name (previously defined at definitions[%d])", prev),
			}
		}
		seen[d.Name] = i

		if len(d.Body) > MaxPatternLength {
			return &DefinitionError{
				Index:   i,
				Name:    d.Name,
				Field:   "pattern",
				Message: fmt.Sprintf("pattern too long: %d bytes (max %d)", len(d.Body), MaxPatternLength),
				Cause:   ErrPatternTooLong,
			}
		}
	}

	return nil
}
