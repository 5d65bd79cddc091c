package patterns

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by DefinitionError, for use with errors.Is.
var (
	// ErrInvalidName means a definition name is not made of [A-Za-z0-9_].
	ErrInvalidName = errors.New("invalid definition name")

	// ErrPatternTooLong means a definition body exceeds MaxPatternLength.
	ErrPatternTooLong = errors.New("pattern too long")
)

// ValidationError represents a file-level validation error, such as an
// unsupported version or an empty definition list.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// DefinitionError represents an error in a single definition entry.
// For text files Index is the 0-based line number.
type DefinitionError struct {
	Index   int    // 0-based index of the entry in the file
	Name    string // definition name (may be empty if missing)
	Field   string
	Message string
	Cause   error
}

func (e *DefinitionError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("definition %q: %s: %s", e.Name, e.Field, e.Message)
	}
	return fmt.Sprintf("definition[%d]: %s: %s", e.Index, e.Field, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *DefinitionError) Unwrap() error {
	return e.Cause
}
