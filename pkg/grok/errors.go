package grok

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying each kind of compile failure. Use errors.Is to
// test a returned error against them.
var (
	// ErrRecursionTooDeep means expansion exceeded the recursion ceiling,
	// usually because a definition references itself directly or transitively.
	ErrRecursionTooDeep = errors.New("compilation recursion reached the limit")

	// ErrCompiledPatternIsEmpty means the pattern flattened to an empty expression.
	ErrCompiledPatternIsEmpty = errors.New("compiled pattern is empty")

	// ErrDefinitionNotFound means a placeholder named a definition the store lacks.
	ErrDefinitionNotFound = errors.New("pattern definition not found")

	// ErrRegexCompilationFailed means the regex engine rejected an expression.
	ErrRegexCompilationFailed = errors.New("regex compilation failed")

	// ErrGenericCompilationFailure means an internal invariant was violated.
	ErrGenericCompilationFailure = errors.New("unexpected compilation failure")
)

// CompileError describes a failed Compile call. Err is one of the sentinel
// errors above; Cause, when set, is the underlying engine error.
type CompileError struct {
	Err     error  // sentinel kind
	Pattern string // pattern passed to Compile
	Name    string // definition name, for ErrDefinitionNotFound
	Expr    string // offending expression, for ErrRegexCompilationFailed
	Limit   int    // recursion ceiling, for ErrRecursionTooDeep
	Cause   error
}

func (e *CompileError) Error() string {
	switch {
	case errors.Is(e.Err, ErrRecursionTooDeep):
		return fmt.Sprintf("%v (%d) while compiling %q", e.Err, e.Limit, e.Pattern)
	case errors.Is(e.Err, ErrCompiledPatternIsEmpty):
		return fmt.Sprintf("pattern %q compiled into an empty regex", e.Pattern)
	case errors.Is(e.Err, ErrDefinitionNotFound):
		return fmt.Sprintf("%v: %q", e.Err, e.Name)
	case errors.Is(e.Err, ErrRegexCompilationFailed):
		if e.Cause != nil {
			return fmt.Sprintf("%v: %q: %v", e.Err, e.Expr, e.Cause)
		}
		return fmt.Sprintf("%v: %q", e.Err, e.Expr)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%v: %v", e.Err, e.Cause)
	}
	return e.Err.Error()
}

// Is reports whether target is the sentinel kind of this error.
func (e *CompileError) Is(target error) bool {
	return target == e.Err
}

// Unwrap returns the underlying engine error, if any.
func (e *CompileError) Unwrap() error {
	return e.Cause
}
