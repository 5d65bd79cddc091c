package patterns

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// ParseText parses the plain-text pattern format: one "NAME body" pair per
// line, split on the first space. Blank lines and lines starting with '#' are
// skipped. Trailing carriage returns are dropped so CRLF files load cleanly.
func ParseText(data []byte) ([]Definition, error) {
	var defs []Definition

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), MaxFileSize)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, body, ok := strings.Cut(line, " ")
		if !ok || name == "" {
			return nil, &DefinitionError{
				Index:   lineNo - 1,
				Name:    name,
				Field:   "line",
				Message: fmt.Sprintf("line %d: expected \"NAME pattern\"", lineNo),
			}
		}
		if !validName(name) {
			return nil, &DefinitionError{
				Index:   lineNo - 1,
				Name:    name,
				Field:   "name",
				Message: fmt.Sprintf("line %d: name must match [A-Za-z0-9_]+", lineNo),
				Cause:   ErrInvalidName,
			}
		}

		defs = append(defs, Definition{Name: name, Body: body})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pattern text: %w", err)
	}

	return defs, nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return true
}
