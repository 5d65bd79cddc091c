package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// validFormats lists all valid output formats.
var validFormats = map[string]bool{
	"jsonl":  true,
	"pretty": true,
}

// Record is one matching input line.
type Record struct {
	// File is set when more than one input is read.
	File   string            `json:"file,omitempty"`
	Line   int               `json:"line"`
	Fields map[string]string `json:"fields"`
}

// outputRecord writes a record in the specified format to the writer.
func outputRecord(format string, r Record, out io.Writer) error {
	switch format {
	case "jsonl":
		return outputJSON(r, out)
	case "pretty":
		return outputPretty(r, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// outputJSON writes a record as JSON Lines format.
func outputJSON(r Record, out io.Writer) error {
	if r.Fields == nil {
		r.Fields = map[string]string{}
	}
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// outputPretty writes a record as "[file:]line: key=value ...".
func outputPretty(r Record, out io.Writer) error {
	loc := strconv.Itoa(r.Line)
	if r.File != "" {
		loc = r.File + ":" + loc
	}

	var err error
	if len(r.Fields) > 0 {
		_, err = fmt.Fprintf(out, "%s: %s\n", loc, formatData(r.Fields))
	} else {
		_, err = fmt.Fprintf(out, "%s: (no fields)\n", loc)
	}
	return err
}

// formatData formats a map as sorted key=value pairs.
// Values are quoted if they contain spaces, equals signs, quotes, or control characters.
func formatData(data map[string]string) string {
	if len(data) == 0 {
		return ""
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(data))
	for _, k := range keys {
		parts = append(parts, quoteIfNeeded(k)+"="+quoteIfNeeded(data[k]))
	}
	return strings.Join(parts, " ")
}

// quoteIfNeeded quotes a value if it contains special characters or control characters.
// Returns the value unchanged if no quoting is needed.
func quoteIfNeeded(v string) string {
	if v == "" {
		return `""`
	}

	needsQuote := false
	for _, c := range v {
		if c == ' ' || c == '=' || c == '"' || c == '\\' || c < 0x20 || c == 0x7F {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return v
	}

	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range v {
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c < 0x20 || c == 0x7F:
			fmt.Fprintf(&sb, `\x%02x`, c)
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
