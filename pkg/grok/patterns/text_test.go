package patterns_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loggrok/grok/pkg/grok/patterns"
)

func TestParseText(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      []patterns.Definition
		wantErr   string
		wantCause error
	}{
		{
			name:  "simple",
			input: "USERNAME [a-zA-Z0-9._-]+\nUSER %{USERNAME}\n",
			want: []patterns.Definition{
				{Name: "USERNAME", Body: "[a-zA-Z0-9._-]+"},
				{Name: "USER", Body: "%{USERNAME}"},
			},
		},
		{
			name:  "comments and blank lines",
			input: "# header\n\nWORD \\b\\w+\\b\n",
			want:  []patterns.Definition{{Name: "WORD", Body: `\b\w+\b`}},
		},
		{
			// A whitespace-only line has no name before the first space.
			name:    "whitespace-only line",
			input:   "WORD x\n   \n",
			wantErr: "line 2",
		},
		{
			name:  "body keeps inner spaces",
			input: "SYSLOGBASE %{SYSLOGTIMESTAMP:timestamp} %{SYSLOGHOST:logsource}",
			want:  []patterns.Definition{{Name: "SYSLOGBASE", Body: "%{SYSLOGTIMESTAMP:timestamp} %{SYSLOGHOST:logsource}"}},
		},
		{
			name:  "crlf",
			input: "A a\r\nB b\r\n",
			want:  []patterns.Definition{{Name: "A", Body: "a"}, {Name: "B", Body: "b"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:    "missing body",
			input:   "ONLYNAME",
			wantErr: "line 1",
		},
		{
			name:      "invalid name",
			input:     "A a\nBAD-NAME x",
			wantErr:   "line 2",
			wantCause: patterns.ErrInvalidName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := patterns.ParseText([]byte(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				var defErr *patterns.DefinitionError
				assert.True(t, errors.As(err, &defErr))
				if tt.wantCause != nil {
					assert.ErrorIs(t, err, tt.wantCause)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuiltin(t *testing.T) {
	defs := patterns.Builtin()
	require.NotEmpty(t, defs)

	byName := make(map[string]string, len(defs))
	for _, d := range defs {
		byName[d.Name] = d.Body
	}
	for _, name := range []string{"USERNAME", "MAC", "COMBINEDAPACHELOG", "SYSLOGLINE", "TOMCATLOG", "HTTPD_ERRORLOG"} {
		assert.Contains(t, byName, name)
	}
	assert.Equal(t, `[a-zA-Z0-9._-]+`, byName["USERNAME"])

	// Callers get their own copy.
	defs[0].Body = "mutated"
	assert.NotEqual(t, "mutated", patterns.Builtin()[0].Body)
}
