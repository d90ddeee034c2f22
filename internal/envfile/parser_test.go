package envfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{
			name:     "quoted and unquoted values with comments and blanks",
			input:    "K=\"v\"\nK2='v2'\n# comment\n\nK3=v3\n",
			expected: map[string]string{"K": "v", "K2": "v2", "K3": "v3"},
		},
		{
			name:     "last duplicate wins",
			input:    "A=1\nA=2\n",
			expected: map[string]string{"A": "2"},
		},
		{
			name:     "lines without equals are ignored",
			input:    "not a pair\nKEY=value\njunk\n",
			expected: map[string]string{"KEY": "value"},
		},
		{
			name:     "whitespace around key and value is trimmed",
			input:    "  SPACED_KEY =  spaced value  \n",
			expected: map[string]string{"SPACED_KEY": "spaced value"},
		},
		{
			name:     "value may contain equals signs",
			input:    "URL=postgres://u:p@host/db?sslmode=require\n",
			expected: map[string]string{"URL": "postgres://u:p@host/db?sslmode=require"},
		},
		{
			name:     "mismatched quotes are kept verbatim",
			input:    "A=\"half\nB='other\"\n",
			expected: map[string]string{"A": "\"half", "B": "'other\""},
		},
		{
			name:     "only one quote layer is stripped",
			input:    `A="'nested'"` + "\n",
			expected: map[string]string{"A": "'nested'"},
		},
		{
			name:     "no escape processing inside quotes",
			input:    `A="a\nb"` + "\n",
			expected: map[string]string{"A": `a\nb`},
		},
		{
			name:     "empty value is preserved in the map",
			input:    "EMPTY=\n",
			expected: map[string]string{"EMPTY": ""},
		},
		{
			name:     "empty key is skipped",
			input:    "=value\n",
			expected: map[string]string{},
		},
		{
			name:     "empty input",
			input:    "",
			expected: map[string]string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Parse(strings.NewReader(tt.input)))
		})
	}
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	t.Run("reads an existing file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("TOKEN=abc123\n"), 0o600))

		assert.Equal(t, map[string]string{"TOKEN": "abc123"}, ParseFile(path))
	})

	t.Run("missing file contributes an empty map", func(t *testing.T) {
		t.Parallel()
		values := ParseFile(filepath.Join(t.TempDir(), "does-not-exist"))
		assert.NotNil(t, values)
		assert.Empty(t, values)
	})
}
