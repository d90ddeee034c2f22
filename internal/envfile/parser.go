// Package envfile locates and parses KEY=value credential files. The format
// is deliberately forgiving: comments and blank lines are skipped, malformed
// lines are ignored without diagnostic, and a single layer of matching
// quotes is stripped from values verbatim (no escape processing).
package envfile

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Parse reads KEY=value pairs from r. Later occurrences of a key overwrite
// earlier ones.
func Parse(r io.Reader) map[string]string {
	values := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, raw, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		values[key] = unquote(strings.TrimSpace(raw))
	}

	return values
}

// ParseFile parses the file at path. An unreadable or missing file
// contributes an empty map: absence of a local credential file is an
// expected state, never an error.
func ParseFile(path string) map[string]string {
	f, err := os.Open(path)
	if err != nil {
		return map[string]string{}
	}
	defer f.Close()

	return Parse(f)
}

// unquote strips exactly one outer pair of matching single or double quotes.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}
