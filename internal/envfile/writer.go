package envfile

import (
	"os"
	"strings"
)

// Upsert writes key=value into the file at path, replacing the last existing
// assignment of key or appending one. Comments, blank lines, and unrelated
// entries are preserved byte-for-byte. The file is created with 0600 when it
// does not exist yet.
func Upsert(path, key, value string) error {
	var lines []string
	if data, err := os.ReadFile(path); err == nil {
		lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		if len(lines) == 1 && lines[0] == "" {
			lines = nil
		}
	}

	assignment := key + "=" + value

	// Replace the last assignment so the edit wins under the parser's
	// last-occurrence-wins rule.
	replaced := false
	for i := len(lines) - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		k, _, found := strings.Cut(trimmed, "=")
		if found && strings.TrimSpace(k) == key {
			lines[i] = assignment
			replaced = true
			break
		}
	}
	if !replaced {
		lines = append(lines, assignment)
	}

	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600)
}
