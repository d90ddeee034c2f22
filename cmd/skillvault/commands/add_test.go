package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillops/skillvault/internal/logging"
	"github.com/skillops/skillvault/internal/registry"
)

// testApp builds an App over the bundled registry with captured logging.
func testApp(t *testing.T, envFile string) (*App, *bytes.Buffer) {
	t.Helper()

	reg, err := registry.Load()
	require.NoError(t, err)

	var logs bytes.Buffer
	return &App{
		Registry: reg,
		Logger:   logging.NewWithWriter(&logs, false, true),
		EnvFile:  envFile,
	}, &logs
}

func TestAddCommand_ValueArgument(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	app, _ := testApp(t, path)

	cmd := NewAddCommand(app)
	cmd.SetArgs([]string{"PORKBUN_API_KEY", "pk1_" + strings.Repeat("a", 64)})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "PORKBUN_API_KEY=pk1_"+strings.Repeat("a", 64)+"\n", string(data))
}

func TestAddCommand_PromptsWhenValueOmitted(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	app, _ := testApp(t, path)

	cmd := NewAddCommand(app)
	cmd.SetIn(strings.NewReader("pk1_" + strings.Repeat("b", 64) + "\n"))
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"PORKBUN_API_KEY"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "PORKBUN_API_KEY=pk1_"+strings.Repeat("b", 64))
}

func TestAddCommand_UpdatesExistingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# skills\nPORKBUN_API_KEY=old\nOTHER=keep\n"), 0o600))

	app, _ := testApp(t, path)

	cmd := NewAddCommand(app)
	cmd.SetArgs([]string{"PORKBUN_API_KEY", "pk1_" + strings.Repeat("c", 64)})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# skills\n")
	assert.Contains(t, string(data), "OTHER=keep\n")
	assert.NotContains(t, string(data), "PORKBUN_API_KEY=old")
}

func TestAddCommand_WarnsOnFormatMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	app, logs := testApp(t, path)

	cmd := NewAddCommand(app)
	cmd.SetArgs([]string{"PORKBUN_API_KEY", "wrong-shape"})
	require.NoError(t, cmd.Execute(), "format mismatch is a warning, not a rejection")

	assert.Contains(t, logs.String(), "PORKBUN_API_KEY")
	assert.Contains(t, logs.String(), "expected format")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "PORKBUN_API_KEY=wrong-shape")
}

func TestAddCommand_WarnsOnUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	app, logs := testApp(t, path)

	cmd := NewAddCommand(app)
	cmd.SetArgs([]string{"MYSTERY_KEY", "value"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, logs.String(), "no registered service declares 'MYSTERY_KEY'")
}

func TestAddCommand_RejectsEmptyValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	app, _ := testApp(t, path)

	cmd := NewAddCommand(app)
	cmd.SetArgs([]string{"PORKBUN_API_KEY", ""})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty value")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing should be written")
}
