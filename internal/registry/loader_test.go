package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBundled(t *testing.T) {
	t.Parallel()

	reg, err := Load()
	require.NoError(t, err)

	// The bundled catalog always ships these.
	for _, id := range []string{"porkbun", "twitter", "openai", "github", "stripe", "sendgrid"} {
		_, ok := reg.GetService(id)
		assert.True(t, ok, "bundled registry should include %s", id)
	}

	assert.Equal(t, SchemaVersion, reg.Version())
}

func TestLoadBundledFixtures(t *testing.T) {
	t.Parallel()

	reg, err := Load()
	require.NoError(t, err)

	// Porkbun declares two required keys.
	assert.Equal(t, []string{"PORKBUN_API_KEY", "PORKBUN_SECRET_KEY"}, reg.RequiredCredentials("porkbun"))

	cred, ok := reg.GetCredential("openai", "OPENAI_BASE_URL")
	require.True(t, ok)
	assert.False(t, cred.Required)
	assert.Equal(t, "https://api.openai.com/v1", cred.Default)

	bearer, ok := reg.GetCredential("twitter", "TWITTER_BEARER_TOKEN")
	require.True(t, ok)
	assert.Equal(t, TypeBearerToken, bearer.Type)
	assert.True(t, bearer.Required)
}

func writeServiceFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeServiceFile(t, dir, "example.yaml", `apiVersion: skillvault/v1
kind: Service
metadata:
  id: example
  name: Example
spec:
  credentials:
    - key: EXAMPLE_API_KEY
      type: api_key
      required: true
`)

	reg, err := NewDirLoader(dir).Load()
	require.NoError(t, err)

	svc, ok := reg.GetService("example")
	require.True(t, ok)
	assert.Equal(t, "Example", svc.Name)
	assert.Equal(t, []string{"EXAMPLE_API_KEY"}, reg.RequiredCredentials("example"))
}

func TestLoadDirRejectsInvalidDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		document string
		wantErr  string
	}{
		{
			name: "wrong kind",
			document: `apiVersion: skillvault/v1
kind: Widget
metadata:
  id: example
  name: Example
spec:
  credentials:
    - key: EXAMPLE_API_KEY
      type: api_key
`,
			wantErr: "invalid kind",
		},
		{
			name: "wrong apiVersion",
			document: `apiVersion: skillvault/v2
kind: Service
metadata:
  id: example
  name: Example
spec:
  credentials:
    - key: EXAMPLE_API_KEY
      type: api_key
`,
			wantErr: "unsupported apiVersion",
		},
		{
			name: "schema violation: lowercase credential key",
			document: `apiVersion: skillvault/v1
kind: Service
metadata:
  id: example
  name: Example
spec:
  credentials:
    - key: lowercase_key
      type: api_key
`,
			wantErr: "validation failed",
		},
		{
			name: "schema violation: unknown credential type",
			document: `apiVersion: skillvault/v1
kind: Service
metadata:
  id: example
  name: Example
spec:
  credentials:
    - key: EXAMPLE_API_KEY
      type: magic_beans
`,
			wantErr: "validation failed",
		},
		{
			name: "schema violation: no credentials",
			document: `apiVersion: skillvault/v1
kind: Service
metadata:
  id: example
  name: Example
spec:
  credentials: []
`,
			wantErr: "validation failed",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			writeServiceFile(t, dir, "bad.yaml", tt.document)

			_, err := NewDirLoader(dir).Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDirWithoutValidationSkipsSchema(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// Violates the schema's key pattern but is structurally sound.
	writeServiceFile(t, dir, "odd.yaml", `apiVersion: skillvault/v1
kind: Service
metadata:
  id: odd
  name: Odd
spec:
  credentials:
    - key: lowercase_key
      type: api_key
`)

	reg, err := NewDirLoaderWithoutValidation(dir).Load()
	require.NoError(t, err)

	_, ok := reg.GetCredential("odd", "lowercase_key")
	assert.True(t, ok)
}

func TestLoadDirRejectsDuplicateKeysAcrossServices(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeServiceFile(t, dir, "one.yaml", `apiVersion: skillvault/v1
kind: Service
metadata:
  id: one
  name: One
spec:
  credentials:
    - key: SHARED_KEY
      type: api_key
`)
	writeServiceFile(t, dir, "two.yaml", `apiVersion: skillvault/v1
kind: Service
metadata:
  id: two
  name: Two
spec:
  credentials:
    - key: SHARED_KEY
      type: api_key
`)

	_, err := NewDirLoader(dir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHARED_KEY")
	assert.Contains(t, err.Error(), "declared by both")
}
