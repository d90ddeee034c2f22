package registry

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the service document version this loader accepts.
const SchemaVersion = "skillvault/v1"

//go:embed data/*.yaml
var bundledData embed.FS

//go:embed schema/service.schema.json
var serviceSchema []byte

// Loader reads service definition documents from a filesystem.
type Loader struct {
	fsys             fs.FS
	root             string
	enableValidation bool
}

// NewLoader creates a loader over the bundled registry data.
func NewLoader() *Loader {
	sub, err := fs.Sub(bundledData, "data")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return &Loader{fsys: sub, root: ".", enableValidation: true}
}

// NewDirLoader creates a loader over an on-disk directory of service
// definition files. Used for registry overrides and tests.
func NewDirLoader(dir string) *Loader {
	return &Loader{fsys: os.DirFS(dir), root: ".", enableValidation: true}
}

// NewDirLoaderWithoutValidation skips JSON schema validation. Tests use this
// to construct deliberately odd registries.
func NewDirLoaderWithoutValidation(dir string) *Loader {
	return &Loader{fsys: os.DirFS(dir), root: ".", enableValidation: false}
}

// Load parses, schema-validates, and assembles all service documents into a
// registry. Key-uniqueness invariants are enforced by New.
func (l *Loader) Load() (*Registry, error) {
	var defs []ServiceDefinition

	err := fs.WalkDir(l.fsys, l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".yaml") {
			return nil
		}

		data, err := fs.ReadFile(l.fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read service file %s: %w", path, err)
		}

		var doc ServiceDocument
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to unmarshal service file %s: %w", path, err)
		}

		if doc.Kind != "Service" {
			return fmt.Errorf("invalid kind in %s: expected Service, got %s", path, doc.Kind)
		}
		if doc.APIVersion != SchemaVersion {
			return fmt.Errorf("unsupported apiVersion in %s: expected %s, got %s", path, SchemaVersion, doc.APIVersion)
		}

		if err := l.validateWithSchema(&doc); err != nil {
			return fmt.Errorf("validation failed for %s: %w", path, err)
		}

		defs = append(defs, doc.Definition())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load service registry: %w", err)
	}

	return New(SchemaVersion, defs)
}

// validateWithSchema checks one document against the bundled JSON schema.
func (l *Loader) validateWithSchema(doc *ServiceDocument) error {
	if !l.enableValidation {
		return nil
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document for validation: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(serviceSchema),
		gojsonschema.NewBytesLoader(jsonData),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		var messages []string
		for _, desc := range result.Errors() {
			messages = append(messages, desc.String())
		}
		return fmt.Errorf("schema validation failed:\n  - %s", strings.Join(messages, "\n  - "))
	}

	return nil
}

// Load builds the registry from the data bundled into the binary.
func Load() (*Registry, error) {
	return NewLoader().Load()
}
