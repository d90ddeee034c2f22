// Package registry holds the static catalog of services and their credential
// definitions. The catalog is loaded once at process start, read-only
// thereafter, and injected into consumers rather than accessed as ambient
// state so that tests can substitute fake registries.
package registry

import (
	"fmt"
	"sort"
	"strings"
)

// Registry is the full, immutable set of service definitions.
type Registry struct {
	version  string
	services map[string]*ServiceDefinition
	owner    map[string]string // credential key -> owning service id
}

// New builds a registry from the given definitions. The returned registry is
// validated: service ids and credential keys must be unique across the whole
// set.
func New(version string, defs []ServiceDefinition) (*Registry, error) {
	r := &Registry{
		version:  version,
		services: make(map[string]*ServiceDefinition, len(defs)),
		owner:    make(map[string]string),
	}

	var problems []string
	for i := range defs {
		def := defs[i]
		if def.ID == "" {
			problems = append(problems, "service definition with empty id")
			continue
		}
		if _, dup := r.services[def.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate service id '%s'", def.ID))
			continue
		}
		r.services[def.ID] = &def

		for _, cred := range def.Credentials {
			if owner, dup := r.owner[cred.Key]; dup {
				problems = append(problems, fmt.Sprintf("credential key '%s' declared by both '%s' and '%s'", cred.Key, owner, def.ID))
				continue
			}
			r.owner[cred.Key] = def.ID
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid registry:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return r, nil
}

// Version reports the schema version the registry was loaded under.
func (r *Registry) Version() string {
	return r.version
}

// GetService returns the definition for a service id.
func (r *Registry) GetService(id string) (*ServiceDefinition, bool) {
	svc, ok := r.services[id]
	return svc, ok
}

// GetCredential returns the credential definition for a (service, key) pair.
func (r *Registry) GetCredential(serviceID, key string) (*CredentialDefinition, bool) {
	svc, ok := r.services[serviceID]
	if !ok {
		return nil, false
	}
	return svc.Credential(key)
}

// RequiredCredentials lists the required credential keys for a service.
func (r *Registry) RequiredCredentials(serviceID string) []string {
	svc, ok := r.services[serviceID]
	if !ok {
		return nil
	}
	return svc.RequiredKeys()
}

// FindServiceByCredential reverse-looks-up which service owns a credential
// key. Keys are unique across the registry, so at most one service matches.
func (r *Registry) FindServiceByCredential(key string) (string, bool) {
	id, ok := r.owner[key]
	return id, ok
}

// ListServices returns all service ids, sorted.
func (r *Registry) ListServices() []string {
	ids := make([]string, 0, len(r.services))
	for id := range r.services {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ListCredentialKeys returns every credential key in the registry, sorted.
func (r *Registry) ListCredentialKeys() []string {
	keys := make([]string, 0, len(r.owner))
	for key := range r.owner {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Guidance is setup help for obtaining a credential.
type Guidance struct {
	URL   string
	Steps []string
}

// SetupGuidance returns setup help for a (service, key) pair. Credential
// level guidance wins; the service's website and top-level setup steps fill
// the gaps.
func (r *Registry) SetupGuidance(serviceID, key string) (Guidance, bool) {
	svc, ok := r.services[serviceID]
	if !ok {
		return Guidance{}, false
	}

	g := Guidance{URL: svc.Website, Steps: svc.SetupSteps}
	if cred, ok := svc.Credential(key); ok {
		if cred.SetupURL != "" {
			g.URL = cred.SetupURL
		}
		if len(cred.SetupSteps) > 0 {
			g.Steps = cred.SetupSteps
		}
	}
	return g, true
}
