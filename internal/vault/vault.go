// Package vault implements the credential resolution engine. A Vault answers
// "what is the value for this key" with a fixed precedence: the in-memory
// map (credential file contents merged with explicit overrides) first, then
// each fallback source in order, the process environment by default.
package vault

import (
	"fmt"
	"strings"

	"github.com/skillops/skillvault/internal/envfile"
	verrors "github.com/skillops/skillvault/internal/errors"
	"github.com/skillops/skillvault/internal/logging"
	"github.com/skillops/skillvault/internal/registry"
	"github.com/skillops/skillvault/internal/source"
	"github.com/skillops/skillvault/internal/validation"
)

// Options configures a Vault at construction time.
type Options struct {
	// Path is the credential file to load. Empty means locate the nearest
	// .env upward from the working directory.
	Path string

	// FailOnMissing makes Get return a CredentialNotFoundError when a key
	// resolves to nothing. When false, Get returns an empty string instead.
	FailOnMissing bool

	// Validate runs registry format checks on resolved values. Failures are
	// logged as warnings, never returned as errors: patterns are heuristic,
	// not authoritative.
	Validate bool
}

// DefaultOptions returns the standard configuration: locate the file, fail
// on missing credentials, warn on format mismatches.
func DefaultOptions() Options {
	return Options{FailOnMissing: true, Validate: true}
}

// Vault resolves credentials for one consuming process. The credential file
// is read exactly once at construction; Set mutates only the in-memory map
// and nothing is ever written back.
type Vault struct {
	opts    Options
	reg     *registry.Registry
	logger  *logging.Logger
	checker *validation.Validator
	values  map[string]string
	sources []source.Source
	path    string
}

// New constructs a vault. The registry is an injected read-only dependency.
// Extra sources are consulted after the process environment, in order; a
// shared vault backend would be wired in here.
func New(reg *registry.Registry, logger *logging.Logger, opts Options, extra ...source.Source) (*Vault, error) {
	path := opts.Path
	if path == "" {
		located, err := envfile.LocateFromWorkingDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate credential file: %w", err)
		}
		path = located
	}

	sources := make([]source.Source, 0, 1+len(extra))
	sources = append(sources, source.Env())
	sources = append(sources, extra...)

	return &Vault{
		opts:    opts,
		reg:     reg,
		logger:  logger,
		checker: validation.New(reg, logger),
		values:  envfile.ParseFile(path),
		sources: sources,
		path:    path,
	}, nil
}

// Path reports the credential file path the vault was constructed with,
// whether or not the file exists.
func (v *Vault) Path() string {
	return v.path
}

// Get resolves a credential by key: the in-memory map first, then each
// fallback source in order. An empty string is treated as absent at every
// level, so an explicitly empty entry does not shadow a later source.
//
// When the value is found and validation is enabled, the owning service is
// located by reverse lookup and the value is format-checked; a mismatch is
// logged as a warning and the value is still returned. When nothing is
// found, the result depends on FailOnMissing: a CredentialNotFoundError
// carrying any registry setup guidance, or an empty string.
func (v *Vault) Get(key string) (string, error) {
	if value, ok := v.values[key]; ok && value != "" {
		v.checkFormat(key, value)
		return value, nil
	}

	for _, src := range v.sources {
		value, ok, err := src.Lookup(key)
		if err != nil {
			v.logger.Warn("source %s failed for %s: %v", src.Name(), key, err)
			continue
		}
		if ok && value != "" {
			v.logger.Debug("resolved %s from %s", key, src.Name())
			v.checkFormat(key, value)
			return value, nil
		}
	}

	if !v.opts.FailOnMissing {
		return "", nil
	}
	return "", v.notFound(key)
}

// GetFor is Get scoped to a service: it rejects with UnknownCredentialError
// when the registry has no definition for the (service, key) pair, guarding
// against typos before any lookup happens.
func (v *Vault) GetFor(serviceID, key string) (string, error) {
	if _, ok := v.reg.GetService(serviceID); !ok {
		return "", verrors.UnknownServiceError{Service: serviceID}
	}
	if _, ok := v.reg.GetCredential(serviceID, key); !ok {
		return "", verrors.UnknownCredentialError{Service: serviceID, Key: key}
	}
	return v.Get(key)
}

// Has reports whether a key resolves to a non-empty value in the in-memory
// map or any fallback source. It never fails and never validates; source
// errors count as a miss.
func (v *Vault) Has(key string) bool {
	if value, ok := v.values[key]; ok && value != "" {
		return true
	}
	for _, src := range v.sources {
		if value, ok, err := src.Lookup(key); err == nil && ok && value != "" {
			return true
		}
	}
	return false
}

// Set overrides the in-memory value for a key. The override wins over file
// contents and every fallback source, is never persisted, and is validated
// lazily on the next Get.
func (v *Vault) Set(key, value string) {
	v.values[key] = value
}

// ServiceCredentials resolves every required credential of a service via
// Get. Under FailOnMissing the call is all-or-nothing: the first missing key
// aborts it.
func (v *Vault) ServiceCredentials(serviceID string) (map[string]string, error) {
	svc, ok := v.reg.GetService(serviceID)
	if !ok {
		return nil, verrors.UnknownServiceError{Service: serviceID}
	}

	creds := make(map[string]string)
	for _, key := range svc.RequiredKeys() {
		value, err := v.Get(key)
		if err != nil {
			return nil, err
		}
		creds[key] = value
	}
	return creds, nil
}

// ServiceStatus is the result of a pre-flight service check.
type ServiceStatus struct {
	Valid   bool
	Missing []string
}

// ValidateService checks that every required credential of a service is
// present, using Has. It is a cheap pre-flight: no values are returned, no
// formats are checked, and presence alone decides the outcome.
func (v *Vault) ValidateService(serviceID string) (ServiceStatus, error) {
	svc, ok := v.reg.GetService(serviceID)
	if !ok {
		return ServiceStatus{}, verrors.UnknownServiceError{Service: serviceID}
	}

	status := ServiceStatus{Valid: true}
	for _, key := range svc.RequiredKeys() {
		if !v.Has(key) {
			status.Valid = false
			status.Missing = append(status.Missing, key)
		}
	}
	return status, nil
}

// checkFormat runs the advisory registry format check on a resolved value.
func (v *Vault) checkFormat(key, value string) {
	if !v.opts.Validate {
		return
	}
	serviceID, ok := v.reg.FindServiceByCredential(key)
	if !ok {
		return
	}
	if result := v.checker.Check(serviceID, key, value); !result.Valid {
		v.logger.Warn("%s", result.Diagnostic)
	}
}

// notFound builds the actionable missing-credential error, enriched with the
// registry's setup guidance when the owning service is known.
func (v *Vault) notFound(key string) error {
	notFound := verrors.CredentialNotFoundError{Key: key}

	if serviceID, ok := v.reg.FindServiceByCredential(key); ok {
		notFound.Service = serviceID
		if guidance, ok := v.reg.SetupGuidance(serviceID, key); ok {
			notFound.SetupURL = guidance.URL
			notFound.SetupSteps = guidance.Steps
		}
	} else {
		v.logger.Debug("no registry entry owns %s; tried %s and sources [%s]",
			key, v.path, sourceNames(v.sources))
	}

	return notFound
}

func sourceNames(sources []source.Source) string {
	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = src.Name()
	}
	return strings.Join(names, ", ")
}
