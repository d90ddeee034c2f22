// Package validation checks candidate credential values against the format
// patterns declared in the service registry. Checks are advisory: a value
// that fails a pattern may still be a working credential, so callers warn
// rather than reject.
package validation

import (
	"fmt"
	"regexp"

	"github.com/skillops/skillvault/internal/logging"
	"github.com/skillops/skillvault/internal/registry"
)

// Validator validates credential values against registry patterns.
type Validator struct {
	registry *registry.Registry
	logger   *logging.Logger
}

// New creates a validator bound to a registry.
func New(reg *registry.Registry, logger *logging.Logger) *Validator {
	return &Validator{registry: reg, logger: logger}
}

// Result is the outcome of a format check.
type Result struct {
	Valid      bool
	Diagnostic string
}

// Check validates a candidate value for a (service, key) pair. An unknown
// key fails with a diagnostic naming the key and service. A definition with
// no pattern passes unconditionally. Otherwise the whole value must match
// the pattern.
func (v *Validator) Check(serviceID, key, value string) Result {
	def, ok := v.registry.GetCredential(serviceID, key)
	if !ok {
		return Result{
			Valid:      false,
			Diagnostic: fmt.Sprintf("no credential '%s' defined for service '%s'", key, serviceID),
		}
	}

	if def.Pattern == "" {
		return Result{Valid: true}
	}

	// Registry patterns are stored unanchored; the whole value must match.
	re, err := regexp.Compile("^(?:" + def.Pattern + ")$")
	if err != nil {
		// A broken registry pattern must not condemn a possibly valid
		// credential. Report it and pass.
		v.logger.Debug("unusable pattern for %s: %v", key, err)
		return Result{
			Valid:      true,
			Diagnostic: fmt.Sprintf("pattern for '%s' does not compile: %v", key, err),
		}
	}

	if !re.MatchString(value) {
		return Result{
			Valid: false,
			Diagnostic: fmt.Sprintf("value %s for '%s' does not match expected format %s",
				logging.Mask(value), key, def.Pattern),
		}
	}

	return Result{Valid: true}
}
