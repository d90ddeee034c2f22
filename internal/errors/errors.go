// Package errors defines the user-facing error types for credential
// resolution. Fatal lookup failures always carry enough context to be
// actionable: a missing credential names the registry's setup URL and steps
// when the owning service is known.
package errors

import (
	"fmt"
	"strings"
)

// UserError is a general error shown to the user with helpful context.
type UserError struct {
	Message    string
	Details    string
	Suggestion string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// CredentialNotFoundError is returned when a lookup resolves to nothing and
// the vault is configured to fail on missing credentials. When the owning
// service is known from the registry, SetupURL and SetupSteps explain how to
// obtain the credential.
type CredentialNotFoundError struct {
	Key        string
	Service    string
	SetupURL   string
	SetupSteps []string
}

func (e CredentialNotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "credential '%s' not found", e.Key)

	if e.Service != "" {
		fmt.Fprintf(&b, " (required by service '%s')", e.Service)
	}
	if e.SetupURL != "" {
		fmt.Fprintf(&b, "\n  💡 Get one at: %s", e.SetupURL)
	}
	for i, step := range e.SetupSteps {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, step)
	}

	return b.String()
}

// UnknownCredentialError is returned by service-scoped lookups when the
// registry has no definition for the (service, key) pair. It signals a typo
// in the caller, not a missing secret, so it is fatal regardless of the
// vault's fail-on-missing setting.
type UnknownCredentialError struct {
	Service string
	Key     string
}

func (e UnknownCredentialError) Error() string {
	return fmt.Sprintf("service '%s' has no credential named '%s'; check the key against the registry", e.Service, e.Key)
}

// UnknownServiceError is returned when a service id has no registry entry.
type UnknownServiceError struct {
	Service string
}

func (e UnknownServiceError) Error() string {
	return fmt.Sprintf("unknown service '%s'; run 'skillvault list' to see registered services", e.Service)
}
