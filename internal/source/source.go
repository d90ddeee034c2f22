// Package source defines the fallback lookup sources a vault consults after
// its in-memory credential map. The Source interface is also the extension
// point for shared, network-backed credential stores: such a source would
// own its timeout and retry policy behind Lookup.
package source

import "os"

// Source answers credential lookups from one backing store.
type Source interface {
	// Name identifies the source in logs and diagnostics.
	Name() string

	// Lookup returns the value for key and whether it was found. An error
	// means the source itself failed (locked keychain, unreachable backend)
	// and is distinct from a simple miss.
	Lookup(key string) (string, bool, error)
}

// envSource reads the ambient process environment.
type envSource struct{}

// Env returns the process-environment source, the conventional lowest
// priority fallback for every lookup.
func Env() Source {
	return envSource{}
}

func (envSource) Name() string {
	return "env"
}

func (envSource) Lookup(key string) (string, bool, error) {
	value, ok := os.LookupEnv(key)
	return value, ok, nil
}

// Static is a fixed key-value source for tests and scripted setups.
type Static struct {
	SourceName string
	Values     map[string]string
}

func (s *Static) Name() string {
	if s.SourceName == "" {
		return "static"
	}
	return s.SourceName
}

func (s *Static) Lookup(key string) (string, bool, error) {
	value, ok := s.Values[key]
	return value, ok, nil
}
