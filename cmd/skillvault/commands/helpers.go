package commands

import (
	"github.com/skillops/skillvault/internal/logging"
	"github.com/skillops/skillvault/internal/registry"
	"github.com/skillops/skillvault/internal/source"
	"github.com/skillops/skillvault/internal/vault"
)

// App carries the state shared by all subcommands: global flag values plus
// the registry and logger built in the root command's PersistentPreRunE.
type App struct {
	Registry   *registry.Registry
	Logger     *logging.Logger
	EnvFile    string
	UseKeyring bool
}

// newVault builds a vault honoring the global flags.
func (a *App) newVault(opts vault.Options) (*vault.Vault, error) {
	if opts.Path == "" {
		opts.Path = a.EnvFile
	}

	var extra []source.Source
	if a.UseKeyring {
		extra = append(extra, source.Keyring(source.DefaultKeyringService))
	}

	return vault.New(a.Registry, a.Logger, opts, extra...)
}
