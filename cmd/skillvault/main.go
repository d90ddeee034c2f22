package main

import (
	"fmt"
	"os"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"github.com/skillops/skillvault/cmd/skillvault/commands"
	"github.com/skillops/skillvault/internal/logging"
	"github.com/skillops/skillvault/internal/registry"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Wipe any protected buffers left behind by interactive input.
	defer memguard.Purge()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		envFile    string
		noColor    bool
		debug      bool
		useKeyring bool
	)

	app := &commands.App{}

	rootCmd := &cobra.Command{
		Use:   "skillvault",
		Short: "Credential resolution for skills and automation",
		Long: `skillvault resolves named credentials (API keys, tokens, secrets) for
scripts that call third-party services. Values come from the nearest .env
file, explicit overrides, and the process environment, in that order, with
setup guidance from the service registry when something is missing.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.Logger = logging.New(debug, noColor)
			app.EnvFile = envFile
			app.UseKeyring = useKeyring

			reg, err := registry.Load()
			if err != nil {
				return fmt.Errorf("failed to load service registry: %w", err)
			}
			app.Registry = reg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Credential file path (default: nearest .env)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&useKeyring, "keyring", false, "Also consult the OS keychain as a fallback source")

	rootCmd.AddCommand(
		commands.NewAddCommand(app),
		commands.NewCheckCommand(app),
		commands.NewGetCommand(app),
		commands.NewListCommand(app),
		commands.NewValidateCommand(app),
	)

	return rootCmd.Execute()
}
