package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillops/skillvault/internal/envfile"
	verrors "github.com/skillops/skillvault/internal/errors"
	"github.com/skillops/skillvault/internal/secure"
	"github.com/skillops/skillvault/internal/validation"
)

func NewAddCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <KEY> [VALUE]",
		Short: "Add or update a credential in the .env file",
		Long: `Write a credential into the nearest .env file (or the file given with
--env-file), creating the file when needed. When VALUE is omitted it is read
from stdin, held in protected memory until written.

The value is checked against the registry's format pattern for the key; a
mismatch is a warning, not a rejection.

Examples:
  # Value on the command line
  skillvault add PORKBUN_API_KEY pk1_abc...

  # Prompted, value never appears in shell history
  skillvault add OPENAI_API_KEY`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			var value string
			if len(args) == 2 {
				value = args[1]
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "Enter value for %s: ", key)
				input, err := secure.ReadLine(cmd.InOrStdin())
				if err != nil {
					return verrors.UserError{
						Message:    fmt.Sprintf("Failed to read value for '%s'", key),
						Details:    err.Error(),
						Suggestion: "Pass the value as the second argument, or pipe it on stdin",
						Err:        err,
					}
				}
				defer input.Destroy()
				value = string(input.Bytes())
			}

			if value == "" {
				return verrors.UserError{
					Message:    "Refusing to store an empty value",
					Suggestion: "An empty credential is treated as missing by every lookup",
				}
			}

			// Advisory format check against the registry.
			if serviceID, ok := app.Registry.FindServiceByCredential(key); ok {
				checker := validation.New(app.Registry, app.Logger)
				if result := checker.Check(serviceID, key, value); !result.Valid {
					app.Logger.Warn("%s", result.Diagnostic)
				}
			} else {
				app.Logger.Warn("no registered service declares '%s'; storing it anyway", key)
			}

			path := app.EnvFile
			if path == "" {
				located, err := envfile.LocateFromWorkingDir()
				if err != nil {
					return fmt.Errorf("failed to locate credential file: %w", err)
				}
				path = located
			}

			if err := envfile.Upsert(path, key, value); err != nil {
				return verrors.UserError{
					Message:    fmt.Sprintf("Failed to write '%s' to %s", key, path),
					Details:    err.Error(),
					Suggestion: "Check that the directory exists and is writable",
					Err:        err,
				}
			}

			app.Logger.Info("stored %s in %s", key, path)
			return nil
		},
	}

	return cmd
}
