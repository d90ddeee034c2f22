package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	verrors "github.com/skillops/skillvault/internal/errors"
	"github.com/skillops/skillvault/internal/validation"
	"github.com/skillops/skillvault/internal/vault"
)

func NewValidateCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <service> <KEY>",
		Short: "Check a resolved credential against its registry format",
		Long: `Resolve a credential and run the registry's format pattern against it.
Format mismatches are reported as warnings; the exit code only reflects
whether the credential is present at all, because patterns are best-effort.

Examples:
  skillvault validate porkbun PORKBUN_API_KEY`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			serviceID, key := args[0], args[1]
			out := cmd.OutOrStdout()

			if _, ok := app.Registry.GetCredential(serviceID, key); !ok {
				if _, ok := app.Registry.GetService(serviceID); !ok {
					return verrors.UnknownServiceError{Service: serviceID}
				}
				return verrors.UnknownCredentialError{Service: serviceID, Key: key}
			}

			// Validation is run explicitly below; the vault only resolves.
			v, err := app.newVault(vault.Options{FailOnMissing: false, Validate: false})
			if err != nil {
				return err
			}

			value, err := v.Get(key)
			if err != nil {
				return err
			}
			if value == "" {
				return verrors.UserError{
					Message:    fmt.Sprintf("Credential '%s' is not set", key),
					Suggestion: fmt.Sprintf("Run 'skillvault add %s' to store it", key),
				}
			}

			checker := validation.New(app.Registry, app.Logger)
			result := checker.Check(serviceID, key, value)
			if result.Valid {
				fmt.Fprintf(out, "✓ %s matches the expected format\n", key)
			} else {
				app.Logger.Warn("%s", result.Diagnostic)
				fmt.Fprintf(out, "⚠ %s is set but does not match the expected format\n", key)
			}

			return nil
		},
	}

	return cmd
}
