package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	verrors "github.com/skillops/skillvault/internal/errors"
	"github.com/skillops/skillvault/internal/vault"
)

func NewCheckCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <service>",
		Short: "Pre-flight check that a service's required credentials are present",
		Long: `Check whether every required credential for a service resolves to a value,
without fetching or validating anything. Missing keys are listed together
with the registry's setup guidance.

Examples:
  skillvault check porkbun
  skillvault check twitter --env-file ./skills/.env`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serviceID := args[0]
			out := cmd.OutOrStdout()

			v, err := app.newVault(vault.Options{FailOnMissing: false, Validate: false})
			if err != nil {
				return err
			}

			status, err := v.ValidateService(serviceID)
			if err != nil {
				return err
			}

			svc, _ := app.Registry.GetService(serviceID)
			for _, key := range svc.RequiredKeys() {
				if v.Has(key) {
					fmt.Fprintf(out, "  ✓ %s\n", key)
				} else {
					fmt.Fprintf(out, "  ✗ %s (missing)\n", key)
				}
			}

			if status.Valid {
				fmt.Fprintf(out, "%s: all required credentials present\n", serviceID)
				return nil
			}

			for _, key := range status.Missing {
				if guidance, ok := app.Registry.SetupGuidance(serviceID, key); ok && guidance.URL != "" {
					fmt.Fprintf(out, "  %s → %s\n", key, guidance.URL)
				}
			}

			return verrors.UserError{
				Message:    fmt.Sprintf("Service '%s' is missing %d required credential(s)", serviceID, len(status.Missing)),
				Suggestion: fmt.Sprintf("Run 'skillvault add %s' to store it", status.Missing[0]),
			}
		},
	}

	return cmd
}
