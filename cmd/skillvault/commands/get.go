package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillops/skillvault/internal/vault"
)

func NewGetCommand(app *App) *cobra.Command {
	var (
		serviceID    string
		allowMissing bool
	)

	cmd := &cobra.Command{
		Use:   "get <KEY>",
		Short: "Resolve and print a single credential value",
		Long: `Resolve a credential and print the raw value to stdout, suitable for
command substitution in scripts. Resolution order is the .env file, explicit
overrides, then the process environment.

Examples:
  export TOKEN=$(skillvault get GITHUB_TOKEN)

  # Guard against typos by scoping to a service
  skillvault get PORKBUN_API_KEY --service porkbun

  # Empty output instead of an error when unset
  skillvault get OPENAI_ORG_ID --allow-missing`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			v, err := app.newVault(vault.Options{FailOnMissing: !allowMissing, Validate: true})
			if err != nil {
				return err
			}

			var value string
			if serviceID != "" {
				value, err = v.GetFor(serviceID, key)
			} else {
				value, err = v.Get(key)
			}
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), value)
			return nil
		},
	}

	cmd.Flags().StringVar(&serviceID, "service", "", "Reject keys the service does not declare")
	cmd.Flags().BoolVar(&allowMissing, "allow-missing", false, "Print an empty string instead of failing when unset")

	return cmd
}
