package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	verrors "github.com/skillops/skillvault/internal/errors"
)

func NewListCommand(app *App) *cobra.Command {
	var serviceID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered services and their credential keys",
		Long: `List every service in the registry with its credential keys, or the full
credential detail of one service with --service.

Examples:
  skillvault list
  skillvault list --service twitter`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if serviceID != "" {
				svc, ok := app.Registry.GetService(serviceID)
				if !ok {
					return verrors.UnknownServiceError{Service: serviceID}
				}

				fmt.Fprintf(out, "%s: %s\n", svc.Name, svc.Description)
				if svc.Docs != "" {
					fmt.Fprintf(out, "docs: %s\n", svc.Docs)
				}

				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "KEY\tTYPE\tREQUIRED\tDESCRIPTION")
				for _, cred := range svc.Credentials {
					required := ""
					if cred.Required {
						required = "yes"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cred.Key, cred.Type, required, cred.Description)
				}
				return w.Flush()
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SERVICE\tNAME\tCREDENTIALS")
			for _, id := range app.Registry.ListServices() {
				svc, _ := app.Registry.GetService(id)
				fmt.Fprintf(w, "%s\t%s\t%d\n", id, svc.Name, len(svc.Credentials))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&serviceID, "service", "", "Show credential detail for one service")

	return cmd
}
