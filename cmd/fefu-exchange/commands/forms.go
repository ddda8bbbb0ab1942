package commands

import (
	"github.com/spf13/cobra"

	"github.com/deppfellow/fefu-exchange/internal/config"
	"github.com/deppfellow/fefu-exchange/internal/forms"
	"github.com/deppfellow/fefu-exchange/internal/lib/utils"
)

func formsCmd() *cobra.Command {
	var domain string

	cmd := &cobra.Command{
		Use:   "forms [name]",
		Short: "Print form descriptors as JSON",
		Long:  "Without a name, lists the known forms. With one, prints that form's descriptor.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return utils.PrintJSON(cmd.OutOrStdout(), forms.Names())
			}

			form, err := forms.Get(args[0], domain)
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), form)
		},
	}

	cmd.Flags().StringVar(&domain, "domain", config.DefaultInstitutionalDomain, "institutional e-mail domain shown in help texts")
	return cmd
}
