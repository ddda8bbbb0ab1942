package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deppfellow/fefu-exchange/internal/lib/email"
)

func emailPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "email-preview <template>",
		Short: "Render an e-mail template with sample data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := email.Preview(email.Template(args[0]))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), body)
			return err
		},
	}
}
