package commands

import (
	"github.com/spf13/cobra"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/cmd/staticnet/handlers"
)

// Encode returns the command turning a JSON form file into network documents.
func Encode() *cobra.Command {
	return &cobra.Command{
		Use:   "encode FILE",
		Short: "Encode form values into network documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Encode(cmd.OutOrStdout(), args[0])
		},
	}
}
