package commands

import (
	"github.com/spf13/cobra"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/cmd/staticnet/handlers"
)

// Validate returns the command reporting validation failures of a JSON form file.
func Validate() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate form values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Validate(cmd.OutOrStdout(), args[0])
		},
	}
}
