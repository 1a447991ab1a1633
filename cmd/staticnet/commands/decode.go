package commands

import (
	"github.com/spf13/cobra"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/cmd/staticnet/handlers"
)

// Decode returns the command turning stored YAML documents into form values.
//
// Each --mac value is bound to the file at the same position and mapped to
// the real interface.
func Decode() *cobra.Command {
	var macs []string

	cmd := &cobra.Command{
		Use:   "decode FILE...",
		Short: "Decode network documents into form values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Decode(cmd.OutOrStdout(), args, macs)
		},
	}

	cmd.Flags().StringSliceVar(&macs, "mac", nil, "MAC address of the host described by each file")

	return cmd
}
