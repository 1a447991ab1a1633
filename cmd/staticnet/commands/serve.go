package commands

import (
	"github.com/spf13/cobra"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/cmd/staticnet/handlers"
)

// Serve returns the command running the HTTP API.
//
// Environment variables:
//
//	STATICNET_DATABASE_URL: PostgreSQL connection string (required unless set in --config)
//	STATICNET_LISTEN_ADDRESS: listen address, default :8080
//	STATICNET_CACHE_TTL: lifetime of cached host group lookups, default 5m
//	STATICNET_AUTO_MIGRATE: create the tables on startup
func Serve() *cobra.Command {
	var (
		configPath string
		envFiles   []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the static network API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Serve(cmd.Context(), configPath, envFiles...)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "Additional .env files to load")

	return cmd
}
