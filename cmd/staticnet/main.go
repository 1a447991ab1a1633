// Package main is the entry point for the staticnet CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/cmd/staticnet/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Root().ExecuteContext(ctx); err != nil {
		log.Err(err).Msg("staticnet failed")
		stop()
		os.Exit(1)
	}
}
