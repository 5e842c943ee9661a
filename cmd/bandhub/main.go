package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "bandhub",
		Usage: "Band fan site: catalog, accounts and webboards",
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
			hashPasswordCmd(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("application failed")
		cancel()
		os.Exit(1)
	}
}
