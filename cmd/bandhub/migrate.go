package main

import (
	"github.com/urfave/cli/v2"

	"github.com/bandhub/bandhub/internal/infrastructure/db/postgres"
)

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending database migrations and exit",
		Action: func(c *cli.Context) error {
			cfg, log, err := setup(c.Context)
			if err != nil {
				return err
			}
			db, err := postgres.Connect(c.Context, postgres.Config{DSN: cfg.Postgres.DSN})
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.Migrate(c.Context, db); err != nil {
				return err
			}
			log.Info().Msg("migrations applied")
			return nil
		},
	}
}
