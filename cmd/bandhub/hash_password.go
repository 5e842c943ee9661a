package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bandhub/bandhub/internal/infrastructure/hasher"
)

func hashPasswordCmd() *cli.Command {
	return &cli.Command{
		Name:      "hash-password",
		Usage:     "Print the bcrypt hash of a password for seeding user rows",
		ArgsUsage: "<password>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "cost",
				Usage: "bcrypt work factor",
				Value: hasher.DefaultCost,
			},
		},
		Action: func(c *cli.Context) error {
			plain := strings.TrimSpace(c.Args().First())
			if plain == "" {
				return errors.New("hash-password: password argument is required")
			}
			hash, err := hasher.NewBcrypt(c.Int("cost")).Hash(plain)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, hash)
			return err
		},
	}
}
