package cmd

import (
	"context"
	"os"

	zlog "github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/mechstore/go-mechstore/app/configs"
	"github.com/mechstore/go-mechstore/app/db/seeders"
	"github.com/mechstore/go-mechstore/app/models/migrations"
)

func RunCli() {
	cmd := &cli.Command{
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(configs.LoadEnv())
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					zlog.Info().Msg("migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Load demo catalog data",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(configs.LoadEnv())
					if err != nil {
						return err
					}
					if err := seeders.DBSeed(db); err != nil {
						return err
					}
					zlog.Info().Msg("seed complete")
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		zlog.Fatal().Err(err).Msg("command failed")
	}
}
