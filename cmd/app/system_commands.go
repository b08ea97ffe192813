package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/earkms/cmd/app/commands"
	"github.com/allisson/earkms/internal/app"
	"github.com/allisson/earkms/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the operational HTTP server",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "reconcile-tenant-id",
					Value: "",
					Usage: "Tenant whose account is periodically scanned for CMKs without an alias",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version, cmd.String("reconcile-tenant-id"))
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
	}
}
