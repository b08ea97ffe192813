package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/earkms/cmd/app/commands"
	"github.com/allisson/earkms/internal/app"
	"github.com/allisson/earkms/internal/config"
)

func getConfigCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "set-credential-config",
			Usage: "Store a credential configuration record for a tenant",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "tenant-id",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Tenant UUID",
				},
				&cli.StringFlag{
					Name:     "source",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Credential source (tenant_config or host_environment)",
				},
				&cli.StringFlag{
					Name:     "access-key-id",
					Required: true,
					Usage:    "AWS access key id",
				},
				&cli.StringFlag{
					Name:     "secret-access-key",
					Required: true,
					Usage:    "AWS secret access key",
				},
				&cli.StringSliceFlag{
					Name:     "region",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Region code (repeatable, first one is used for resolution)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				configUseCase, err := container.CredentialConfigUseCase()
				if err != nil {
					return err
				}

				return commands.RunSetCredentialConfig(
					ctx,
					configUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("tenant-id"),
					cmd.String("source"),
					cmd.String("access-key-id"),
					cmd.String("secret-access-key"),
					cmd.StringSlice("region"),
				)
			},
		},
		{
			Name:  "get-credential-config",
			Usage: "Show the stored credential configuration record for a tenant",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "tenant-id",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Tenant UUID",
				},
				&cli.StringFlag{
					Name:     "source",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Credential source (tenant_config or host_environment)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				configUseCase, err := container.CredentialConfigUseCase()
				if err != nil {
					return err
				}

				return commands.RunGetCredentialConfig(
					ctx,
					configUseCase,
					commands.DefaultIO().Writer,
					cmd.String("tenant-id"),
					cmd.String("source"),
				)
			},
		},
		{
			Name:  "delete-credential-config",
			Usage: "Delete the credential configuration record for a tenant",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "tenant-id",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Tenant UUID",
				},
				&cli.StringFlag{
					Name:     "source",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Credential source (tenant_config or host_environment)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				configUseCase, err := container.CredentialConfigUseCase()
				if err != nil {
					return err
				}

				return commands.RunDeleteCredentialConfig(
					ctx,
					configUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("tenant-id"),
					cmd.String("source"),
				)
			},
		},
	}
}
