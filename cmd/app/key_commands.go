package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/earkms/cmd/app/commands"
	"github.com/allisson/earkms/internal/app"
	"github.com/allisson/earkms/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "ensure-cmk",
			Usage: "Create or retrieve the CMK behind a tenant alias",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "tenant-id",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Tenant UUID",
				},
				&cli.StringFlag{
					Name:     "alias",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Alias base name (submitted as alias/<name>)",
				},
				&cli.StringFlag{
					Name:  "policy-file",
					Value: "",
					Usage: "Path to a key policy JSON file (default policy bound to the caller when omitted)",
				},
				&cli.StringFlag{
					Name:  "description",
					Value: "",
					Usage: "Description for a newly created CMK",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				keyUseCase, err := container.KeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunEnsureCmk(
					ctx,
					keyUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("tenant-id"),
					cmd.String("alias"),
					cmd.String("policy-file"),
					cmd.String("description"),
				)
			},
		},
		{
			Name:  "cmk-arn",
			Usage: "Resolve a CMK id to its ARN",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "tenant-id",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Tenant UUID",
				},
				&cli.StringFlag{
					Name:     "key-id",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "CMK id",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				keyUseCase, err := container.KeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunCmkARN(
					ctx,
					keyUseCase,
					commands.DefaultIO().Writer,
					cmd.String("tenant-id"),
					cmd.String("key-id"),
				)
			},
		},
		{
			Name:  "generate-data-key",
			Usage: "Generate a data key wrapped under the tenant's CMK",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "tenant-id",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Tenant UUID",
				},
				&cli.StringFlag{
					Name:     "key-id",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "CMK id",
				},
				&cli.StringFlag{
					Name:    "algorithm",
					Aliases: []string{"alg"},
					Value:   "AES",
					Usage:   "Data key algorithm",
				},
				&cli.IntFlag{
					Name:    "key-size",
					Aliases: []string{"s"},
					Value:   256,
					Usage:   "Data key size in bits",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				keyUseCase, err := container.KeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunGenerateDataKey(
					ctx,
					keyUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("tenant-id"),
					cmd.String("key-id"),
					cmd.String("algorithm"),
					int(cmd.Int("key-size")),
				)
			},
		},
		{
			Name:  "decrypt-data-key",
			Usage: "Decrypt a base64-encoded data-key ciphertext",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "tenant-id",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Tenant UUID",
				},
				&cli.StringFlag{
					Name:     "ciphertext",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Base64-encoded data-key ciphertext",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				keyUseCase, err := container.KeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunDecryptDataKey(
					ctx,
					keyUseCase,
					commands.DefaultIO().Writer,
					cmd.String("tenant-id"),
					cmd.String("ciphertext"),
				)
			},
		},
		{
			Name:  "reconcile",
			Usage: "Report CMKs in the tenant's account that no alias points at",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "tenant-id",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Tenant UUID",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				keyUseCase, err := container.KeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunReconcile(
					ctx,
					keyUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("tenant-id"),
				)
			},
		},
	}
}
