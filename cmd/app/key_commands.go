package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/sealfeed/cmd/app/commands"
	"github.com/allisson/sealfeed/internal/app"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "provision-keys",
			Usage: "Generate a user's key pair if missing and print the public key",
			Flags: []cli.Flag{
				userIDFlag("User to provision keys for (UUID)"),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg, err := commands.LoadConfig()
				if err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				keyUseCase, err := container.KeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunProvisionKeys(
					ctx,
					keyUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("user-id"),
					cmd.String("format"),
				)
			},
		},
	}
}
