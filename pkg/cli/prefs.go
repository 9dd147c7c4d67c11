package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/cli/config"
	"github.com/secmon-lab/misemon/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdPrefs() *cli.Command {
	return &cli.Command{
		Name:  "prefs",
		Usage: "Show or change dashboard preferences",
		Commands: []*cli.Command{
			cmdPrefsShow(),
			cmdPrefsSet(),
		},
	}
}

func cmdPrefsShow() *cli.Command {
	var (
		storageCfg config.Storage
		format     string
	)

	return &cli.Command{
		Name:  "show",
		Usage: "Print the stored preferences merged over the defaults",
		Flags: joinFlags([]cli.Flag{formatFlag(&format)}, storageCfg.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			kv, err := storageCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			return writeOutput(c.Root().Writer, format, usecase.NewPreferences(kv).Get(ctx))
		},
	}
}

func cmdPrefsSet() *cli.Command {
	var (
		storageCfg config.Storage
		format     string
	)

	return &cli.Command{
		Name:      "set",
		Usage:     "Change one preference (filterMonths, sortOrder, itemsPerPage)",
		ArgsUsage: "KEY VALUE",
		Flags:     joinFlags([]cli.Flag{formatFlag(&format)}, storageCfg.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 2 {
				return goerr.New("KEY and VALUE are required", goerr.V("args", c.Args().Slice()))
			}

			kv, err := storageCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			prefs, err := usecase.NewPreferences(kv).Update(ctx, c.Args().Get(0), c.Args().Get(1))
			if err != nil {
				return err
			}
			return writeOutput(c.Root().Writer, format, prefs)
		},
	}
}
