package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/misemon/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdCache() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage cached advisory responses",
		Commands: []*cli.Command{
			cmdCacheClear(),
			cmdCacheWarm(),
		},
	}
}

func cmdCacheClear() *cli.Command {
	var (
		storageCfg config.Storage
		cacheCfg   config.Cache
		year       int
		format     string
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.IntFlag{
				Name:        "year",
				Aliases:     []string{"y"},
				Usage:       "Remove only the responses of this year",
				Destination: &year,
			},
			formatFlag(&format),
		},
		storageCfg.Flags(),
		cacheCfg.Flags(),
	)

	return &cli.Command{
		Name:  "clear",
		Usage: "Remove cached responses; stored preferences are kept",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			kv, err := storageCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			store, err := cacheCfg.Configure(kv)
			if err != nil {
				return err
			}

			var removed int
			if year > 0 {
				removed = store.ClearYear(ctx, year)
			} else {
				removed = store.ClearAll(ctx)
			}

			ctxlog.From(ctx).Info("cache cleared", "year", year, "removed", removed)
			return writeOutput(c.Root().Writer, format, map[string]int{"removed": removed})
		},
	}
}

func cmdCacheWarm() *cli.Command {
	var (
		airkoreaCfg config.AirKorea
		storageCfg  config.Storage
		cacheCfg    config.Cache
	)

	return &cli.Command{
		Name:  "warm",
		Usage: "Fetch the widest advisory period into the cache",
		Flags: joinFlags(airkoreaCfg.Flags(), storageCfg.Flags(), cacheCfg.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := airkoreaCfg.Configure()
			if err != nil {
				return err
			}

			alertUC, kv, err := newAlertUseCase(ctx, client, &storageCfg, &cacheCfg)
			if err != nil {
				return err
			}
			defer kv.Close()

			return alertUC.Warm(ctx)
		},
	}
}
