package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/misemon/pkg/cli/config"
	"github.com/secmon-lab/misemon/pkg/domain/types"
	"github.com/secmon-lab/misemon/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdAlerts() *cli.Command {
	var (
		airkoreaCfg config.AirKorea
		storageCfg  config.Storage
		cacheCfg    config.Cache
		months      int
		page        int
		format      string
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.IntFlag{
				Name:        "months",
				Aliases:     []string{"m"},
				Usage:       "Advisory period in months (1, 2, 3; default: stored preference)",
				Destination: &months,
			},
			&cli.IntFlag{
				Name:        "page",
				Aliases:     []string{"p"},
				Usage:       "Page of date sections to show",
				Value:       1,
				Destination: &page,
			},
			formatFlag(&format),
		},
		airkoreaCfg.Flags(),
		storageCfg.Flags(),
		cacheCfg.Flags(),
	)

	return &cli.Command{
		Name:  "alerts",
		Usage: "Show recent fine dust advisories grouped by date and district",
		Flags: flags,
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

			filter := types.MonthFilter(months)
			if months == 0 {
				filter = usecase.NewPreferences(kv).Get(ctx).FilterMonths
			}

			alerts, err := alertUC.View(ctx, filter, page)
			if err != nil {
				return err
			}

			ctxlog.From(ctx).Debug("advisories loaded",
				"months", filter,
				"years", alerts.Years,
				"count", alerts.TotalCount,
			)

			return writeOutput(c.Root().Writer, format, alerts)
		},
	}
}
