package cli

import (
	"context"

	"github.com/secmon-lab/misemon/pkg/cli/config"
	"github.com/secmon-lab/misemon/pkg/domain/model"
	"github.com/secmon-lab/misemon/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdStation() *cli.Command {
	var (
		airkoreaCfg config.AirKorea
		kakaoCfg    config.Kakao
		lat, lon    float64
		format      string
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.FloatFlag{
				Name:        "lat",
				Usage:       "Latitude (WGS84)",
				Required:    true,
				Destination: &lat,
			},
			&cli.FloatFlag{
				Name:        "lon",
				Usage:       "Longitude (WGS84)",
				Required:    true,
				Destination: &lon,
			},
			formatFlag(&format),
		},
		airkoreaCfg.Flags(),
		kakaoCfg.Flags(),
	)

	return &cli.Command{
		Name:  "station",
		Usage: "List measuring stations near a GPS position",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := airkoreaCfg.Configure()
			if err != nil {
				return err
			}

			stations, err := usecase.NewStation(client, kakaoCfg.Configure(ctx)).Locate(ctx, lat, lon)
			if err != nil {
				return err
			}
			if stations == nil {
				stations = []model.Station{}
			}
			return writeOutput(c.Root().Writer, format, stations)
		},
	}
}
