package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/domain/interfaces"
	"github.com/secmon-lab/misemon/pkg/domain/model"
)

// Station finds measuring stations near a GPS position
type Station struct {
	airkorea    interfaces.AirKoreaClient
	transformer interfaces.CoordTransformer
}

// NewStation creates the station use case
func NewStation(airkorea interfaces.AirKoreaClient, transformer interfaces.CoordTransformer) *Station {
	return &Station{
		airkorea:    airkorea,
		transformer: transformer,
	}
}

// Locate converts lat/lon into TM coordinates and lists the nearby stations
func (s *Station) Locate(ctx context.Context, lat, lon float64) ([]model.Station, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, goerr.New("coordinate out of range",
			goerr.T(model.ErrTagRequestConfig),
			goerr.V("lat", lat),
			goerr.V("lon", lon))
	}
	if s.transformer == nil {
		return nil, goerr.New("coordinate transformer is not configured", goerr.T(model.ErrTagRequestConfig))
	}

	coord, err := s.transformer.TransCoord(ctx, lat, lon)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to transform coordinate")
	}

	stations, err := s.airkorea.NearbyStations(ctx, coord)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up stations")
	}

	ctxlog.From(ctx).Debug("stations located",
		"tmX", coord.X,
		"tmY", coord.Y,
		"count", len(stations),
	)
	return stations, nil
}
