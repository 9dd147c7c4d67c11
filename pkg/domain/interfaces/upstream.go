package interfaces

//go:generate moq -out mocks/upstream_mock.go -pkg mocks . AirKoreaClient CoordTransformer

import (
	"context"

	"github.com/secmon-lab/misemon/pkg/domain/model"
)

// AirKoreaClient queries the AirKorea open API
type AirKoreaClient interface {
	// GetAlarmInfo fetches one page of particulate-matter advisories for a year
	GetAlarmInfo(ctx context.Context, year, page int) (*model.RawResponse, error)
	// NearbyStations lists measuring stations close to a TM coordinate
	NearbyStations(ctx context.Context, coord model.TMCoord) ([]model.Station, error)
}

// CoordTransformer converts WGS84 latitude/longitude into TM coordinates
type CoordTransformer interface {
	TransCoord(ctx context.Context, lat, lon float64) (model.TMCoord, error)
}
