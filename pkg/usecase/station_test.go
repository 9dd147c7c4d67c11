package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/misemon/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/misemon/pkg/domain/model"
	"github.com/secmon-lab/misemon/pkg/usecase"
)

func TestStationLocate(t *testing.T) {
	ctx := context.Background()
	transformer := &mocks.CoordTransformerMock{
		TransCoordFunc: func(ctx context.Context, lat, lon float64) (model.TMCoord, error) {
			return model.TMCoord{X: 198245.05, Y: 451586.12}, nil
		},
	}
	client := &mocks.AirKoreaClientMock{
		NearbyStationsFunc: func(ctx context.Context, coord model.TMCoord) ([]model.Station, error) {
			return []model.Station{{StationName: "중구", Addr: "서울 중구", TM: 0.8}}, nil
		},
	}

	station := usecase.NewStation(client, transformer)
	stations, err := station.Locate(ctx, 37.5665, 126.978)
	gt.NoError(t, err).Required()
	gt.A(t, stations).Length(1)
	gt.Equal(t, "중구", stations[0].StationName)

	gt.Equal(t, 37.5665, transformer.TransCoordCalls()[0].Lat)
	gt.Equal(t, 126.978, transformer.TransCoordCalls()[0].Lon)
	gt.Equal(t, model.TMCoord{X: 198245.05, Y: 451586.12}, client.NearbyStationsCalls()[0].Coord)

	t.Run("out of range", func(t *testing.T) {
		_, err := station.Locate(ctx, 91, 0)
		gt.Error(t, err)
		gt.A(t, transformer.TransCoordCalls()).Length(1)
	})

	t.Run("transform failure stops lookup", func(t *testing.T) {
		transformer := &mocks.CoordTransformerMock{
			TransCoordFunc: func(ctx context.Context, lat, lon float64) (model.TMCoord, error) {
				return model.TMCoord{}, goerr.New("Kakao API: wrong appKey format")
			},
		}
		client := &mocks.AirKoreaClientMock{}

		_, err := usecase.NewStation(client, transformer).Locate(ctx, 37.5, 127)
		gt.Error(t, err)
		gt.A(t, client.NearbyStationsCalls()).Length(0)
	})

	t.Run("no transformer", func(t *testing.T) {
		_, err := usecase.NewStation(client, nil).Locate(ctx, 37.5, 127)
		gt.True(t, goerr.HasTag(err, model.ErrTagRequestConfig))
	})
}
