package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/misemon/pkg/domain/model"
	"github.com/secmon-lab/misemon/pkg/domain/types"
)

func TestAlertRecordValidate(t *testing.T) {
	base := func() model.AlertRecord {
		return model.AlertRecord{
			Sn:           1,
			DistrictName: "서울",
			IssueGbn:     types.IssueGbnWatch,
			IssueDate:    "2025-01-10",
			IssueTime:    "09:00",
			IssueVal:     types.NewReading(150),
		}
	}

	t.Run("active advisory", func(t *testing.T) {
		rec := base()
		gt.NoError(t, rec.Validate())
		gt.True(t, rec.IsActive())
	})

	t.Run("cleared advisory", func(t *testing.T) {
		rec := base()
		rec.ClearDate = "2025-01-10"
		rec.ClearTime = "18:00"
		rec.ClearVal = types.NewReading(60)
		gt.NoError(t, rec.Validate())
		gt.False(t, rec.IsActive())

		at, ok := rec.ClearedAt(time.UTC)
		gt.True(t, ok)
		gt.Equal(t, time.Date(2025, 1, 10, 18, 0, 0, 0, time.UTC), at)
	})

	t.Run("missing issue date", func(t *testing.T) {
		rec := base()
		rec.IssueDate = ""
		gt.Error(t, rec.Validate())
	})

	t.Run("unparseable issue time", func(t *testing.T) {
		rec := base()
		rec.IssueTime = "9시"
		gt.Error(t, rec.Validate())
	})

	t.Run("partial clear triple", func(t *testing.T) {
		rec := base()
		rec.ClearDate = "2025-01-10"
		gt.Error(t, rec.Validate())

		rec = base()
		rec.ClearVal = types.NewReading(60)
		gt.Error(t, rec.Validate())
	})

	t.Run("24:00 issue time", func(t *testing.T) {
		rec := base()
		rec.IssueTime = "24:00"
		gt.NoError(t, rec.Validate())

		at, err := rec.IssuedAt(time.UTC)
		gt.NoError(t, err)
		gt.Equal(t, time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC), at)
	})
}

func TestAlertRecordJSON(t *testing.T) {
	input := `{"sn":"42","dataDate":"2025-01-10","districtName":"부산","moveName":"부산 중부","itemCode":"PM25","issueGbn":"경보","issueDate":"2025-01-10","issueTime":"13:00","issueVal":"95","clearDate":"","clearTime":"","clearVal":""}`

	var rec model.AlertRecord
	gt.NoError(t, json.Unmarshal([]byte(input), &rec)).Required()
	gt.Equal(t, int64(42), rec.Sn.Int64())
	gt.Equal(t, types.ItemCodePM25, rec.ItemCode)
	gt.Equal(t, types.IssueGbnWarning, rec.IssueGbn)
	v, ok := rec.IssueVal.Float64()
	gt.True(t, ok)
	gt.Equal(t, 95.0, v)
	gt.False(t, rec.ClearVal.Valid())
	gt.NoError(t, rec.Validate())

	out, err := json.Marshal(rec)
	gt.NoError(t, err)
	gt.S(t, string(out)).Contains(`"clearVal":""`)
	gt.S(t, string(out)).Contains(`"issueVal":95`)
}
