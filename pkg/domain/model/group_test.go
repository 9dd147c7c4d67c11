package model_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/misemon/pkg/domain/model"
	"github.com/secmon-lab/misemon/pkg/domain/types"
)

func alertAt(sn int64, date, clock, district string, gbn types.IssueGbn) model.AlertRecord {
	return model.AlertRecord{
		Sn:           types.Sequence(sn),
		DistrictName: district,
		IssueGbn:     gbn,
		IssueDate:    date,
		IssueTime:    clock,
	}
}

func TestGroupByDateAndDistrict(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		cards := model.GroupByDateAndDistrict(nil)
		gt.NotNil(t, cards)
		gt.A(t, cards).Length(0)
		gt.A(t, model.GroupCardsByDate(cards)).Length(0)
	})

	t.Run("single record", func(t *testing.T) {
		rec := alertAt(1, "2025-01-10", "09:00", "서울", types.IssueGbnWatch)
		sections := model.GroupCardsByDate(model.GroupByDateAndDistrict([]model.AlertRecord{rec}))
		gt.A(t, sections).Length(1)
		gt.A(t, sections[0].Cards).Length(1)
		gt.A(t, sections[0].Cards[0].Alerts).Length(1)
		gt.Equal(t, rec, sections[0].Cards[0].Alerts[0])
	})

	t.Run("ordering", func(t *testing.T) {
		items := []model.AlertRecord{
			alertAt(6, "2025-01-10", "15:00", "인천", types.IssueGbnWatch),
			alertAt(5, "2025-01-10", "14:00", "경기", types.IssueGbnWarning),
			alertAt(4, "2025-01-10", "13:00", "인천", types.IssueGbnWarning),
			alertAt(3, "2025-01-09", "12:00", "서울", types.IssueGbnWatch),
			alertAt(2, "2025-01-09", "11:00", "강원", types.IssueGbnWatch),
		}

		cards := model.GroupByDateAndDistrict(items)
		gt.A(t, cards).Length(4)
		gt.Equal(t, "2025-01-10", cards[0].Date)
		gt.Equal(t, "경기", cards[0].DistrictName)
		gt.Equal(t, "인천", cards[1].DistrictName)
		gt.Equal(t, "강원", cards[2].DistrictName)
		gt.Equal(t, "서울", cards[3].DistrictName)

		// Insertion order is kept inside a card
		gt.Equal(t, types.Sequence(6), cards[1].Alerts[0].Sn)
		gt.Equal(t, types.Sequence(4), cards[1].Alerts[1].Sn)
		gt.Equal(t, types.BadgeWarning, cards[1].Badge())
		gt.Equal(t, types.BadgeDanger, cards[0].Badge())

		sections := model.GroupCardsByDate(cards)
		gt.A(t, sections).Length(2)
		gt.Equal(t, "2025-01-10", sections[0].Date)
		gt.A(t, sections[0].Cards).Length(2)
		gt.Equal(t, "2025-01-09", sections[1].Date)
		gt.Equal(t, "강원", sections[1].Cards[0].DistrictName)
	})
}

func TestDistrictCardJSON(t *testing.T) {
	card := model.DistrictCard{
		Date:         "2025-01-10",
		DistrictName: "서울",
		Alerts:       []model.AlertRecord{alertAt(1, "2025-01-10", "09:00", "서울", types.IssueGbnWarning)},
	}

	out, err := json.Marshal(card)
	gt.NoError(t, err)
	gt.S(t, string(out)).Contains(`"badge":"badge-danger"`)
	gt.S(t, string(out)).Contains(`"issueGbn":"경보"`)
	gt.S(t, string(out)).Contains(`"districtName":"서울"`)

	empty := model.DistrictCard{}
	gt.Equal(t, types.BadgeDefault, empty.Badge())
}
