package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/misemon/pkg/domain/model"
	"github.com/secmon-lab/misemon/pkg/domain/types"
)

func TestParsePreferences(t *testing.T) {
	prefs, err := model.ParsePreferences([]byte(`{"sortOrder":"asc"}`))
	gt.NoError(t, err)
	gt.Equal(t, model.Preferences{FilterMonths: 1, SortOrder: types.SortOrderAsc, ItemsPerPage: 10}, prefs)

	prefs, err = model.ParsePreferences([]byte(`{"filterMonths":6,"sortOrder":"random","itemsPerPage":0}`))
	gt.NoError(t, err)
	gt.Equal(t, model.DefaultPreferences(), prefs)

	prefs, err = model.ParsePreferences([]byte(`{"filterMonths":6,"sortOrder":"asc"}`))
	gt.NoError(t, err)
	gt.Equal(t, model.Preferences{FilterMonths: 1, SortOrder: types.SortOrderAsc, ItemsPerPage: 10}, prefs)

	prefs, err = model.ParsePreferences([]byte(`[`))
	gt.Error(t, err)
	gt.Equal(t, model.DefaultPreferences(), prefs)
}

func TestPreferencesSet(t *testing.T) {
	prefs := model.DefaultPreferences()

	gt.NoError(t, prefs.Set(model.PrefFilterMonths, "3"))
	gt.NoError(t, prefs.Set(model.PrefSortOrder, "asc"))
	gt.NoError(t, prefs.Set(model.PrefItemsPerPage, "25"))
	gt.Equal(t, model.Preferences{FilterMonths: 3, SortOrder: types.SortOrderAsc, ItemsPerPage: 25}, prefs)

	t.Run("invalid values leave preferences unchanged", func(t *testing.T) {
		before := prefs
		gt.Error(t, prefs.Set(model.PrefFilterMonths, "5"))
		gt.Error(t, prefs.Set(model.PrefFilterMonths, "x"))
		gt.Error(t, prefs.Set(model.PrefSortOrder, "random"))
		gt.Error(t, prefs.Set(model.PrefItemsPerPage, "0"))
		gt.Error(t, prefs.Set("unknown", "1"))
		gt.Equal(t, before, prefs)
	})
}
