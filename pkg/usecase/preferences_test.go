package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/misemon/pkg/domain/model"
	"github.com/secmon-lab/misemon/pkg/domain/types"
	"github.com/secmon-lab/misemon/pkg/repository"
	"github.com/secmon-lab/misemon/pkg/usecase"
)

func TestPreferences(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults when nothing stored", func(t *testing.T) {
		prefs := usecase.NewPreferences(repository.NewMemory())
		gt.Equal(t, model.DefaultPreferences(), prefs.Get(ctx))
	})

	t.Run("stored values merged over defaults", func(t *testing.T) {
		kv := repository.NewMemory()
		gt.NoError(t, kv.Set(ctx, model.PreferencesKey, []byte(`{"filterMonths":3}`)))

		got := usecase.NewPreferences(kv).Get(ctx)
		gt.Equal(t, types.MonthFilter(3), got.FilterMonths)
		gt.Equal(t, types.SortOrderDesc, got.SortOrder)
		gt.Equal(t, 10, got.ItemsPerPage)
	})

	t.Run("invalid stored values fall back to defaults", func(t *testing.T) {
		kv := repository.NewMemory()
		gt.NoError(t, kv.Set(ctx, model.PreferencesKey, []byte(`{"filterMonths":6,"itemsPerPage":25}`)))

		got := usecase.NewPreferences(kv).Get(ctx)
		gt.Equal(t, types.MonthFilter(1), got.FilterMonths)
		gt.Equal(t, 25, got.ItemsPerPage)
	})

	t.Run("unreadable data yields defaults", func(t *testing.T) {
		kv := repository.NewMemory()
		gt.NoError(t, kv.Set(ctx, model.PreferencesKey, []byte(`{broken`)))
		gt.Equal(t, model.DefaultPreferences(), usecase.NewPreferences(kv).Get(ctx))
	})

	t.Run("save and update", func(t *testing.T) {
		kv := repository.NewMemory()
		prefs := usecase.NewPreferences(kv)

		gt.NoError(t, prefs.Save(ctx, model.Preferences{FilterMonths: 2, SortOrder: types.SortOrderAsc, ItemsPerPage: 20}))
		got, err := prefs.Update(ctx, model.PrefItemsPerPage, "5")
		gt.NoError(t, err)
		gt.Equal(t, model.Preferences{FilterMonths: 2, SortOrder: types.SortOrderAsc, ItemsPerPage: 5}, got)
		gt.Equal(t, got, prefs.Get(ctx))
	})

	t.Run("invalid update is not stored", func(t *testing.T) {
		kv := repository.NewMemory()
		prefs := usecase.NewPreferences(kv)

		_, err := prefs.Update(ctx, model.PrefFilterMonths, "6")
		gt.Error(t, err)
		_, err = prefs.Update(ctx, "theme", "dark")
		gt.Error(t, err)

		keys, err := kv.Keys(ctx, "")
		gt.NoError(t, err)
		gt.A(t, keys).Length(0)
	})

	t.Run("merge partial patch", func(t *testing.T) {
		prefs := usecase.NewPreferences(repository.NewMemory())

		got, err := prefs.Merge(ctx, []byte(`{"sortOrder":"asc"}`))
		gt.NoError(t, err)
		gt.Equal(t, types.SortOrderAsc, got.SortOrder)
		gt.Equal(t, types.MonthFilter(1), got.FilterMonths)

		_, err = prefs.Merge(ctx, []byte(`{"itemsPerPage":0}`))
		gt.Error(t, err)
		gt.Equal(t, 10, prefs.Get(ctx).ItemsPerPage)
	})
}
