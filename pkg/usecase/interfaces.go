package usecase

import (
	"context"

	"github.com/secmon-lab/misemon/pkg/domain/model"
	"github.com/secmon-lab/misemon/pkg/domain/types"
)

// AlertUseCase defines the interface for advisory lookups
type AlertUseCase interface {
	// RequestAlerts returns the advisories of the last monthsBack months
	RequestAlerts(ctx context.Context, monthsBack types.MonthFilter) (*model.AlertResult, error)

	// View renders one page of grouped advisories for a month filter
	View(ctx context.Context, months types.MonthFilter, page int) (*model.AlertPage, error)

	// Warm fills the cache for the widest month filter
	Warm(ctx context.Context) error

	// ClearCache removes cached responses of every year, or of one year
	ClearCache(ctx context.Context, year int) int
}

// StationUseCase defines the interface for measuring station lookups
type StationUseCase interface {
	// Locate lists the stations near a GPS position
	Locate(ctx context.Context, lat, lon float64) ([]model.Station, error)
}

// PreferencesUseCase defines the interface for dashboard settings
type PreferencesUseCase interface {
	Get(ctx context.Context) model.Preferences
	Save(ctx context.Context, prefs model.Preferences) error
	Update(ctx context.Context, key, value string) (model.Preferences, error)
	Merge(ctx context.Context, patch []byte) (model.Preferences, error)
}

var (
	_ AlertUseCase       = (*Alert)(nil)
	_ StationUseCase     = (*Station)(nil)
	_ PreferencesUseCase = (*Preferences)(nil)
)
