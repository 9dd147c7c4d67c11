package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/domain/interfaces"
	"github.com/secmon-lab/misemon/pkg/domain/model"
	"github.com/secmon-lab/misemon/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

// alertPage is the only upstream page requested per year. Multiple years are
// merged instead of paging through one year.
const alertPage = 1

// DefaultLocation is the time zone used to decide "today"
const DefaultLocation = "Asia/Seoul"

// AlertCache is the response cache used by Alert
type AlertCache interface {
	Get(ctx context.Context, year, page int) *model.RawResponse
	Set(ctx context.Context, year, page int, raw *model.RawResponse) bool
	ClearAll(ctx context.Context) int
	ClearYear(ctx context.Context, year int) int
}

// Alert runs the advisory pipeline: resolve years, fetch through the cache,
// aggregate, filter and sort
type Alert struct {
	client interfaces.AirKoreaClient
	cache  AlertCache
	now    func() time.Time
	loc    *time.Location
}

// AlertOption configures Alert
type AlertOption func(*Alert)

// WithNow replaces the time source
func WithNow(now func() time.Time) AlertOption {
	return func(a *Alert) {
		a.now = now
	}
}

// WithLocation sets the time zone used to decide "today"
func WithLocation(loc *time.Location) AlertOption {
	return func(a *Alert) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// NewAlert creates the alert use case
func NewAlert(client interfaces.AirKoreaClient, cache AlertCache, opts ...AlertOption) *Alert {
	loc, err := time.LoadLocation(DefaultLocation)
	if err != nil {
		// tzdata may be missing on minimal images
		loc = time.FixedZone("KST", 9*60*60)
	}

	a := &Alert{
		client: client,
		cache:  cache,
		now:    time.Now,
		loc:    loc,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Today returns the current time in the configured location
func (a *Alert) Today() time.Time {
	return a.now().In(a.loc)
}

// RequestAlerts returns the advisories of the last monthsBack months, most
// recent first
func (a *Alert) RequestAlerts(ctx context.Context, monthsBack types.MonthFilter) (*model.AlertResult, error) {
	logger := ctxlog.From(ctx)
	if monthsBack < 0 {
		return nil, goerr.New("monthsBack must not be negative",
			goerr.T(model.ErrTagRequestConfig),
			goerr.V("monthsBack", monthsBack.Int()))
	}

	today := a.Today()
	years := ResolveYears(today, monthsBack.Int())
	logger.Debug("resolved years", "months", monthsBack.Int(), "years", years)

	responses, err := a.FetchYears(ctx, years)
	if err != nil {
		return nil, err
	}

	all, err := Aggregate(ctx, responses)
	if err != nil {
		return nil, err
	}

	items := SortRecent(FilterRecent(all, monthsBack.Int(), today))
	logger.Info("alerts requested",
		"months", monthsBack.Int(),
		"years", years,
		"fetched", len(all),
		"matched", len(items),
	)

	return &model.AlertResult{
		Items:      items,
		Years:      years,
		TotalCount: len(items),
	}, nil
}

// View loads the advisories of months through an AlertView and renders
// page p of their date sections. An invalid month filter is tagged
// ErrTagInvalidArgument; a failed request carries the diagnostic as message.
func (a *Alert) View(ctx context.Context, months types.MonthFilter, page int) (*model.AlertPage, error) {
	view := model.NewAlertView()
	if err := view.SelectMonth(months); err != nil {
		return nil, goerr.Wrap(err, "invalid month filter", goerr.T(model.ErrTagInvalidArgument))
	}

	view.Begin()
	result, err := a.RequestAlerts(ctx, months)
	if err != nil {
		view.Reject(model.Describe(err))
		return nil, goerr.Wrap(err, view.Error, goerr.V("months", months.Int()))
	}
	view.Fulfill(result)
	view.SetPage(page, model.DefaultSectionsPerPage)

	return view.Snapshot(model.DefaultSectionsPerPage), nil
}

// FetchYears fetches page 1 of every year concurrently. Failed years are
// dropped; when every year fails the error of the earliest year is returned.
// The result keeps the order of years.
func (a *Alert) FetchYears(ctx context.Context, years []int) ([]*model.RawResponse, error) {
	logger := ctxlog.From(ctx)
	if len(years) == 0 {
		return []*model.RawResponse{}, nil
	}

	responses := make([]*model.RawResponse, len(years))
	errs := make([]error, len(years))

	// Failures are collected per year instead of returned, so one failing
	// year never cancels the others
	var eg errgroup.Group
	eg.SetLimit(len(years))
	for i, year := range years {
		eg.Go(func() error {
			responses[i], errs[i] = a.fetchWithCache(ctx, year, alertPage)
			return nil
		})
	}
	_ = eg.Wait()

	results := make([]*model.RawResponse, 0, len(years))
	var firstErr error
	for i, year := range years {
		if errs[i] != nil {
			logger.Warn("failed to fetch year", "year", year, "error", errs[i])
			if firstErr == nil {
				firstErr = errs[i]
			}
			continue
		}
		results = append(results, responses[i])
	}

	if len(results) == 0 {
		return nil, firstErr
	}
	return results, nil
}

func (a *Alert) fetchWithCache(ctx context.Context, year, page int) (*model.RawResponse, error) {
	if cached := a.cache.Get(ctx, year, page); cached != nil {
		ctxlog.From(ctx).Debug("cache hit", "year", year, "page", page)
		return cached, nil
	}

	raw, err := a.client.GetAlarmInfo(ctx, year, page)
	if err != nil {
		return nil, err
	}

	if !a.cache.Set(ctx, year, page, raw) {
		ctxlog.From(ctx).Warn("response not cached", "year", year, "page", page)
	}
	return raw, nil
}

// Warm fetches every year of the widest month filter into the cache
func (a *Alert) Warm(ctx context.Context) error {
	widest := types.MonthFilterOptions[len(types.MonthFilterOptions)-1]
	years := ResolveYears(a.Today(), widest.Int())
	if _, err := a.FetchYears(ctx, years); err != nil {
		return goerr.Wrap(err, "failed to warm cache", goerr.V("years", years))
	}
	ctxlog.From(ctx).Info("cache warmed", "years", years)
	return nil
}

// ClearCache removes cached responses of every year, or of one year when
// year is positive, and returns how many entries were removed
func (a *Alert) ClearCache(ctx context.Context, year int) int {
	if year > 0 {
		return a.cache.ClearYear(ctx, year)
	}
	return a.cache.ClearAll(ctx)
}
