package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/domain/model"
	"github.com/secmon-lab/misemon/pkg/domain/types"
)

// maxPreferencesBody bounds the size of a preferences update
const maxPreferencesBody = 64 << 10

type apiHandler struct {
	useCases *UseCases
}

func newAPIHandler(useCases *UseCases) *apiHandler {
	return &apiHandler{useCases: useCases}
}

// handleAlerts serves one page of grouped advisories for the selected period.
// The period defaults to the stored preference.
func (h *apiHandler) handleAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	months := h.useCases.preferences.Get(ctx).FilterMonths
	if v := query.Get("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "months must be an integer")
			return
		}
		months = types.MonthFilter(n)
	}

	page := 1
	if v := query.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		page = n
	}

	alerts, err := h.useCases.alert.View(ctx, months, page)
	if err != nil {
		if goerr.HasTag(err, model.ErrTagInvalidArgument) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		ctxlog.From(ctx).Warn("alert request failed", "error", err, "months", months)
		writeError(w, r, http.StatusBadGateway, model.Describe(err))
		return
	}
	writeJSON(w, r, http.StatusOK, alerts)
}

func (h *apiHandler) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.useCases.preferences.Get(r.Context()))
}

// handlePutPreferences merges a partial JSON object into the stored settings
func (h *apiHandler) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPreferencesBody))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to read request body")
		return
	}

	prefs, err := h.useCases.preferences.Merge(ctx, body)
	if err != nil {
		ctxlog.From(ctx).Info("rejected preferences update", "error", err)
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, prefs)
}

// handleClearCache removes cached responses of every year, or of one year
// when the year parameter is given
func (h *apiHandler) handleClearCache(w http.ResponseWriter, r *http.Request) {
	year := 0
	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, r, http.StatusBadRequest, "year must be a positive integer")
			return
		}
		year = n
	}

	removed := h.useCases.alert.ClearCache(r.Context(), year)
	writeJSON(w, r, http.StatusOK, map[string]int{"removed": removed})
}

func (h *apiHandler) handleStations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "lat must be a number")
		return
	}
	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "lon must be a number")
		return
	}

	stations, err := h.useCases.station.Locate(ctx, lat, lon)
	if err != nil {
		status := http.StatusBadGateway
		if goerr.HasTag(err, model.ErrTagRequestConfig) {
			status = http.StatusBadRequest
		}
		ctxlog.From(ctx).Warn("station lookup failed", "error", err)
		writeError(w, r, status, model.Describe(err))
		return
	}
	if stations == nil {
		stations = []model.Station{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"stations": stations})
}
