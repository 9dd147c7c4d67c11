package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/gt"
	"github.com/prometheus/client_golang/prometheus/testutil"
	controller "github.com/secmon-lab/misemon/pkg/controller/http"
	"github.com/secmon-lab/misemon/pkg/metrics"
)

func TestPrometheusMiddleware(t *testing.T) {
	router := chi.NewRouter()
	router.Use(controller.PrometheusMiddleware)
	router.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	router.Get("/plain", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	teapot := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/{id}", "418")
	ok := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/plain", "200")
	beforeTeapot := testutil.ToFloat64(teapot)
	beforeOK := testutil.ToFloat64(ok)

	for _, target := range []string{"/items/1", "/items/2", "/plain"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	gt.Equal(t, beforeTeapot+2, testutil.ToFloat64(teapot))
	gt.Equal(t, beforeOK+1, testutil.ToFloat64(ok))
}

func TestLoggingMiddlewarePassesThrough(t *testing.T) {
	handler := controller.LoggingMiddleware(context.Background())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	gt.Equal(t, http.StatusAccepted, w.Code)
}

func TestCORS(t *testing.T) {
	called := false
	handler := controller.CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/alerts", nil))
	gt.Equal(t, http.StatusNoContent, w.Code)
	gt.False(t, called)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/alerts", nil))
	gt.True(t, called)
	gt.Equal(t, "GET, PUT, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}
