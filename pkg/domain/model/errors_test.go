package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/misemon/pkg/domain/model"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "timeout",
			err:      goerr.Wrap(errors.New("deadline"), "request timed out", goerr.T(model.ErrTagTimeout)),
			expected: "failed to load data: request timed out (10s); check the network connection.",
		},
		{
			name:     "not found",
			err:      goerr.New("unexpected status code", goerr.T(model.ErrTagHTTPStatus), goerr.V("status", 404)),
			expected: "failed to load data: request path error (404 Not Found); check the API endpoint path.",
		},
		{
			name:     "server error",
			err:      goerr.New("unexpected status code", goerr.T(model.ErrTagHTTPStatus), goerr.V("status", 503)),
			expected: "failed to load data: server response error (503).",
		},
		{
			name:     "no response",
			err:      goerr.Wrap(errors.New("connection refused"), "no response received", goerr.T(model.ErrTagNoResponse)),
			expected: "failed to load data: no response received (network or CORS error).",
		},
		{
			name:     "request config",
			err:      goerr.Wrap(errors.New("missing protocol scheme"), "invalid API URL", goerr.T(model.ErrTagRequestConfig)),
			expected: "failed to load data: request configuration error: missing protocol scheme",
		},
		{
			name:     "invalid structure",
			err:      goerr.Wrap(model.ErrInvalidStructure, "no valid response"),
			expected: "invalid API response structure.",
		},
		{
			name:     "uncategorized",
			err:      errors.New("boom"),
			expected: "failed to load data: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, tt.expected, model.Describe(tt.err))
		})
	}

	gt.Equal(t, "", model.Describe(nil))
}

func TestStatusOf(t *testing.T) {
	err := goerr.Wrap(
		goerr.New("unexpected status code", goerr.V("status", 429)),
		"failed to get alarm info",
	)
	gt.Equal(t, 429, model.StatusOf(err))
	gt.Equal(t, 0, model.StatusOf(errors.New("plain")))
}

func TestSentinels(t *testing.T) {
	err := goerr.Wrap(model.ErrKeyNotFound, "memory get", goerr.V("key", "k"))
	gt.True(t, errors.Is(err, model.ErrKeyNotFound))
	gt.False(t, errors.Is(err, model.ErrQuotaExceeded))
}

func TestIsDiagnosed(t *testing.T) {
	gt.True(t, model.IsDiagnosed(goerr.New("timed out", goerr.T(model.ErrTagTimeout))))
	gt.True(t, model.IsDiagnosed(goerr.Wrap(
		goerr.New("unexpected status", goerr.T(model.ErrTagHTTPStatus), goerr.V("status", 500)),
		"failed to fetch")))
	gt.True(t, model.IsDiagnosed(goerr.Wrap(model.ErrInvalidStructure, "no valid response")))
	gt.False(t, model.IsDiagnosed(goerr.New("invalid storage backend")))
	gt.False(t, model.IsDiagnosed(nil))
}
