package model

import (
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors for storage operations
var (
	ErrKeyNotFound   = goerr.New("key not found")
	ErrQuotaExceeded = goerr.New("storage quota exceeded")
)

// Error tags classifying failures of an alert request
var (
	ErrTagTimeout          = goerr.NewTag("timeout")
	ErrTagNoResponse       = goerr.NewTag("no_response")
	ErrTagRequestConfig    = goerr.NewTag("request_config")
	ErrTagHTTPStatus       = goerr.NewTag("http_status")
	ErrTagInvalidStructure = goerr.NewTag("invalid_structure")
)

// ErrTagInvalidArgument marks errors caused by caller input rather than by
// the upstream request
var ErrTagInvalidArgument = goerr.NewTag("invalid_argument")

// ErrInvalidStructure is returned when none of the fetched responses carries
// the expected envelope
var ErrInvalidStructure = goerr.New("invalid API response structure", goerr.T(ErrTagInvalidStructure))

// IsDiagnosed reports whether err carries one of the alert request failure
// tags, so that Describe renders a specific diagnostic for it
func IsDiagnosed(err error) bool {
	if err == nil {
		return false
	}
	return goerr.HasTag(err, ErrTagTimeout) ||
		goerr.HasTag(err, ErrTagNoResponse) ||
		goerr.HasTag(err, ErrTagRequestConfig) ||
		goerr.HasTag(err, ErrTagHTTPStatus) ||
		goerr.HasTag(err, ErrTagInvalidStructure) ||
		errors.Is(err, ErrInvalidStructure)
}

// Describe renders a human-readable diagnostic for a failed alert request.
// The text distinguishes timeout, missing response, request configuration and
// upstream HTTP errors; anything else falls back to the error message.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrInvalidStructure) || goerr.HasTag(err, ErrTagInvalidStructure) {
		return "invalid API response structure."
	}

	return "failed to load data: " + diagnostic(err)
}

func diagnostic(err error) string {
	switch {
	case goerr.HasTag(err, ErrTagTimeout):
		return "request timed out (10s); check the network connection."

	case goerr.HasTag(err, ErrTagHTTPStatus):
		status := StatusOf(err)
		if status == 404 {
			return "request path error (404 Not Found); check the API endpoint path."
		}
		return fmt.Sprintf("server response error (%d).", status)

	case goerr.HasTag(err, ErrTagNoResponse):
		return "no response received (network or CORS error)."

	case goerr.HasTag(err, ErrTagRequestConfig):
		return "request configuration error: " + rootMessage(err)
	}

	return err.Error()
}

// StatusOf returns the upstream HTTP status attached to err, or 0
func StatusOf(err error) int {
	if v, ok := goerr.Values(err)["status"]; ok {
		if status, ok := v.(int); ok {
			return status
		}
	}
	return 0
}

func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
