package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/misemon/pkg/utils/logging"
)

func TestParseLogLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for input, want := range testCases {
		t.Run(input, func(t *testing.T) {
			gt.Equal(t, want, logging.ParseLogLevel(input))
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("non-terminal writer falls back to JSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewLogger(slog.LevelInfo, &buf)
		logger.Debug("hidden")
		logger.Info("cache warmed", "years", 2)

		gt.S(t, buf.String()).NotContains("hidden")
		gt.S(t, buf.String()).Contains(`"msg":"cache warmed"`)
		gt.S(t, buf.String()).Contains(`"years":2`)
	})

	t.Run("console format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewLoggerWithFormat(slog.LevelDebug, &buf, logging.FormatConsole)
		logger.Debug("fetching year", "year", 2025)
		gt.S(t, buf.String()).Contains("fetching year")
	})
}

func TestParseFormat(t *testing.T) {
	testCases := map[string]logging.Format{
		"":        logging.FormatAuto,
		"auto":    logging.FormatAuto,
		"console": logging.FormatConsole,
		"JSON":    logging.FormatJSON,
	}
	for input, want := range testCases {
		t.Run(input, func(t *testing.T) {
			got, err := logging.ParseFormat(input)
			gt.NoError(t, err)
			gt.Equal(t, want, got)
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		_, err := logging.ParseFormat("xml")
		gt.Error(t, err)
	})

	gt.Equal(t, "json", logging.FormatJSON.String())
}

func TestJSONSource(t *testing.T) {
	t.Run("debug level records source for auto and json alike", func(t *testing.T) {
		for _, format := range []logging.Format{logging.FormatAuto, logging.FormatJSON} {
			var buf bytes.Buffer
			logging.NewLoggerWithFormat(slog.LevelDebug, &buf, format).Info("fetched")
			gt.S(t, buf.String()).Contains(`"source":`)
		}
	})

	t.Run("info level omits source", func(t *testing.T) {
		for _, format := range []logging.Format{logging.FormatAuto, logging.FormatJSON} {
			var buf bytes.Buffer
			logging.NewLoggerWithFormat(slog.LevelInfo, &buf, format).Info("fetched")
			gt.S(t, buf.String()).NotContains(`"source":`)
		}
	})
}
