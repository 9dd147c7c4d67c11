package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/service/airkorea"
	"github.com/urfave/cli/v3"
)

// AirKorea holds the configuration of the public air quality API
type AirKorea struct {
	ServiceKey string
	BaseURL    string
	Timeout    time.Duration
	RateLimit  float64
	RateBurst  int
}

// Flags returns CLI flags for AirKorea configuration
func (a *AirKorea) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "airkorea-service-key",
			Usage:       "Service key issued by the public data portal",
			Category:    "AirKorea",
			Sources:     cli.EnvVars("MISEMON_AIRKOREA_SERVICE_KEY"),
			Destination: &a.ServiceKey,
		},
		&cli.StringFlag{
			Name:        "airkorea-base-url",
			Usage:       "Base URL of the AirKorea API",
			Category:    "AirKorea",
			Value:       airkorea.DefaultBaseURL,
			Sources:     cli.EnvVars("MISEMON_AIRKOREA_BASE_URL"),
			Destination: &a.BaseURL,
		},
		&cli.DurationFlag{
			Name:        "airkorea-timeout",
			Usage:       "Timeout of one AirKorea request",
			Category:    "AirKorea",
			Value:       airkorea.DefaultTimeout,
			Sources:     cli.EnvVars("MISEMON_AIRKOREA_TIMEOUT"),
			Destination: &a.Timeout,
		},
		&cli.FloatFlag{
			Name:        "airkorea-rate-limit",
			Usage:       "Maximum AirKorea requests per second (0 disables limiting)",
			Category:    "AirKorea",
			Sources:     cli.EnvVars("MISEMON_AIRKOREA_RATE_LIMIT"),
			Destination: &a.RateLimit,
		},
		&cli.IntFlag{
			Name:        "airkorea-rate-burst",
			Usage:       "Burst size of the AirKorea rate limit",
			Category:    "AirKorea",
			Value:       1,
			Sources:     cli.EnvVars("MISEMON_AIRKOREA_RATE_BURST"),
			Destination: &a.RateBurst,
		},
	}
}

// Configure creates the AirKorea client
func (a *AirKorea) Configure() (*airkorea.Client, error) {
	if a.ServiceKey == "" {
		return nil, goerr.New("AirKorea service key is required. Please provide MISEMON_AIRKOREA_SERVICE_KEY")
	}

	opts := []airkorea.Option{
		airkorea.WithBaseURL(a.BaseURL),
		airkorea.WithTimeout(a.Timeout),
	}
	if a.RateLimit > 0 {
		opts = append(opts, airkorea.WithRateLimit(a.RateLimit, max(a.RateBurst, 1)))
	}
	return airkorea.New(a.ServiceKey, opts...), nil
}

// LogValue returns structured log value
func (a AirKorea) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_service_key", a.ServiceKey != ""),
		slog.String("base_url", a.BaseURL),
		slog.Duration("timeout", a.Timeout),
		slog.Float64("rate_limit", a.RateLimit),
		slog.Int("rate_burst", a.RateBurst),
	)
}
