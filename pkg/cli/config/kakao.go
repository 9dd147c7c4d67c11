package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/misemon/pkg/domain/interfaces"
	"github.com/secmon-lab/misemon/pkg/service/kakao"
	"github.com/urfave/cli/v3"
)

// Kakao holds configuration of the coordinate transformation API
type Kakao struct {
	RESTKey string
	BaseURL string
}

// Flags returns CLI flags for Kakao configuration
func (k *Kakao) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "kakao-rest-key",
			Usage:       "Kakao REST API key for GPS to TM coordinate conversion",
			Category:    "Kakao",
			Sources:     cli.EnvVars("MISEMON_KAKAO_REST_KEY"),
			Destination: &k.RESTKey,
		},
		&cli.StringFlag{
			Name:        "kakao-base-url",
			Usage:       "Base URL of the Kakao API",
			Category:    "Kakao",
			Value:       kakao.DefaultBaseURL,
			Sources:     cli.EnvVars("MISEMON_KAKAO_BASE_URL"),
			Destination: &k.BaseURL,
		},
	}
}

// Configure returns a coordinate transformer, or nil if Kakao is not
// configured
func (k *Kakao) Configure(ctx context.Context) interfaces.CoordTransformer {
	if !k.IsConfigured() {
		ctxlog.From(ctx).Warn("Kakao not configured - station lookup will not work")
		return nil
	}
	return kakao.New(k.RESTKey, kakao.WithBaseURL(k.BaseURL))
}

// IsConfigured checks if a REST key is given
func (k *Kakao) IsConfigured() bool {
	return k.RESTKey != ""
}

// LogValue returns structured log value
func (k Kakao) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_rest_key", k.RESTKey != ""),
		slog.String("base_url", k.BaseURL),
	)
}
