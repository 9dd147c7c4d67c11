package config_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/misemon/pkg/cli/config"
	"github.com/secmon-lab/misemon/pkg/repository"
	"github.com/secmon-lab/misemon/pkg/service/alertcache"
	"github.com/urfave/cli/v3"
)

// parse runs a command with the given flags so that defaults and env
// sources are applied the same way as in the real CLI
func parse(t *testing.T, flags []cli.Flag, args ...string) {
	t.Helper()
	cmd := &cli.Command{
		Name:   "test",
		Flags:  flags,
		Action: func(ctx context.Context, c *cli.Command) error { return nil },
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...))).Required()
}

func logText(v slog.LogValuer) string {
	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).Info("config", "value", v)
	return buf.String()
}

func TestLogger(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg config.Logger
		parse(t, cfg.Flags())
		gt.Equal(t, "info", cfg.Level)
		gt.Equal(t, "auto", cfg.Format)
		gt.NoError(t, cfg.Validate())
	})

	t.Run("json output", func(t *testing.T) {
		var cfg config.Logger
		parse(t, cfg.Flags(), "--log-level", "debug", "--log-format", "json")

		var buf bytes.Buffer
		logger, err := cfg.ConfigureWriter(&buf)
		gt.NoError(t, err).Required()
		logger.Debug("hello", "key", "value")
		gt.S(t, buf.String()).Contains(`"msg":"hello"`)
	})

	t.Run("invalid format", func(t *testing.T) {
		cfg := config.Logger{Level: "info", Format: "xml"}
		_, err := cfg.Configure()
		gt.Error(t, err)
		gt.Error(t, cfg.Validate())
	})
}

func TestAirKorea(t *testing.T) {
	t.Run("service key required", func(t *testing.T) {
		var cfg config.AirKorea
		parse(t, cfg.Flags())
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("env source and masked log", func(t *testing.T) {
		t.Setenv("MISEMON_AIRKOREA_SERVICE_KEY", "secret-service-key")
		t.Setenv("MISEMON_AIRKOREA_RATE_LIMIT", "2.5")

		var cfg config.AirKorea
		parse(t, cfg.Flags())
		gt.Equal(t, "secret-service-key", cfg.ServiceKey)
		gt.Equal(t, 2.5, cfg.RateLimit)
		gt.Equal(t, 10*time.Second, cfg.Timeout)

		client, err := cfg.Configure()
		gt.NoError(t, err)
		gt.NotNil(t, client)

		out := logText(cfg)
		gt.S(t, out).Contains("has_service_key=true")
		gt.S(t, out).NotContains("secret-service-key")
	})
}

func TestKakao(t *testing.T) {
	ctx := context.Background()

	var cfg config.Kakao
	parse(t, cfg.Flags())
	gt.False(t, cfg.IsConfigured())
	gt.Nil(t, cfg.Configure(ctx))

	parse(t, cfg.Flags(), "--kakao-rest-key", "rest-key")
	gt.True(t, cfg.IsConfigured())
	gt.NotNil(t, cfg.Configure(ctx))
	gt.S(t, logText(cfg)).NotContains("rest-key")
}

func TestStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		var cfg config.Storage
		parse(t, cfg.Flags(), "--storage", "memory")
		kv, err := cfg.Configure(ctx)
		gt.NoError(t, err).Required()
		_, ok := kv.(*repository.Memory)
		gt.True(t, ok)
	})

	t.Run("file", func(t *testing.T) {
		var cfg config.Storage
		parse(t, cfg.Flags(), "--storage-dir", t.TempDir())
		gt.Equal(t, config.BackendFile, cfg.Backend)

		kv, err := cfg.Configure(ctx)
		gt.NoError(t, err).Required()
		gt.NoError(t, kv.Set(ctx, "k", []byte("v")))
		got, err := kv.Get(ctx, "k")
		gt.NoError(t, err)
		gt.Equal(t, "v", string(got))
	})

	t.Run("firestore requires project", func(t *testing.T) {
		var cfg config.Storage
		parse(t, cfg.Flags(), "--storage", "firestore")
		_, err := cfg.Configure(ctx)
		gt.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := config.Storage{Backend: "s3"}
		_, err := cfg.Configure(ctx)
		gt.Error(t, err)
	})
}

func TestCache(t *testing.T) {
	var cfg config.Cache
	parse(t, cfg.Flags())
	gt.Equal(t, alertcache.DefaultPrefix, cfg.Prefix)
	gt.Equal(t, alertcache.DefaultTTL, cfg.TTL)
	gt.Equal(t, alertcache.DefaultMaxBytes, cfg.MaxBytes)

	store, err := cfg.Configure(repository.NewMemory())
	gt.NoError(t, err)
	gt.NotNil(t, store)

	loc, err := cfg.TimeLocation()
	gt.NoError(t, err).Required()
	gt.Equal(t, "Asia/Seoul", loc.String())

	t.Run("invalid values", func(t *testing.T) {
		bad := cfg
		bad.TTL = 0
		_, err := bad.Configure(repository.NewMemory())
		gt.Error(t, err)

		bad = cfg
		bad.Prefix = ""
		_, err = bad.Configure(repository.NewMemory())
		gt.Error(t, err)

		bad = cfg
		bad.Location = "Mars/Olympus"
		_, err = bad.TimeLocation()
		gt.Error(t, err)
	})
}
