package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/domain/interfaces"
	"github.com/secmon-lab/misemon/pkg/service/alertcache"
	"github.com/secmon-lab/misemon/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Cache holds configuration of the advisory response cache
type Cache struct {
	Prefix   string
	TTL      time.Duration
	MaxBytes int
	Location string
}

// Flags returns CLI flags for Cache configuration
func (c *Cache) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "cache-prefix",
			Usage:       "Key prefix of cached responses; changing it invalidates older entries",
			Category:    "Cache",
			Value:       alertcache.DefaultPrefix,
			Sources:     cli.EnvVars("MISEMON_CACHE_PREFIX"),
			Destination: &c.Prefix,
		},
		&cli.DurationFlag{
			Name:        "cache-ttl",
			Usage:       "Lifetime of a cached response",
			Category:    "Cache",
			Value:       alertcache.DefaultTTL,
			Sources:     cli.EnvVars("MISEMON_CACHE_TTL"),
			Destination: &c.TTL,
		},
		&cli.IntFlag{
			Name:        "cache-max-bytes",
			Usage:       "Largest serialized entry accepted by the cache",
			Category:    "Cache",
			Value:       alertcache.DefaultMaxBytes,
			Sources:     cli.EnvVars("MISEMON_CACHE_MAX_BYTES"),
			Destination: &c.MaxBytes,
		},
		&cli.StringFlag{
			Name:        "timezone",
			Usage:       "Time zone used for the date window",
			Category:    "Cache",
			Value:       usecase.DefaultLocation,
			Sources:     cli.EnvVars("MISEMON_TIMEZONE"),
			Destination: &c.Location,
		},
	}
}

// Configure creates the response cache on top of kv
func (c *Cache) Configure(kv interfaces.KVStore) (*alertcache.Store, error) {
	if c.Prefix == "" {
		return nil, goerr.New("cache prefix must not be empty")
	}
	if c.TTL <= 0 {
		return nil, goerr.New("cache TTL must be positive", goerr.V("ttl", c.TTL))
	}
	if c.MaxBytes <= 0 {
		return nil, goerr.New("cache max bytes must be positive", goerr.V("maxBytes", c.MaxBytes))
	}

	return alertcache.New(kv,
		alertcache.WithPrefix(c.Prefix),
		alertcache.WithTTL(c.TTL),
		alertcache.WithMaxBytes(c.MaxBytes),
	), nil
}

// TimeLocation loads the configured time zone
func (c *Cache) TimeLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid timezone", goerr.V("timezone", c.Location))
	}
	return loc, nil
}

// LogValue returns structured log value
func (c Cache) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("prefix", c.Prefix),
		slog.Duration("ttl", c.TTL),
		slog.Int("max_bytes", c.MaxBytes),
		slog.String("timezone", c.Location),
	)
}
