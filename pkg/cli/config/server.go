package config

import (
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr            string
	WarmCache       bool
	ShutdownTimeout time.Duration
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Sources:     cli.EnvVars("MISEMON_ADDR"),
			Destination: &s.Addr,
		},
		&cli.BoolFlag{
			Name:        "warm-cache",
			Usage:       "Fetch the widest advisory period in the background at startup",
			Sources:     cli.EnvVars("MISEMON_WARM_CACHE"),
			Destination: &s.WarmCache,
		},
		&cli.DurationFlag{
			Name:        "shutdown-timeout",
			Usage:       "Grace period for in-flight requests on shutdown",
			Value:       10 * time.Second,
			Sources:     cli.EnvVars("MISEMON_SHUTDOWN_TIMEOUT"),
			Destination: &s.ShutdownTimeout,
		},
	}
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.Bool("warm_cache", s.WarmCache),
		slog.Duration("shutdown_timeout", s.ShutdownTimeout),
	)
}
