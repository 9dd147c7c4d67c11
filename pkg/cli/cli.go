package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/cli/config"
	"github.com/secmon-lab/misemon/pkg/metrics"
	"github.com/urfave/cli/v3"
)

// Version of the misemon command
const Version = "0.1.0"

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	if err := newApp(os.Stdout).Run(ctx, args); err != nil {
		return goerr.Wrap(err, "CLI execution failed")
	}
	return nil
}

func newApp(w io.Writer) *cli.Command {
	var loggerCfg config.Logger

	return &cli.Command{
		Name:    "misemon",
		Usage:   "Fine dust advisory monitor for the AirKorea alarm API",
		Version: Version,
		Writer:  w,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Configure logger
			logger, err := loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			metrics.SetBuildInfo(Version)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdAlerts(),
			cmdCache(),
			cmdStation(),
			cmdPrefs(),
		},
	}
}
