package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/cli/config"
	controller "github.com/secmon-lab/misemon/pkg/controller/http"
	"github.com/secmon-lab/misemon/pkg/usecase"
	"github.com/secmon-lab/misemon/pkg/utils/async"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		airkoreaCfg config.AirKorea
		kakaoCfg    config.Kakao
		storageCfg  config.Storage
		cacheCfg    config.Cache
	)

	flags := joinFlags(
		serverCfg.Flags(),
		airkoreaCfg.Flags(),
		kakaoCfg.Flags(),
		storageCfg.Flags(),
		cacheCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting misemon server",
				slog.Any("server", serverCfg),
				slog.Any("airkorea", airkoreaCfg),
				slog.Any("kakao", kakaoCfg),
				slog.Any("storage", storageCfg),
				slog.Any("cache", cacheCfg),
			)

			client, err := airkoreaCfg.Configure()
			if err != nil {
				return err
			}

			alertUC, kv, err := newAlertUseCase(ctx, client, &storageCfg, &cacheCfg)
			if err != nil {
				return err
			}
			defer kv.Close()

			stationUC := usecase.NewStation(client, kakaoCfg.Configure(ctx))
			preferencesUC := usecase.NewPreferences(kv)

			server, err := controller.NewServer(
				ctx,
				serverCfg.Addr,
				controller.NewUseCases(alertUC, stationUC, preferencesUC),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			if serverCfg.WarmCache {
				async.Dispatch(ctx, alertUC.Warm)
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
