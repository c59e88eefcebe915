// Command mazed serves seeded mazes and the run leaderboard over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/MJE43/maze-arcade-go/internal/api"
	"github.com/MJE43/maze-arcade-go/internal/config"
	"github.com/MJE43/maze-arcade-go/internal/maze"
	"github.com/MJE43/maze-arcade-go/internal/service"
	"github.com/MJE43/maze-arcade-go/internal/store"
	"github.com/MJE43/maze-arcade-go/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logger := cfg.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("mazed exited with error")
	}
	logger.Info("mazed stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (err error) {
	if cfg.TracingEnabled() {
		shutdownTracing, terr := telemetry.Setup(ctx, api.Version)
		if terr != nil {
			logger.WithError(terr).Warn("telemetry setup failed, continuing without tracing")
		} else {
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
				defer cancel()
				err = multierr.Append(err, shutdownTracing(sctx))
			}()
		}
	}

	db, err := store.OpenSQLite(ctx, cfg.DBPath, store.RetryConfig{
		Attempts: cfg.DBOpenAttempts,
		Base:     cfg.DBOpenBackoff,
	})
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, db.Close())
	}()
	logger.WithField("path", cfg.DBPath).Info("database ready")

	mazes, err := service.NewMazeService(service.MazeOptions{
		Bounds:      maze.Bounds{Min: cfg.MazeMinSize, Max: cfg.MazeMaxSize},
		DefaultSize: cfg.MazeDefaultSize,
	})
	if err != nil {
		return err
	}
	leaderboard := service.NewLeaderboardService(db, service.LeaderboardOptions{
		DefaultLimit: cfg.LeaderboardDefaultLimit,
		MaxLimit:     cfg.LeaderboardMaxLimit,
	})

	server := api.NewServer(db, mazes, leaderboard, api.Options{
		Logger:         logger,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithFields(logrus.Fields{
			"addr":    httpServer.Addr,
			"version": api.Version,
			"origins": cfg.CORSOrigins,
		}).Info("maze backend listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(sctx)
	})

	return g.Wait()
}
