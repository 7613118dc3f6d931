package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/enact-eco/enact/internal/advisor"
	"github.com/enact-eco/enact/internal/api"
	"github.com/enact-eco/enact/internal/carbon"
	"github.com/enact-eco/enact/internal/storage"
	"github.com/enact-eco/enact/internal/sysmetrics"
	"github.com/enact-eco/enact/internal/tracker"
)

const shutdownTimeout = 10 * time.Second

var seedDemoDays int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the emission tracking API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := storage.NewEmissionLog(cfg.LogDir, logger)
		if err != nil {
			return err
		}

		estimator := carbon.NewEstimatorWithConfig(cfg.EstimatorConfig())

		if seedDemoDays > 0 {
			if err := store.SeedDemoData(seedDemoDays, estimator); err != nil {
				return err
			}
		}
		probe := sysmetrics.NewProcProbe(logger)
		adv := advisor.NewClient(
			cfg.Advisor.BaseURL,
			cfg.Advisor.Models,
			time.Duration(cfg.Advisor.TimeoutSeconds)*time.Second,
			logger,
		)

		srv := api.New(estimator, store, probe, adv, api.Thresholds{
			DailyGrams:  cfg.Thresholds.DailyGrams,
			WeeklyGrams: cfg.Thresholds.WeeklyGrams,
		}, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.Tracker.Enabled {
			interval := time.Duration(cfg.Tracker.IntervalSeconds) * time.Second
			tr := tracker.New(interval, probe, estimator, store, nil, logger)
			go func() {
				if err := tr.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error().Err(err).Msg("tracker exited")
				}
			}()
		}

		server := &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           srv.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info().
				Str("addr", cfg.ListenAddr).
				Float64("grid_intensity", estimator.GridIntensity()).
				Bool("tracker", cfg.Tracker.Enabled).
				Msg("server starting")
			errCh <- server.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		case <-ctx.Done():
			logger.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("shutdown failed")
				return err
			}
		}

		logger.Info().Msg("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&seedDemoDays, "seed-demo", 0, "seed N days of demo data before serving")
}
