package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"orrery/config"
	"orrery/handlers"
	"orrery/metrics"
	"orrery/models"
	"orrery/simulation"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	v := viper.New()
	var configPath string

	cmd := &cobra.Command{
		Use:           "orrery",
		Short:         "Animated solar system orrery API",
		Long:          `Runs the orrery simulation and serves bodies, frames and camera intents over HTTP and websocket.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "config file (default ./orrery.yaml if present)")
	flags.String("listen", ":8080", "HTTP listen address")
	flags.Bool("debug", false, "debug logging and request logs")
	flags.Int64("seed", 0, "random seed for initial phases and the belt (0 = time based)")
	_ = v.BindPFlag("listen", flags.Lookup("listen"))
	_ = v.BindPFlag("debug", flags.Lookup("debug"))
	_ = v.BindPFlag("seed", flags.Lookup("seed"))
	return cmd
}

func newLogger(debug bool) kitlog.Logger {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC, "caller", kitlog.DefaultCaller)
	if debug {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}

func serve(parent context.Context, cfg config.Config) error {
	logger := newLogger(cfg.Debug)
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	var collector *metrics.Collector
	if cfg.Metrics {
		collector = metrics.NewCollector(prometheus.NewRegistry())
	}

	engine, err := simulation.New(models.DefaultCatalog(), simulation.Options{
		PhysicsInterval: cfg.PhysicsInterval(),
		CameraInterval:  cfg.CameraInterval(),
		BeltSize:        cfg.BeltSize,
		Seed:            cfg.Seed,
		Logger:          logger,
		Metrics:         collector,
	})
	if err != nil {
		level.Error(logger).Log("msg", "invalid catalog", "err", err)
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine.Start(ctx)
	defer engine.Stop()

	h := handlers.New(engine, logger, cfg.StreamInterval())
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           handlers.NewRouter(h, cfg, collector),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		level.Info(logger).Log("msg", "orrery API listening", "addr", cfg.Listen, "metrics", cfg.Metrics)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			level.Error(logger).Log("msg", "server failed", "err", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	level.Info(logger).Log("msg", "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
