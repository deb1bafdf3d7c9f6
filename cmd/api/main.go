package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"coupon-analytics-go/internal/aggregator"
	"coupon-analytics-go/internal/api"
	"coupon-analytics-go/internal/config"
	"coupon-analytics-go/internal/dataset"
	"coupon-analytics-go/internal/logger"
	"coupon-analytics-go/internal/metrics"
	"coupon-analytics-go/internal/processor"
)

func main() {
	_ = godotenv.Load() // loads .env

	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithOptions(logger.Options{Level: cfg.Logging.Level, Environment: cfg.Logging.Environment})
	log.WithField("service", "coupon-analytics-go").Info("starting service")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the source may be mounted after startup
	log.WithField("source_path", cfg.Source.Path).WithField("wait_timeout", cfg.Source.WaitTimeout).Info("checking coupon source")
	err = dataset.WaitForSource(ctx, cfg.Source.Path, cfg.Source.WaitTimeout, func(err error, next time.Duration) {
		log.WithError(err).WithField("retry_in", next.String()).Warn("coupon source not readable yet")
	})
	if err != nil {
		// readiness reports it; every request fails until the source shows up
		log.WithError(err).Warn("coupon source unavailable at startup")
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}
	var observer processor.Observer
	if m != nil {
		observer = m
	}
	proc := processor.New(cfg.Source.Path, aggregator.Options{TopWords: cfg.Analysis.TopWords}, log, observer)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.NewHandler(proc, log, m).Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown error")
		}
	}()

	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server terminated")
	}
	log.Info("service stopped")
}
