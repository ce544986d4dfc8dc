package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolioadvisor/internal/app"
	"portfolioadvisor/internal/config"
	"portfolioadvisor/internal/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, err := logger.New(cfg.Logging.Level, cfg.Logging.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, lg)
	if err != nil {
		lg.Fatalw("startup failed", "error", err)
	}
	defer func() { _ = a.Close() }()

	s := &server{
		svc:            a.Advisor,
		log:            lg.Named("http"),
		requestTimeout: time.Duration(cfg.Server.RequestTimeoutSec) * time.Second,
		maxBody:        cfg.Server.MaxBodyBytes,
	}
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		lg.Infow("server listening", "addr", srv.Addr, "history", cfg.History.Driver, "live", cfg.Market.LiveEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatalw("server", "error", err)
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
