// Package main - Entry point for the construction cost estimation server
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"construction-cost/api"
	"construction-cost/core/pricing"
	"construction-cost/internal/config"
	"construction-cost/internal/logging"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "Config file (default is $HOME/.construction-cost.json)")
	addr := flag.String("addr", "", "Server address (overrides config and PORT)")
	flag.Parse()

	path := *cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	rates, err := pricing.Load(cfg.Rates, logging.Logger)
	if err != nil {
		return err
	}
	store, err := pricing.NewStore(rates)
	if err != nil {
		return err
	}

	srv := api.NewServer(version, store, logging.Logger).HTTPServer(cfg.Server)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("version", version),
			zap.String("rates", store.Fingerprint()),
			zap.Strings("rate_sources", store.Sources()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
