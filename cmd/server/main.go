// Package main provides the contacts HTTP API server.
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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"contacts/internal/cms"
	"contacts/internal/config"
	"contacts/internal/contacts"
	"contacts/internal/httpapi"
	"contacts/internal/logger"
	"contacts/internal/metrics"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	addr := flag.String("addr", "", "Listen address (overrides config and "+config.EnvAddr+")")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	log := logger.New(logger.Options{Writer: os.Stderr, Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := metrics.New(reg)

	client := cms.NewHTTPClient(cfg.CMS.BaseURL, log,
		cms.WithTimeout(cfg.CMS.GetTimeout()),
		cms.WithMaxResponseBytes(cfg.CMS.MaxResponseBytes()),
	)
	repo := contacts.NewRepository(client, contacts.Options{ForwardSearch: cfg.CMS.ForwardSearch}, log, m)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpapi.NewRouter(httpapi.New(repo, log, m), reg),
		ReadHeaderTimeout: cfg.Server.GetReadHeaderTimeout(),
	}

	errCh := make(chan error, 1)

	go func() {
		log.Info("starting contacts api", "addr", cfg.Server.Addr, "cms", cfg.CMS.BaseURL)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.Server.GetShutdownTimeout())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GetShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}
