// Package main serves an in-memory CMS contacts collection for local
// development.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contacts/internal/contacts"
	"contacts/internal/fakecms"
	"contacts/internal/logger"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:1337", "Listen address")
	seed := flag.Bool("seed", false, "Preload the reference contacts")
	level := flag.String("log-level", "info", "Log level")
	flag.Parse()

	log := logger.NewLogger(*level)

	fake := fakecms.New(log)
	if *seed {
		ids := fake.Seed(contacts.ReferenceContacts()...)
		log.Info("seeded contacts", "count", len(ids))
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           fake,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("fake cms listening", "addr", *addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("fake cms stopped", "error", err)
		os.Exit(1)
	}
}
