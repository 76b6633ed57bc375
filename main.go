package main

import (
	_ "github.com/lib/pq"

	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YouWantToPinch/pincher-notes/internal/api"
	notesql "github.com/YouWantToPinch/pincher-notes/sql"
)

const (
	requestTimeout    = 15 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	cfg := &api.APIConfig{}
	if err := cfg.Init(".env", ""); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.ConnectToDB(ctx, notesql.Migrations, notesql.MigrationsDir); err != nil {
		log.Fatalf("database unavailable: %v", err)
	}
	defer cfg.Close()

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           http.TimeoutHandler(api.SetupMux(cfg), requestTimeout, `{"error":"Request timed out","code":"INTERNAL_ERROR"}`),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// start server
	go func() {
		slog.Info("listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", slog.Any("error", err))
	}
}
