// Command notes is a terminal client for the notes API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/YouWantToPinch/pincher-notes/internal/client"
)

func main() {
	level := slog.LevelWarn
	if os.Getenv("NOTES_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	sessionPath := os.Getenv("NOTES_SESSION")
	if sessionPath == "" {
		p, err := client.DefaultSessionPath()
		if err != nil {
			slog.Error("no session path", slog.Any("error", err))
			os.Exit(1)
		}
		sessionPath = p
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(os.Stdin, os.Stdout, sessionPath, os.Getenv("NOTES_API_URL"))
	if err := a.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
