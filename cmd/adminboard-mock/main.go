// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

// adminboard-mock serves an in-memory mock of the platform admin API
// for local development and demos of the adminboard TUI.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/fv-platform/adminboard/lib/mockbackend"
	"github.com/fv-platform/adminboard/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "adminboard-mock:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		addr        = pflag.String("addr", "", "listen address (default: $MOCK_HTTP_ADDR or :8080)")
		showVersion = pflag.Bool("version", false, "print version and exit")
	)
	pflag.Parse()

	if *showVersion {
		version.Print("adminboard-mock")
		return nil
	}

	// A .env file is optional; absence is normal outside development.
	_ = godotenv.Load()

	listenAddr := *addr
	if listenAddr == "" {
		listenAddr = os.Getenv("MOCK_HTTP_ADDR")
	}
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	handler := mockbackend.New(mockbackend.Config{
		AdminEmail:    os.Getenv("MOCK_ADMIN_EMAIL"),
		AdminPassword: os.Getenv("MOCK_ADMIN_PASSWORD"),
		JWTSecret:     []byte(os.Getenv("MOCK_JWT_SECRET")),
		Logger:        logger,
	})

	httpServer := &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("mock platform API listening", "addr", listenAddr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
