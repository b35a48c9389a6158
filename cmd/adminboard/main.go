// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

// adminboard is the terminal dashboard for platform operators: sign in
// as a super admin, watch platform statistics, tenants, and pod health,
// and suspend or activate tenants.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/fv-platform/adminboard/lib/config"
	"github.com/fv-platform/adminboard/lib/dashui"
	"github.com/fv-platform/adminboard/lib/platformapi"
	"github.com/fv-platform/adminboard/lib/session"
	"github.com/fv-platform/adminboard/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "adminboard:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  = pflag.String("config", "", "path to config file (default: $ADMINBOARD_CONFIG)")
		apiURL      = pflag.String("api", "", "override the API base URL")
		sessionFile = pflag.String("session-file", "", "override the session file path")
		loginEmail  = pflag.String("login", "", "log in as the given email without starting the UI")
		logOutput   = pflag.String("log-output", "", "write JSON logs to this file (default: logging disabled)")
		showVersion = pflag.Bool("version", false, "print version and exit")
	)
	pflag.Parse()

	if *showVersion {
		version.Print("adminboard")
		return nil
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}
	if *sessionFile != "" {
		cfg.SessionFile = *sessionFile
	}

	logger, closeLogger, err := newLogger(*logOutput)
	if err != nil {
		return err
	}
	defer closeLogger()

	store := session.NewFileStore(cfg.SessionFile)
	client := platformapi.New(cfg.APIURL, store)

	if *loginEmail != "" {
		return headlessLogin(client, store, *loginEmail)
	}

	statsInterval, tenantsInterval, podsInterval := cfg.PollIntervals()
	model := dashui.NewModel(client, store, dashui.Options{
		PlatformDomain:  cfg.PlatformDomain,
		DefaultEmail:    cfg.Login.DefaultEmail,
		StatsInterval:   statsInterval,
		TenantsInterval: tenantsInterval,
		PodsInterval:    podsInterval,
		Logger:          logger,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// newLogger opens the log sink. The TUI owns the terminal, so logging
// goes to a file or nowhere.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(file, nil))
	return logger, func() { file.Close() }, nil
}

// headlessLogin authenticates without starting the UI and persists the
// session on success. The same super admin gate applies: any other
// role is rejected and nothing is stored.
func headlessLogin(client *platformapi.Client, store session.Store, email string) error {
	fmt.Fprintf(os.Stderr, "Password for %s: ", email)
	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	auth, err := client.Login(ctx, email, string(passwordBytes))
	if err != nil {
		return err
	}
	if auth.User.Role != platformapi.RoleSuperAdmin {
		return fmt.Errorf("account %s is not a super admin", email)
	}
	if err := store.SetToken(auth.Token); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s\n", auth.User.Email)
	return nil
}
