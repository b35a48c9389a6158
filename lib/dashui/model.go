// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

// Package dashui implements the terminal UI for the platform admin
// dashboard: a sign-in form gated to super admins, and a tab-switched
// dashboard (overview, tenants, kubernetes) over three polled queries.
//
// The package follows the bubbletea architecture: a value-semantics
// Model, typed messages for every asynchronous result, and commands
// for all I/O. The API client and session store are injected, so tests
// drive the whole UI against an httptest backend.
package dashui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fv-platform/adminboard/lib/platformapi"
	"github.com/fv-platform/adminboard/lib/session"
)

// Screen identifies which top-level view is active.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenDashboard
)

// Options configures the UI. Zero values fall back to defaults.
type Options struct {
	// PlatformDomain is the apex domain tenant storefronts live
	// under.
	PlatformDomain string

	// DefaultEmail prefills the sign-in form.
	DefaultEmail string

	// Poll intervals for the three dashboard queries.
	StatsInterval   time.Duration
	TenantsInterval time.Duration
	PodsInterval    time.Duration

	Logger *slog.Logger
}

// Model is the root bubbletea model: the active screen plus the shared
// dependencies both screens use.
type Model struct {
	client *platformapi.Client
	store  session.Store
	logger *slog.Logger
	theme  Theme
	keys   KeyMap

	options Options

	screen Screen
	login  LoginModel
	dash   DashboardModel

	// gen counts dashboard mounts. Every tick and fetch result is
	// stamped with the generation it belongs to; after a logout the
	// generation advances and the old dashboard's messages are
	// dropped on arrival.
	gen int

	width, height int
}

// NewModel builds the root model. When the session store already holds
// a token the UI starts on the dashboard; an expired token surfaces as
// query errors there, and the operator logs out to re-authenticate.
func NewModel(client *platformapi.Client, store session.Store, options Options) Model {
	if options.StatsInterval <= 0 {
		options.StatsInterval = 10 * time.Second
	}
	if options.TenantsInterval <= 0 {
		options.TenantsInterval = 15 * time.Second
	}
	if options.PodsInterval <= 0 {
		options.PodsInterval = 5 * time.Second
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}

	model := Model{
		client:  client,
		store:   store,
		logger:  options.Logger,
		theme:   DefaultTheme,
		keys:    DefaultKeyMap,
		options: options,
		gen:     1,
		width:   80,
		height:  24,
	}

	if _, ok := store.Token(); ok {
		model.screen = ScreenDashboard
		model.dash = model.newDashboard()
	} else {
		model.screen = ScreenLogin
		model.login = NewLoginModel(options.DefaultEmail, model.theme, model.keys)
	}
	return model
}

func (model Model) newDashboard() DashboardModel {
	return newDashboard(model.client, model.gen, model.theme, model.keys,
		model.options.PlatformDomain,
		model.options.StatsInterval, model.options.TenantsInterval, model.options.PodsInterval,
		model.logger, model.width, model.height)
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	if model.screen == ScreenDashboard {
		return model.dash.initCmds()
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.dash.width = message.Width
		model.dash.height = message.Height
		return model, nil

	case tea.KeyMsg:
		if message.Type == tea.KeyCtrlC {
			return model, tea.Quit
		}
	}

	if model.screen == ScreenLogin {
		return model.updateLogin(message)
	}
	return model.updateDashboard(message)
}

func (model Model) updateLogin(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		var cmd tea.Cmd
		var submitted bool
		model.login, cmd, submitted = model.login.handleKey(message)
		if submitted {
			model.login.submitting = true
			return model, model.submitLogin(model.login.Email(), model.login.Password())
		}
		return model, cmd

	case loginResultMsg:
		if message.err != nil {
			model.logger.Info("login failed", "error", message.err)
			model.login = model.login.fail(loginErrorText(message.err))
			return model, nil
		}
		if message.auth.User.Role != platformapi.RoleSuperAdmin {
			// Valid credentials, wrong role. The token is never
			// persisted; the form stays up.
			model.logger.Info("login rejected for role", "role", message.auth.User.Role)
			model.login = model.login.fail("super admin access required")
			return model, nil
		}
		if err := model.store.SetToken(message.auth.Token); err != nil {
			model.logger.Error("persisting session", "error", err)
			model.login = model.login.fail("saving session: " + err.Error())
			return model, nil
		}
		model.logger.Info("login succeeded", "email", message.auth.User.Email)
		model.screen = ScreenDashboard
		model.dash = model.newDashboard()
		return model, model.dash.initCmds()
	}
	return model, nil
}

func (model Model) updateDashboard(message tea.Msg) (tea.Model, tea.Cmd) {
	// Drop polling traffic from a previous dashboard mount.
	switch message := message.(type) {
	case statsTickMsg:
		if message.gen != model.gen {
			return model, nil
		}
	case tenantsTickMsg:
		if message.gen != model.gen {
			return model, nil
		}
	case podsTickMsg:
		if message.gen != model.gen {
			return model, nil
		}
	case statsResultMsg:
		if message.gen != model.gen {
			return model, nil
		}
	case tenantsResultMsg:
		if message.gen != model.gen {
			return model, nil
		}
	case podsResultMsg:
		if message.gen != model.gen {
			return model, nil
		}
	}

	if message, ok := message.(tea.KeyMsg); ok {
		// Quit and logout are handled here; everything else belongs
		// to the dashboard (including the confirm modal, which
		// captures input first).
		if model.dash.confirm == nil {
			switch {
			case key.Matches(message, model.keys.Quit):
				return model, tea.Quit
			case key.Matches(message, model.keys.Logout):
				return model.logout()
			}
		}
		var cmd tea.Cmd
		model.dash, cmd = model.dash.handleKey(message)
		return model, cmd
	}

	var cmd tea.Cmd
	model.dash, cmd = model.dash.update(message)
	return model, cmd
}

// logout clears the persisted session and returns to the sign-in
// form. Advancing the generation stops the old polling loops.
func (model Model) logout() (tea.Model, tea.Cmd) {
	if err := model.store.Clear(); err != nil {
		model.logger.Error("clearing session", "error", err)
	}
	model.logger.Info("logged out")
	model.gen++
	model.screen = ScreenLogin
	model.login = NewLoginModel(model.options.DefaultEmail, model.theme, model.keys)
	model.dash = DashboardModel{}
	return model, textinput.Blink
}

// submitLogin issues the login request off the UI loop.
func (model Model) submitLogin(email, password string) tea.Cmd {
	client := model.client
	return func() tea.Msg {
		ctx, cancel := contextWithTimeout()
		defer cancel()
		auth, err := client.Login(ctx, email, password)
		return loginResultMsg{auth: auth, err: err}
	}
}

// loginErrorText maps a login failure to the form's error line. The
// backend's own message wins when it sent one; transport errors get
// the generic fallback.
func loginErrorText(err error) string {
	var apiErr *platformapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Login failed"
}

// View implements tea.Model.
func (model Model) View() string {
	if model.screen == ScreenLogin {
		return model.login.View(model.width, model.height)
	}
	return model.dash.View()
}
