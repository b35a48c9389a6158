// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the admin dashboard TUI.
type KeyMap struct {
	// List navigation on the tenants tab.
	Up   key.Binding
	Down key.Binding

	// Tab switching.
	TabOverview   key.Binding
	TabTenants    key.Binding
	TabKubernetes key.Binding

	// Mutations.
	Action key.Binding // Suspend or activate the selected tenant.

	// Data.
	Refresh key.Binding // Immediate refetch of the active tab.

	// Session.
	Logout key.Binding

	// Login form.
	NextField key.Binding
	Submit    key.Binding
	Cancel    key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	TabOverview: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "overview"),
	),
	TabTenants: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "tenants"),
	),
	TabKubernetes: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "kubernetes"),
	),
	Action: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "suspend/activate"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Logout: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "logout"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("Tab", "next field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "sign in"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
