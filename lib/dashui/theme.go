// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fv-platform/adminboard/lib/platformapi"
)

// Theme defines the color palette for the admin dashboard. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Tenant status colors.
	StatusActive    lipgloss.Color
	StatusSuspended lipgloss.Color

	// Pod phase colors.
	PodRunning lipgloss.Color
	PodFailing lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	AccentText       lipgloss.Color
	ErrorText        lipgloss.Color

	// Modal overlays.
	ModalForeground lipgloss.Color
	ModalBackground lipgloss.Color
}

// TenantStatusColor returns the color for a tenant status string.
// Unknown values (provisioning states and the like) render faint.
func (theme Theme) TenantStatusColor(status string) lipgloss.Color {
	switch status {
	case platformapi.TenantStatusActive:
		return theme.StatusActive
	case platformapi.TenantStatusSuspended:
		return theme.StatusSuspended
	default:
		return theme.FaintText
	}
}

// PodStatusColor returns the color for a pod phase. Running is the
// only healthy phase; everything else gets the failure color.
func (theme Theme) PodStatusColor(status string) lipgloss.Color {
	if status == platformapi.PodStatusRunning {
		return theme.PodRunning
	}
	return theme.PodFailing
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusActive:    lipgloss.Color("114"), // green
	StatusSuspended: lipgloss.Color("196"), // red

	PodRunning: lipgloss.Color("114"), // green
	PodFailing: lipgloss.Color("208"), // orange

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	AccentText:       lipgloss.Color("75"), // blue
	ErrorText:        lipgloss.Color("196"),

	ModalForeground: lipgloss.Color("252"),
	ModalBackground: lipgloss.Color("237"),
}
