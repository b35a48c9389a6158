// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ConfirmModal is a yes/no prompt rendered as a centered overlay. The
// dashboard raises one before every tenant mutation; nothing is sent
// to the backend until the operator confirms.
type ConfirmModal struct {
	Title   string
	Message string

	theme Theme
}

// NewConfirmModal creates a ConfirmModal with the given title and
// one-line message.
func NewConfirmModal(title, message string, theme Theme) *ConfirmModal {
	return &ConfirmModal{
		Title:   title,
		Message: message,
		theme:   theme,
	}
}

// Render produces the modal overlay lines for splicing onto the view.
// Returns the rendered lines and the anchor position (top-left corner
// in screen coordinates).
func (modal ConfirmModal) Render(screenWidth, screenHeight int) ([]string, int, int) {
	bgStyle := lipgloss.NewStyle().
		Background(modal.theme.ModalBackground)
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.theme.HeaderForeground).
		Background(modal.theme.ModalBackground)
	textStyle := lipgloss.NewStyle().
		Foreground(modal.theme.ModalForeground).
		Background(modal.theme.ModalBackground)
	footerStyle := lipgloss.NewStyle().
		Foreground(modal.theme.FaintText).
		Background(modal.theme.ModalBackground)

	footer := "y confirm  n/Esc cancel"

	innerWidth := ansi.StringWidth(modal.Title)
	if width := ansi.StringWidth(modal.Message); width > innerWidth {
		innerWidth = width
	}
	if width := ansi.StringWidth(footer); width > innerWidth {
		innerWidth = width
	}
	// Keep the modal inside the screen; border and padding take 4
	// columns.
	if innerWidth > screenWidth-4 {
		innerWidth = screenWidth - 4
	}

	pad := func(styled string) string {
		width := ansi.StringWidth(styled)
		if width < innerWidth {
			return styled + bgStyle.Render(strings.Repeat(" ", innerWidth-width))
		}
		return ansi.Truncate(styled, innerWidth, "…")
	}

	inner := strings.Join([]string{
		pad(titleStyle.Render(modal.Title)),
		pad(""),
		pad(textStyle.Render(modal.Message)),
		pad(""),
		pad(footerStyle.Render(footer)),
	}, "\n")

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.theme.BorderColor).
		Background(modal.theme.ModalBackground).
		Padding(0, 1)

	resultLines := strings.Split(borderStyle.Render(inner), "\n")
	renderedWidth := 0
	if len(resultLines) > 0 {
		renderedWidth = ansi.StringWidth(resultLines[0])
	}

	anchorX := (screenWidth - renderedWidth) / 2
	anchorY := (screenHeight - len(resultLines)) / 2
	if anchorX < 0 {
		anchorX = 0
	}
	if anchorY < 0 {
		anchorY = 0
	}
	return resultLines, anchorX, anchorY
}
