// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoginModel is the sign-in form: email and password fields, a
// submit-in-flight flag, and the last error message. While a login
// request is outstanding the form ignores input, so at most one
// attempt is in flight.
type LoginModel struct {
	email      textinput.Model
	password   textinput.Model
	focusIndex int // 0 = email, 1 = password
	submitting bool
	errorText  string

	theme Theme
	keys  KeyMap
}

// NewLoginModel creates the sign-in form with the email field
// prefilled and focused.
func NewLoginModel(defaultEmail string, theme Theme, keys KeyMap) LoginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.SetValue(defaultEmail)
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return LoginModel{
		email:    email,
		password: password,
		theme:    theme,
		keys:     keys,
	}
}

// handleKey processes one key press. The submitted flag is true when
// the operator triggered a login attempt; the caller owns the actual
// request and flips submitting on.
func (login LoginModel) handleKey(message tea.KeyMsg) (LoginModel, tea.Cmd, bool) {
	if login.submitting {
		return login, nil, false
	}

	switch {
	case key.Matches(message, login.keys.NextField):
		return login.moveFocus(login.focusIndex + 1), nil, false

	case message.Type == tea.KeyShiftTab || message.Type == tea.KeyUp:
		return login.moveFocus(login.focusIndex - 1), nil, false

	case key.Matches(message, login.keys.Submit):
		// Enter on the email field moves on to the password; enter on
		// the password submits, provided both fields are filled.
		if login.focusIndex == 0 {
			return login.moveFocus(1), nil, false
		}
		if login.Email() == "" || login.Password() == "" {
			login.errorText = "email and password are required"
			return login, nil, false
		}
		login.errorText = ""
		return login, nil, true
	}

	var cmd tea.Cmd
	if login.focusIndex == 0 {
		login.email, cmd = login.email.Update(message)
	} else {
		login.password, cmd = login.password.Update(message)
	}
	return login, cmd, false
}

// moveFocus shifts focus between the two fields, wrapping.
func (login LoginModel) moveFocus(index int) LoginModel {
	login.focusIndex = ((index % 2) + 2) % 2
	if login.focusIndex == 0 {
		login.email.Focus()
		login.password.Blur()
	} else {
		login.email.Blur()
		login.password.Focus()
	}
	return login
}

// Email returns the trimmed email field value.
func (login LoginModel) Email() string {
	return strings.TrimSpace(login.email.Value())
}

// Password returns the password field value.
func (login LoginModel) Password() string {
	return login.password.Value()
}

// fail records a login failure and re-enables the form.
func (login LoginModel) fail(message string) LoginModel {
	login.submitting = false
	login.errorText = message
	return login
}

// View renders the centered sign-in box.
func (login LoginModel) View(width, height int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(login.theme.HeaderForeground)
	labelStyle := lipgloss.NewStyle().
		Foreground(login.theme.FaintText)
	errorStyle := lipgloss.NewStyle().
		Foreground(login.theme.ErrorText)
	helpStyle := lipgloss.NewStyle().
		Foreground(login.theme.HelpText)

	status := helpStyle.Render("Enter sign in  Tab switch field  Ctrl+C quit")
	if login.submitting {
		status = labelStyle.Render("Signing in…")
	}

	lines := []string{
		titleStyle.Render("FV Platform Admin"),
		labelStyle.Render("super admin sign-in"),
		"",
		labelStyle.Render("Email"),
		login.email.View(),
		"",
		labelStyle.Render("Password"),
		login.password.View(),
		"",
	}
	if login.errorText != "" {
		lines = append(lines, errorStyle.Render(login.errorText), "")
	}
	lines = append(lines, status)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(login.theme.BorderColor).
		Padding(1, 2).
		Width(48)

	box := boxStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
