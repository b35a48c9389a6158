// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/fv-platform/adminboard/lib/platformapi"
)

var tabLabels = [...]string{"Overview", "Tenants", "Kubernetes"}

// View renders the dashboard: header with tabs, the active tab's body,
// and a help footer, with the confirm modal spliced on top when open.
func (dash DashboardModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(dash.theme.HeaderForeground)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(dash.theme.AccentText)
	tabStyle := lipgloss.NewStyle().
		Foreground(dash.theme.FaintText)
	helpStyle := lipgloss.NewStyle().
		Foreground(dash.theme.HelpText)
	errorStyle := lipgloss.NewStyle().
		Foreground(dash.theme.ErrorText)

	var tabs []string
	for index, label := range tabLabels {
		rendered := fmt.Sprintf("%d:%s", index+1, label)
		if Tab(index) == dash.tab {
			tabs = append(tabs, activeTabStyle.Render(rendered))
		} else {
			tabs = append(tabs, tabStyle.Render(rendered))
		}
	}
	header := titleStyle.Render("FV Platform Admin") + "   " + strings.Join(tabs, "  ")

	var body string
	switch dash.tab {
	case TabOverview:
		body = dash.viewOverview()
	case TabTenants:
		body = dash.viewTenants()
	case TabKubernetes:
		body = dash.viewKubernetes()
	}

	footer := helpStyle.Render("j/k move  Enter suspend/activate  r refresh  x logout  q quit")
	if dash.notice != "" {
		footer = errorStyle.Render(dash.notice)
	}

	// Pad the body so the footer sits on the last line.
	bodyHeight := dash.height - 3 // header, blank line, footer
	bodyLines := strings.Split(body, "\n")
	for len(bodyLines) < bodyHeight {
		bodyLines = append(bodyLines, "")
	}
	if bodyHeight > 0 && len(bodyLines) > bodyHeight {
		bodyLines = bodyLines[:bodyHeight]
	}

	view := header + "\n\n" + strings.Join(bodyLines, "\n") + "\n" + footer

	if dash.confirm != nil {
		overlayLines, anchorX, anchorY := dash.confirm.Render(dash.width, dash.height)
		view = spliceOverlay(view, overlayLines, anchorX, anchorY)
	}
	return view
}

// queryStatus renders the loading/error banner for a query that has
// no data yet, or an empty string when data is available.
func queryStatus(loading bool, err error, hasValue bool, theme Theme) string {
	if loading {
		return lipgloss.NewStyle().Foreground(theme.FaintText).Render("Loading…")
	}
	if err != nil && !hasValue {
		return lipgloss.NewStyle().Foreground(theme.ErrorText).Render("Failed to load: " + err.Error())
	}
	return ""
}

// staleMarker renders a faint warning when the last refresh failed but
// older data is still on screen.
func (dash DashboardModel) staleMarker(err error) string {
	if err == nil {
		return ""
	}
	return lipgloss.NewStyle().Foreground(dash.theme.FaintText).Render("  (refresh failed, showing last data)")
}

func (dash DashboardModel) viewOverview() string {
	labelStyle := lipgloss.NewStyle().Foreground(dash.theme.FaintText)
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(dash.theme.NormalText)
	accentStyle := lipgloss.NewStyle().Foreground(dash.theme.AccentText)

	stats, hasStats := dash.stats.Value()
	if status := queryStatus(dash.stats.Loading(), dash.stats.Err(), hasStats, dash.theme); status != "" {
		return status
	}

	row := func(label, value, note string) string {
		line := fmt.Sprintf("  %s %s", labelStyle.Render(fmt.Sprintf("%-16s", label)), valueStyle.Render(value))
		if note != "" {
			line += "  " + accentStyle.Render(note)
		}
		return line
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(dash.theme.HeaderForeground).Render("Platform Overview") + dash.staleMarker(dash.stats.Err()),
		"",
		row("Total Tenants", fmt.Sprintf("%d", stats.TotalTenants), fmt.Sprintf("%d active", stats.ActiveTenants)),
		row("Total Products", fmt.Sprintf("%d", stats.TotalProducts), ""),
		row("Total Orders", fmt.Sprintf("%d", stats.TotalOrders), ""),
		row("Total Revenue", fmt.Sprintf("$%.2f", stats.TotalRevenue), ""),
		row("Total Users", fmt.Sprintf("%d", stats.TotalUsers), ""),
	}

	// Pod health summary, derived from the pods query when it has
	// data. Absence here is not an error; the Kubernetes tab owns the
	// detailed state.
	if pods, ok := dash.pods.Value(); ok {
		running := 0
		for _, pod := range pods {
			if pod.Status == platformapi.PodStatusRunning {
				running++
			}
		}
		lines = append(lines, "",
			row("Pods", fmt.Sprintf("%d running", running), fmt.Sprintf("%d total", len(pods))))
	}
	return strings.Join(lines, "\n")
}

func (dash DashboardModel) viewTenants() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(dash.theme.HeaderForeground)
	faintStyle := lipgloss.NewStyle().Foreground(dash.theme.FaintText)
	selectedStyle := lipgloss.NewStyle().
		Background(dash.theme.SelectedBackground).
		Foreground(dash.theme.SelectedForeground)

	tenants, hasTenants := dash.tenants.Value()
	if status := queryStatus(dash.tenants.Loading(), dash.tenants.Err(), hasTenants, dash.theme); status != "" {
		return status
	}
	if len(tenants) == 0 {
		return faintStyle.Render("No tenants yet")
	}

	title := headerStyle.Render("Tenants") + dash.staleMarker(dash.tenants.Err())
	columns := faintStyle.Render(fmt.Sprintf("  %-5s %-22s %-30s %-11s %-11s %s",
		"ID", "STORE", "URL", "STATUS", "CREATED", "ACTION"))

	lines := []string{title, "", columns}
	for index, tenant := range tenants {
		statusStyle := lipgloss.NewStyle().Foreground(dash.theme.TenantStatusColor(tenant.Status))
		action := "activate"
		if tenant.Status == platformapi.TenantStatusActive {
			action = "suspend"
		}

		row := fmt.Sprintf("  %-5d %-22s %-30s %s %-11s %s",
			tenant.ID,
			ansi.Truncate(tenant.StoreName, 22, "…"),
			ansi.Truncate(tenant.StoreURL(dash.platformDomain), 30, "…"),
			statusStyle.Render(fmt.Sprintf("%-11s", tenant.Status)),
			createdDate(tenant.CreatedAt),
			faintStyle.Render(action),
		)
		if index == dash.tenantCursor {
			row = selectedStyle.Render(fmt.Sprintf("> %-5d %-22s %-30s %-11s %-11s %s",
				tenant.ID,
				ansi.Truncate(tenant.StoreName, 22, "…"),
				ansi.Truncate(tenant.StoreURL(dash.platformDomain), 30, "…"),
				tenant.Status,
				createdDate(tenant.CreatedAt),
				action,
			))
		}
		lines = append(lines, row)
	}
	return strings.Join(lines, "\n")
}

// createdDate shortens an RFC 3339 timestamp to its date part. Values
// that are not timestamps pass through unchanged.
func createdDate(createdAt string) string {
	if len(createdAt) >= 10 {
		return createdAt[:10]
	}
	return createdAt
}

func (dash DashboardModel) viewKubernetes() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(dash.theme.HeaderForeground)
	faintStyle := lipgloss.NewStyle().Foreground(dash.theme.FaintText)

	pods, hasPods := dash.pods.Value()
	if status := queryStatus(dash.pods.Loading(), dash.pods.Err(), hasPods, dash.theme); status != "" {
		return status
	}
	if len(pods) == 0 {
		return faintStyle.Render("No pods found")
	}

	title := headerStyle.Render("Kubernetes") + dash.staleMarker(dash.pods.Err())
	columns := faintStyle.Render(fmt.Sprintf("  %-36s %-18s %-9s %-7s %-8s %s",
		"NAME", "STATUS", "RESTARTS", "AGE", "CPU", "MEMORY"))

	lines := []string{title, "", columns}
	for _, pod := range pods {
		statusStyle := lipgloss.NewStyle().Foreground(dash.theme.PodStatusColor(pod.Status))
		lines = append(lines, fmt.Sprintf("  %-36s %s %-9d %-7s %-8s %s",
			ansi.Truncate(pod.Name, 36, "…"),
			statusStyle.Render(fmt.Sprintf("%-18s", pod.Status)),
			pod.Restarts,
			pod.Age,
			pod.CPU,
			pod.Memory,
		))
	}
	return strings.Join(lines, "\n")
}
