// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fv-platform/adminboard/lib/platformapi"
	"github.com/fv-platform/adminboard/lib/query"
)

// Tab identifies the active dashboard view.
type Tab int

const (
	TabOverview Tab = iota
	TabTenants
	TabKubernetes
)

// requestTimeout bounds every API call issued from the UI loop. Polls
// run on fixed cadence; a hung request must not outlive its slot by
// much.
const requestTimeout = 10 * time.Second

func contextWithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// DashboardModel is the post-login screen: three polled queries and a
// tab-switched view over them. It exists only while an operator is
// signed in; logout discards it, and the generation stamp on its tick
// and result messages keeps a discarded dashboard's in-flight work
// from touching its replacement.
type DashboardModel struct {
	client         *platformapi.Client
	theme          Theme
	keys           KeyMap
	platformDomain string
	logger         *slog.Logger

	gen int

	stats   *query.Query[*platformapi.PlatformStats]
	tenants *query.Query[[]platformapi.Tenant]
	pods    *query.Query[[]platformapi.PodStatus]

	tab          Tab
	tenantCursor int
	confirm      *ConfirmModal
	pendingID    int64  // Tenant the open confirm targets.
	pendingVerb  string // "suspend" or "activate".
	mutating     bool
	notice       string // Last mutation failure, cleared on next key.

	width, height int
}

func newDashboard(client *platformapi.Client, gen int, theme Theme, keys KeyMap, platformDomain string, statsInterval, tenantsInterval, podsInterval time.Duration, logger *slog.Logger, width, height int) DashboardModel {
	return DashboardModel{
		client:         client,
		theme:          theme,
		keys:           keys,
		platformDomain: platformDomain,
		logger:         logger,
		gen:            gen,
		stats: query.New("stats", statsInterval, func(ctx context.Context) (*platformapi.PlatformStats, error) {
			return client.Stats(ctx)
		}),
		tenants: query.New("tenants", tenantsInterval, func(ctx context.Context) ([]platformapi.Tenant, error) {
			return client.Tenants(ctx)
		}),
		pods: query.New("pods", podsInterval, func(ctx context.Context) ([]platformapi.PodStatus, error) {
			return client.Pods(ctx)
		}),
		width:  width,
		height: height,
	}
}

// initCmds kicks off the initial fetch of all three queries and their
// polling timers.
func (dash DashboardModel) initCmds() tea.Cmd {
	return tea.Batch(
		dash.fetchStats(),
		dash.fetchTenants(),
		dash.fetchPods(),
		dash.scheduleStats(),
		dash.scheduleTenants(),
		dash.schedulePods(),
	)
}

func (dash DashboardModel) fetchStats() tea.Cmd {
	gen, q := dash.gen, dash.stats
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return statsResultMsg{gen: gen, result: q.Fetch(ctx)}
	}
}

func (dash DashboardModel) fetchTenants() tea.Cmd {
	gen, q := dash.gen, dash.tenants
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return tenantsResultMsg{gen: gen, result: q.Fetch(ctx)}
	}
}

func (dash DashboardModel) fetchPods() tea.Cmd {
	gen, q := dash.gen, dash.pods
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return podsResultMsg{gen: gen, result: q.Fetch(ctx)}
	}
}

func (dash DashboardModel) scheduleStats() tea.Cmd {
	gen := dash.gen
	return tea.Tick(dash.stats.Interval(), func(time.Time) tea.Msg {
		return statsTickMsg{gen: gen}
	})
}

func (dash DashboardModel) scheduleTenants() tea.Cmd {
	gen := dash.gen
	return tea.Tick(dash.tenants.Interval(), func(time.Time) tea.Msg {
		return tenantsTickMsg{gen: gen}
	})
}

func (dash DashboardModel) schedulePods() tea.Cmd {
	gen := dash.gen
	return tea.Tick(dash.pods.Interval(), func(time.Time) tea.Msg {
		return podsTickMsg{gen: gen}
	})
}

// update processes polling and mutation messages. Generation-stale
// messages must be filtered by the caller before this point.
func (dash DashboardModel) update(message tea.Msg) (DashboardModel, tea.Cmd) {
	switch message := message.(type) {
	case statsTickMsg:
		return dash, tea.Batch(dash.fetchStats(), dash.scheduleStats())
	case tenantsTickMsg:
		return dash, tea.Batch(dash.fetchTenants(), dash.scheduleTenants())
	case podsTickMsg:
		return dash, tea.Batch(dash.fetchPods(), dash.schedulePods())

	case statsResultMsg:
		if dash.stats.Apply(message.result) && message.result.Err != nil {
			dash.logger.Warn("stats refresh failed", "error", message.result.Err)
		}
		return dash, nil
	case tenantsResultMsg:
		if dash.tenants.Apply(message.result) && message.result.Err != nil {
			dash.logger.Warn("tenants refresh failed", "error", message.result.Err)
		}
		dash.clampCursor()
		return dash, nil
	case podsResultMsg:
		if dash.pods.Apply(message.result) && message.result.Err != nil {
			dash.logger.Warn("pods refresh failed", "error", message.result.Err)
		}
		return dash, nil

	case mutationResultMsg:
		dash.mutating = false
		if message.err != nil {
			dash.logger.Warn("tenant mutation failed", "action", message.action, "tenant_id", message.tenantID, "error", message.err)
			dash.notice = fmt.Sprintf("%s failed: %v", message.action, message.err)
			return dash, nil
		}
		dash.logger.Info("tenant mutation applied", "action", message.action, "tenant_id", message.tenantID)
		// The tenant list and the active-count stat are both stale
		// now; refetch immediately rather than waiting for the timers.
		return dash, tea.Batch(dash.fetchTenants(), dash.fetchStats())
	}
	return dash, nil
}

// clampCursor keeps the tenant cursor inside the current list after a
// refresh shrinks it.
func (dash *DashboardModel) clampCursor() {
	tenants, _ := dash.tenants.Value()
	if dash.tenantCursor >= len(tenants) {
		dash.tenantCursor = len(tenants) - 1
	}
	if dash.tenantCursor < 0 {
		dash.tenantCursor = 0
	}
}

// handleKey processes a key press on the dashboard. The confirm modal,
// when open, captures all input.
func (dash DashboardModel) handleKey(message tea.KeyMsg) (DashboardModel, tea.Cmd) {
	dash.notice = ""

	if dash.confirm != nil {
		switch {
		case message.String() == "y", key.Matches(message, dash.keys.Action):
			verb, tenantID := dash.pendingVerb, dash.pendingID
			dash.confirm = nil
			dash.mutating = true
			return dash, dash.mutateTenant(verb, tenantID)
		case message.String() == "n", key.Matches(message, dash.keys.Cancel):
			dash.confirm = nil
		}
		return dash, nil
	}

	switch {
	case key.Matches(message, dash.keys.TabOverview):
		dash.tab = TabOverview
	case key.Matches(message, dash.keys.TabTenants):
		dash.tab = TabTenants
	case key.Matches(message, dash.keys.TabKubernetes):
		dash.tab = TabKubernetes

	case key.Matches(message, dash.keys.Up):
		if dash.tab == TabTenants && dash.tenantCursor > 0 {
			dash.tenantCursor--
		}
	case key.Matches(message, dash.keys.Down):
		if dash.tab == TabTenants {
			dash.tenantCursor++
			dash.clampCursor()
		}

	case key.Matches(message, dash.keys.Action):
		if dash.tab == TabTenants && !dash.mutating {
			if tenant, ok := dash.selectedTenant(); ok {
				// Suspending is destructive for the tenant's
				// storefront, so it requires confirmation.
				// Re-activating does not.
				if tenant.Status == platformapi.TenantStatusActive {
					dash.openConfirm(tenant)
				} else {
					dash.mutating = true
					return dash, dash.mutateTenant("activate", tenant.ID)
				}
			}
		}

	case key.Matches(message, dash.keys.Refresh):
		switch dash.tab {
		case TabOverview:
			return dash, dash.fetchStats()
		case TabTenants:
			return dash, dash.fetchTenants()
		case TabKubernetes:
			return dash, dash.fetchPods()
		}
	}
	return dash, nil
}

// selectedTenant returns the tenant under the cursor, if any.
func (dash DashboardModel) selectedTenant() (platformapi.Tenant, bool) {
	tenants, _ := dash.tenants.Value()
	if dash.tenantCursor < 0 || dash.tenantCursor >= len(tenants) {
		return platformapi.Tenant{}, false
	}
	return tenants[dash.tenantCursor], true
}

// openConfirm raises the suspend confirmation for the given tenant.
func (dash *DashboardModel) openConfirm(tenant platformapi.Tenant) {
	dash.pendingVerb = "suspend"
	dash.pendingID = tenant.ID
	dash.confirm = NewConfirmModal("Suspend tenant",
		fmt.Sprintf("Are you sure you want to suspend %s?", tenant.StoreName),
		dash.theme)
}

func (dash DashboardModel) mutateTenant(verb string, tenantID int64) tea.Cmd {
	client := dash.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		var err error
		if verb == "suspend" {
			err = client.SuspendTenant(ctx, tenantID)
		} else {
			err = client.ActivateTenant(ctx, tenantID)
		}
		return mutationResultMsg{action: verb, tenantID: tenantID, err: err}
	}
}
