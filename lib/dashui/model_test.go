// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fv-platform/adminboard/lib/mockbackend"
	"github.com/fv-platform/adminboard/lib/platformapi"
	"github.com/fv-platform/adminboard/lib/query"
	"github.com/fv-platform/adminboard/lib/session"
)

// newTestModel wires a Model against a live mock backend with short
// poll intervals.
func newTestModel(t *testing.T) (Model, *session.MemoryStore) {
	t.Helper()
	backend := httptest.NewServer(mockbackend.New(mockbackend.Config{}))
	t.Cleanup(backend.Close)

	store := session.NewMemoryStore()
	client := platformapi.New(backend.URL, store)
	model := NewModel(client, store, Options{
		PlatformDomain:  "fv-company.com",
		DefaultEmail:    "admin@fv-company.com",
		StatsInterval:   time.Millisecond,
		TenantsInterval: time.Millisecond,
		PodsInterval:    time.Millisecond,
	})
	return model, store
}

// drain executes commands synchronously, feeding resulting messages
// back into the model. Tick messages are dropped so the polling loops
// don't spin forever; tests trigger refetches explicitly.
func drain(t *testing.T, model Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("drain did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		message := next()
		switch message := message.(type) {
		case tea.BatchMsg:
			queue = append(queue, message...)
		case statsTickMsg, tenantsTickMsg, podsTickMsg, tea.QuitMsg:
			// Dropped.
		default:
			updated, cmd := model.Update(message)
			model = updated.(Model)
			queue = append(queue, cmd)
		}
	}
	return model
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// loginAs submits the given credentials and settles the result.
func loginAs(t *testing.T, model Model, email, password string) Model {
	t.Helper()
	return drain(t, model, model.submitLogin(email, password))
}

func TestStartsOnLoginWithoutSession(t *testing.T) {
	model, _ := newTestModel(t)
	if model.screen != ScreenLogin {
		t.Fatal("fresh model should start on the login screen")
	}
	view := model.View()
	if !strings.Contains(view, "FV Platform Admin") {
		t.Error("login view missing title")
	}
	if !strings.Contains(view, "admin@fv-company.com") {
		t.Error("email field should be prefilled with the default email")
	}
}

func TestStartsOnDashboardWithSession(t *testing.T) {
	backend := httptest.NewServer(mockbackend.New(mockbackend.Config{}))
	t.Cleanup(backend.Close)
	store := session.NewMemoryStore()
	store.SetToken("existing-token")

	model := NewModel(platformapi.New(backend.URL, store), store, Options{})
	if model.screen != ScreenDashboard {
		t.Fatal("model with a stored token should start on the dashboard")
	}
}

func TestLoginFailureShowsBackendMessage(t *testing.T) {
	model, store := newTestModel(t)

	model = loginAs(t, model, "admin@fv-company.com", "wrong")
	if model.screen != ScreenLogin {
		t.Fatal("failed login must not leave the login screen")
	}
	if model.login.errorText != "invalid credentials" {
		t.Errorf("expected backend error message, got %q", model.login.errorText)
	}
	if _, ok := store.Token(); ok {
		t.Error("failed login must not persist a token")
	}
}

func TestLoginTransportFailureShowsGenericMessage(t *testing.T) {
	store := session.NewMemoryStore()
	client := platformapi.New("http://127.0.0.1:1", store)
	model := NewModel(client, store, Options{})

	model = loginAs(t, model, "admin@fv-company.com", "admin123")
	if model.login.errorText != "Login failed" {
		t.Errorf("transport failure should show the generic message, got %q", model.login.errorText)
	}
}

func TestLoginRoleGate(t *testing.T) {
	// Backend that accepts the credentials but reports a
	// non-privileged role.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(platformapi.AuthResponse{
			Token: "a-valid-token",
			User:  platformapi.AuthenticatedUser{ID: 2, Email: "staff@fv-company.com", Role: "staff"},
		})
	})
	backend := httptest.NewServer(handler)
	t.Cleanup(backend.Close)

	store := session.NewMemoryStore()
	model := NewModel(platformapi.New(backend.URL, store), store, Options{})

	model = loginAs(t, model, "staff@fv-company.com", "password")
	if model.screen != ScreenLogin {
		t.Fatal("non-privileged login must not reach the dashboard")
	}
	if model.login.errorText != "super admin access required" {
		t.Errorf("expected role gate message, got %q", model.login.errorText)
	}
	if _, ok := store.Token(); ok {
		t.Error("non-privileged login must never persist the token")
	}
}

func TestLoginSuccessTransitionsAndPersists(t *testing.T) {
	model, store := newTestModel(t)

	model = loginAs(t, model, "admin@fv-company.com", "admin123")
	if model.screen != ScreenDashboard {
		t.Fatal("successful super admin login should reach the dashboard")
	}
	if _, ok := store.Token(); !ok {
		t.Error("successful login should persist the token")
	}

	// The drain also settled the initial fetches: the overview shows
	// seeded data.
	view := model.View()
	if !strings.Contains(view, "Platform Overview") {
		t.Errorf("expected overview tab after login, got:\n%s", view)
	}
	if !strings.Contains(view, "3 active") {
		t.Errorf("expected active tenant count from seeded data, got:\n%s", view)
	}
}

func TestLogoutClearsSessionAndStopsPolling(t *testing.T) {
	model, store := newTestModel(t)
	model = loginAs(t, model, "admin@fv-company.com", "admin123")
	previousGen := model.gen

	updated, _ := model.Update(keyRune('x'))
	model = updated.(Model)

	if model.screen != ScreenLogin {
		t.Fatal("logout should return to the login screen")
	}
	if _, ok := store.Token(); ok {
		t.Error("logout should clear the persisted token")
	}
	if model.gen != previousGen+1 {
		t.Error("logout should advance the mount generation")
	}

	// A tick from the old mount is dropped without scheduling work.
	updated, cmd := model.Update(statsTickMsg{gen: previousGen})
	model = updated.(Model)
	if cmd != nil {
		t.Error("stale-generation tick must not schedule a fetch")
	}
}

func TestOverviewRendersStats(t *testing.T) {
	model, _ := newTestModel(t)
	model.screen = ScreenDashboard
	model.dash = model.newDashboard()

	model.dash.stats.Apply(query.Result[*platformapi.PlatformStats]{
		Seq: 1,
		Value: &platformapi.PlatformStats{
			TotalTenants:  5,
			ActiveTenants: 3,
			TotalProducts: 120,
			TotalOrders:   40,
			TotalRevenue:  1999.5,
			TotalUsers:    12,
		},
	})
	model.dash.pods.Apply(query.Result[[]platformapi.PodStatus]{
		Seq: 1,
		Value: []platformapi.PodStatus{
			{Name: "api-1", Status: "Running"},
			{Name: "worker-1", Status: "CrashLoopBackOff"},
		},
	})

	view := model.View()
	for _, want := range []string{"5", "3 active", "$1999.50", "1 running"} {
		if !strings.Contains(view, want) {
			t.Errorf("overview missing %q:\n%s", want, view)
		}
	}
}

func TestTenantsTabRendersRowsAndEmptyState(t *testing.T) {
	model, _ := newTestModel(t)
	model.screen = ScreenDashboard
	model.dash = model.newDashboard()
	model.dash.tab = TabTenants

	model.dash.tenants.Apply(query.Result[[]platformapi.Tenant]{
		Seq:   1,
		Value: []platformapi.Tenant{},
	})
	if view := model.View(); !strings.Contains(view, "No tenants yet") {
		t.Errorf("empty tenant list should render the empty state:\n%s", view)
	}

	model.dash.tenants.Apply(query.Result[[]platformapi.Tenant]{
		Seq: 2,
		Value: []platformapi.Tenant{
			{ID: 7, StoreName: "Aurora Outfitters", Subdomain: "aurora", Status: "active", CreatedAt: "2026-01-15T08:00:00Z"},
		},
	})
	view := model.View()
	for _, want := range []string{"Aurora Outfitters", "aurora.fv-company.com", "2026-01-15", "suspend"} {
		if !strings.Contains(view, want) {
			t.Errorf("tenants tab missing %q:\n%s", want, view)
		}
	}
}

func TestFailedRefreshKeepsPreviousData(t *testing.T) {
	model, _ := newTestModel(t)
	model.screen = ScreenDashboard
	model.dash = model.newDashboard()
	model.dash.tab = TabTenants

	model.dash.tenants.Apply(query.Result[[]platformapi.Tenant]{
		Seq:   1,
		Value: []platformapi.Tenant{{ID: 1, StoreName: "Cedar Coffee", Subdomain: "cedar", Status: "active"}},
	})
	model.dash.tenants.Apply(query.Result[[]platformapi.Tenant]{
		Seq: 2,
		Err: &platformapi.APIError{StatusCode: 500, Message: "backend down"},
	})

	view := model.View()
	if !strings.Contains(view, "Cedar Coffee") {
		t.Errorf("previous data should stay on screen after a failed refresh:\n%s", view)
	}
	if !strings.Contains(view, "refresh failed") {
		t.Errorf("stale data should be marked:\n%s", view)
	}
}

func TestSuspendFlowEndToEnd(t *testing.T) {
	model, _ := newTestModel(t)
	model = loginAs(t, model, "admin@fv-company.com", "admin123")

	// Switch to the tenants tab; cursor starts on tenant 1 (active).
	updated, _ := model.Update(keyRune('2'))
	model = updated.(Model)

	// Enter opens the confirmation; nothing is sent yet.
	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)
	if model.dash.confirm == nil {
		t.Fatal("enter on a tenant should open the confirm modal")
	}
	if cmd != nil {
		t.Fatal("opening the confirm must not issue a request")
	}
	if view := model.View(); !strings.Contains(view, "Are you sure you want to suspend") {
		t.Errorf("confirm modal missing prompt:\n%s", view)
	}

	// Decline: modal closes, no mutation.
	updated, cmd = model.Update(keyRune('n'))
	model = updated.(Model)
	if model.dash.confirm != nil || cmd != nil {
		t.Fatal("declining must close the modal without issuing a request")
	}

	// Confirm: mutation runs, then the tenant list refetches and the
	// row shows the new status.
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)
	updated, cmd = model.Update(keyRune('y'))
	model = updated.(Model)
	if cmd == nil {
		t.Fatal("confirming should issue the mutation")
	}
	model = drain(t, model, cmd)

	view := model.View()
	if !strings.Contains(view, "suspended") {
		t.Errorf("tenant should render as suspended after the mutation:\n%s", view)
	}
	if !strings.Contains(view, "activate") {
		t.Errorf("suspended tenant should offer the activate action:\n%s", view)
	}
}

func TestActivateRunsWithoutConfirmation(t *testing.T) {
	model, _ := newTestModel(t)
	model = loginAs(t, model, "admin@fv-company.com", "admin123")

	updated, _ := model.Update(keyRune('2'))
	model = updated.(Model)
	// Move the cursor to the seeded suspended tenant (third row).
	for range 2 {
		updated, _ = model.Update(keyRune('j'))
		model = updated.(Model)
	}

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)
	if model.dash.confirm != nil {
		t.Fatal("activating must not raise a confirmation")
	}
	if cmd == nil {
		t.Fatal("activating should dispatch the mutation immediately")
	}
	model = drain(t, model, cmd)

	view := model.View()
	if strings.Contains(view, "suspended") {
		t.Errorf("no tenant should remain suspended after activation:\n%s", view)
	}
}

func TestMutationFailureShowsNotice(t *testing.T) {
	model, _ := newTestModel(t)
	model = loginAs(t, model, "admin@fv-company.com", "admin123")

	updated, _ := model.Update(keyRune('2'))
	model = updated.(Model)

	// Target a tenant that disappeared server-side.
	model.dash.pendingVerb = "suspend"
	model.dash.pendingID = 999
	model.dash.confirm = NewConfirmModal("Suspend tenant", "Are you sure?", model.theme)

	updated, cmd := model.Update(keyRune('y'))
	model = updated.(Model)
	model = drain(t, model, cmd)

	if !strings.Contains(model.View(), "tenant not found") {
		t.Errorf("mutation failure should surface the backend message:\n%s", model.View())
	}
}

func TestStaleResultDoesNotOverwriteFresh(t *testing.T) {
	model, _ := newTestModel(t)
	model.screen = ScreenDashboard
	model.dash = model.newDashboard()
	model.dash.tab = TabTenants

	// A newer fetch (seq 2) lands before an older one (seq 1).
	fresh := query.Result[[]platformapi.Tenant]{
		Seq:   2,
		Value: []platformapi.Tenant{{ID: 1, StoreName: "Fresh Store", Subdomain: "fresh", Status: "active"}},
	}
	stale := query.Result[[]platformapi.Tenant]{
		Seq:   1,
		Value: []platformapi.Tenant{{ID: 1, StoreName: "Stale Store", Subdomain: "stale", Status: "active"}},
	}

	updated, _ := model.Update(tenantsResultMsg{gen: model.gen, result: fresh})
	model = updated.(Model)
	updated, _ = model.Update(tenantsResultMsg{gen: model.gen, result: stale})
	model = updated.(Model)

	view := model.View()
	if strings.Contains(view, "Stale Store") {
		t.Errorf("stale result overwrote fresh data:\n%s", view)
	}
	if !strings.Contains(view, "Fresh Store") {
		t.Errorf("fresh data missing:\n%s", view)
	}
}

func TestKubernetesTabRendersPods(t *testing.T) {
	model, _ := newTestModel(t)
	model.screen = ScreenDashboard
	model.dash = model.newDashboard()
	model.dash.tab = TabKubernetes

	model.dash.pods.Apply(query.Result[[]platformapi.PodStatus]{
		Seq:   1,
		Value: []platformapi.PodStatus{},
	})
	if view := model.View(); !strings.Contains(view, "No pods found") {
		t.Errorf("empty pod list should render the empty state:\n%s", view)
	}

	model.dash.pods.Apply(query.Result[[]platformapi.PodStatus]{
		Seq: 2,
		Value: []platformapi.PodStatus{
			{Name: "platform-api-0", Status: "Running", Restarts: 2, Age: "3d", CPU: "120m", Memory: "256Mi"},
		},
	})
	view := model.View()
	for _, want := range []string{"platform-api-0", "Running", "3d", "120m", "256Mi"} {
		if !strings.Contains(view, want) {
			t.Errorf("kubernetes tab missing %q:\n%s", want, view)
		}
	}
}
