// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

package platformapi

// Wire types for the platform admin API. Field names mirror the
// backend's JSON exactly: tenant rows use snake_case, the aggregate
// statistics use camelCase.

// RoleSuperAdmin is the only role authorized to use the dashboard.
// The backend enforces this on every /api/admin route; the client
// additionally refuses to store a credential for any other role.
const RoleSuperAdmin = "super_admin"

// AuthenticatedUser identifies the operator in a login response. It is
// transient — only the token is persisted.
type AuthenticatedUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthResponse is the wire format for POST /api/login.
type AuthResponse struct {
	Token string            `json:"token"`
	User  AuthenticatedUser `json:"user"`
}

// Tenant statuses the dashboard acts on. The backend may report other
// values (e.g. provisioning states); anything other than "active" gets
// the activate action.
const (
	TenantStatusActive    = "active"
	TenantStatusSuspended = "suspended"
)

// Tenant is one store account hosted on the platform. The dashboard
// never creates or deletes tenants — it only toggles status via the
// suspend/activate endpoints.
type Tenant struct {
	ID        int64  `json:"id"`
	StoreName string `json:"store_name"`
	Subdomain string `json:"subdomain"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// StoreURL returns the tenant's public storefront URL under the given
// platform domain.
func (tenant Tenant) StoreURL(platformDomain string) string {
	return "https://" + tenant.Subdomain + "." + platformDomain
}

// PlatformStats is the aggregate counter snapshot from
// GET /api/admin/stats. Fully replaced on each refresh.
type PlatformStats struct {
	TotalTenants  int64   `json:"totalTenants"`
	ActiveTenants int64   `json:"activeTenants"`
	TotalProducts int64   `json:"totalProducts"`
	TotalOrders   int64   `json:"totalOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalUsers    int64   `json:"totalUsers"`
}

// PodStatusRunning is the healthy pod phase as reported by the
// orchestration layer.
const PodStatusRunning = "Running"

// PodStatus is a read-only snapshot of one orchestration-layer pod.
// Identity key is Name.
type PodStatus struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Restarts int    `json:"restarts"`
	Age      string `json:"age"`
	CPU      string `json:"cpu"`
	Memory   string `json:"memory"`
}
