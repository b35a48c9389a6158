// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"github.com/fv-platform/adminboard/lib/platformapi"
	"github.com/fv-platform/adminboard/lib/query"
)

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	auth *platformapi.AuthResponse
	err  error
}

// Tick messages drive the per-query polling cadence. Each carries the
// mount generation it was scheduled under; ticks from a previous
// dashboard mount (before a logout) are dropped, which is what stops
// the old polling loops.
type statsTickMsg struct{ gen int }
type tenantsTickMsg struct{ gen int }
type podsTickMsg struct{ gen int }

// Result messages carry a completed fetch back to the UI loop. The
// generation check drops results that raced a logout; the sequence
// number inside the Result drops results that raced a newer poll of
// the same query.
type statsResultMsg struct {
	gen    int
	result query.Result[*platformapi.PlatformStats]
}

type tenantsResultMsg struct {
	gen    int
	result query.Result[[]platformapi.Tenant]
}

type podsResultMsg struct {
	gen    int
	result query.Result[[]platformapi.PodStatus]
}

// mutationResultMsg carries the outcome of a tenant suspend/activate.
type mutationResultMsg struct {
	action   string
	tenantID int64
	err      error
}
