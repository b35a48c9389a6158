// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

// Package mockbackend implements an in-memory stand-in for the
// platform admin API. It serves the same routes with the same wire
// shapes, backed by seeded fixture data, so the dashboard can be
// developed and demonstrated without a platform deployment. Tests also
// mount it on an httptest.Server to exercise the real client.
package mockbackend

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"

	"github.com/fv-platform/adminboard/lib/platformapi"
)

// Config controls the mock's credentials and signing key. Zero values
// fall back to the development defaults.
type Config struct {
	AdminEmail    string
	AdminPassword string
	JWTSecret     []byte
	Logger        *slog.Logger
}

const (
	defaultAdminEmail    = "admin@fv-company.com"
	defaultAdminPassword = "admin123"
	tokenLifetime        = 24 * time.Hour
)

// Server is the mock platform API. It implements http.Handler.
type Server struct {
	router        chi.Router
	logger        *slog.Logger
	adminEmail    string
	adminPassword string
	jwtSecret     []byte

	mu      sync.Mutex
	tenants []platformapi.Tenant
	pods    []podFixture

	// Counters the real backend aggregates from tables the mock does
	// not model. Held fixed except where tenant mutations affect them.
	totalProducts int64
	totalOrders   int64
	totalRevenue  float64
	totalUsers    int64
}

// New creates a Server with seeded fixture data.
func New(cfg Config) *Server {
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = defaultAdminEmail
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = defaultAdminPassword
	}
	if len(cfg.JWTSecret) == 0 {
		cfg.JWTSecret = []byte("adminboard-mock-secret")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	server := &Server{
		logger:        cfg.Logger,
		adminEmail:    cfg.AdminEmail,
		adminPassword: cfg.AdminPassword,
		jwtSecret:     cfg.JWTSecret,
		tenants:       seedTenants(),
		pods:          seedPods(),
		totalProducts: 248,
		totalOrders:   1315,
		totalRevenue:  84312.50,
		totalUsers:    52,
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Post("/api/login", server.handleLogin)
	router.Route("/api/admin", func(r chi.Router) {
		r.Use(server.requireAdmin)
		r.Get("/stats", server.handleStats)
		r.Get("/tenants", server.handleTenants)
		r.Get("/kubernetes", server.handleKubernetes)
		r.Post("/tenants/{tenantID}/suspend", server.handleSuspend)
		r.Post("/tenants/{tenantID}/activate", server.handleActivate)
	})
	server.router = router
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func seedTenants() []platformapi.Tenant {
	return []platformapi.Tenant{
		{ID: 1, StoreName: "Aurora Outfitters", Subdomain: "aurora", Status: platformapi.TenantStatusActive, CreatedAt: "2025-11-03T09:14:00Z"},
		{ID: 2, StoreName: "Brick & Mortar Books", Subdomain: "bmbooks", Status: platformapi.TenantStatusActive, CreatedAt: "2025-12-19T16:40:00Z"},
		{ID: 3, StoreName: "Cedar Coffee Roasters", Subdomain: "cedarcoffee", Status: platformapi.TenantStatusSuspended, CreatedAt: "2026-01-28T11:02:00Z"},
		{ID: 4, StoreName: "Driftwood Decor", Subdomain: "driftwood", Status: platformapi.TenantStatusActive, CreatedAt: "2026-03-07T14:55:00Z"},
	}
}

// podFixture is a seeded pod plus the baseline readings its drifting
// cpu/memory values are derived from.
type podFixture struct {
	pod       platformapi.PodStatus
	cpuMillis int
	memoryMiB int
}

func seedPods() []podFixture {
	return []podFixture{
		{pod: platformapi.PodStatus{Name: "platform-api-7d9f6b5c44-x2kqp", Status: platformapi.PodStatusRunning, Restarts: 0, Age: "6d"}, cpuMillis: 142, memoryMiB: 310},
		{pod: platformapi.PodStatus{Name: "platform-api-7d9f6b5c44-m8wzt", Status: platformapi.PodStatusRunning, Restarts: 1, Age: "6d"}, cpuMillis: 128, memoryMiB: 295},
		{pod: platformapi.PodStatus{Name: "storefront-5c8b7d9f66-qn4rv", Status: platformapi.PodStatusRunning, Restarts: 0, Age: "2d"}, cpuMillis: 95, memoryMiB: 180},
		{pod: platformapi.PodStatus{Name: "billing-worker-6f4d8c7b55-j7slw", Status: "CrashLoopBackOff", Restarts: 14, Age: "11h"}, cpuMillis: 12, memoryMiB: 64},
		{pod: platformapi.PodStatus{Name: "postgres-0", Status: platformapi.PodStatusRunning, Restarts: 0, Age: "19d"}, cpuMillis: 210, memoryMiB: 1228},
	}
}

// drift returns the baseline value with up to ±10% jitter, so repeated
// polls show readings that move the way a live cluster's would.
func drift(baseline int) int {
	spread := baseline / 5
	if spread < 1 {
		spread = 1
	}
	return baseline - baseline/10 + rand.IntN(spread+1)
}

// writeJSON writes v with the given status. Encoding failures are a
// programming error in fixture types; log and move on.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if request.Email != s.adminEmail || request.Password != s.adminPassword {
		s.logger.Info("login rejected", "email", request.Email)
		s.writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   "1",
		"email": s.adminEmail,
		"role":  platformapi.RoleSuperAdmin,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenLifetime).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "signing token")
		return
	}

	s.logger.Info("login accepted", "email", request.Email)
	s.writeJSON(w, http.StatusOK, platformapi.AuthResponse{
		Token: token,
		User: platformapi.AuthenticatedUser{
			ID:    1,
			Email: s.adminEmail,
			Role:  platformapi.RoleSuperAdmin,
		},
	})
}

// requireAdmin verifies the bearer token and the super_admin role on
// every /api/admin route.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization := r.Header.Get("Authorization")
		raw, found := strings.CutPrefix(authorization, "Bearer ")
		if !found || raw == "" {
			s.writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return s.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			s.writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["role"] != platformapi.RoleSuperAdmin {
			s.writeError(w, http.StatusForbidden, "super admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var active int64
	for _, tenant := range s.tenants {
		if tenant.Status == platformapi.TenantStatusActive {
			active++
		}
	}
	s.writeJSON(w, http.StatusOK, platformapi.PlatformStats{
		TotalTenants:  int64(len(s.tenants)),
		ActiveTenants: active,
		TotalProducts: s.totalProducts,
		TotalOrders:   s.totalOrders,
		TotalRevenue:  s.totalRevenue,
		TotalUsers:    s.totalUsers,
	})
}

func (s *Server) handleTenants(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tenants := make([]platformapi.Tenant, len(s.tenants))
	copy(tenants, s.tenants)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, map[string][]platformapi.Tenant{"tenants": tenants})
}

func (s *Server) handleKubernetes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	pods := make([]platformapi.PodStatus, 0, len(s.pods))
	for _, fixture := range s.pods {
		pod := fixture.pod
		pod.CPU = fmt.Sprintf("%dm", drift(fixture.cpuMillis))
		pod.Memory = fmt.Sprintf("%dMi", drift(fixture.memoryMiB))
		pods = append(pods, pod)
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, map[string][]platformapi.PodStatus{"pods": pods})
}

func (s *Server) handleSuspend(w http.ResponseWriter, r *http.Request) {
	s.setTenantStatus(w, r, platformapi.TenantStatusSuspended)
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	s.setTenantStatus(w, r, platformapi.TenantStatusActive)
}

func (s *Server) setTenantStatus(w http.ResponseWriter, r *http.Request, status string) {
	tenantID, err := strconv.ParseInt(chi.URLParam(r, "tenantID"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid tenant id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tenants {
		if s.tenants[i].ID == tenantID {
			s.tenants[i].Status = status
			s.logger.Info("tenant status changed", "tenant_id", tenantID, "status", status)
			s.writeJSON(w, http.StatusOK, map[string]string{"status": status})
			return
		}
	}
	s.writeError(w, http.StatusNotFound, "tenant not found")
}
