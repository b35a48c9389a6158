// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

// Package platformapi provides a typed HTTP client for the platform
// admin API. The dashboard uses this client for every read and
// mutation; it attaches the operator's bearer credential and mirrors
// the backend's wire format with its own response types.
//
// The client takes a base URL rather than encoding a backend hostname:
// in production the URL points at the reverse proxy that routes to the
// internal platform-api service.
package platformapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/fv-platform/adminboard/lib/netutil"
)

// TokenSource supplies the bearer credential for authenticated calls.
// session.Store satisfies this; tests may use a fixed token.
type TokenSource interface {
	Token() (string, bool)
}

// StaticToken is a TokenSource returning a fixed credential. An empty
// StaticToken reports no credential.
type StaticToken string

// Token implements TokenSource.
func (token StaticToken) Token() (string, bool) {
	return string(token), token != ""
}

// Client is a typed HTTP client for the platform admin API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
}

// New creates a Client for the API at baseURL. Authenticated calls
// read the bearer credential from tokens at request time, so a login
// performed through the same session store takes effect immediately.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		tokens:     tokens,
	}
}

// NewForTesting creates a Client with a custom transport. Used by
// tests that need to redirect requests to an httptest.Server or fail
// them deterministically.
func NewForTesting(baseURL string, tokens TokenSource, transport http.RoundTripper) *Client {
	client := New(baseURL, tokens)
	client.httpClient = &http.Client{Transport: transport}
	return client
}

// APIError is a backend-reported failure: a non-2xx response, carrying
// the backend's message when it supplied one in the conventional
// {"error": "..."} shape.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// apiError builds an APIError from a non-2xx response body. Bodies
// that are not the conventional error shape are carried verbatim in
// the message when short enough to be useful.
func apiError(statusCode int, body []byte) *APIError {
	var wire struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &wire); err == nil && wire.Error != "" {
		return &APIError{StatusCode: statusCode, Message: wire.Error}
	}
	return &APIError{StatusCode: statusCode}
}

// Login authenticates the operator. No bearer credential is attached;
// the caller decides whether to persist the returned token (the
// dashboard refuses unless the role is RoleSuperAdmin).
func (client *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	request := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{
		Email:    email,
		Password: password,
	}

	response, err := client.post(ctx, "/api/login", request, false)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	defer response.Body.Close()

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("login: reading response: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		return nil, apiError(response.StatusCode, body)
	}

	var result AuthResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("login: parsing response: %w", err)
	}
	if result.Token == "" {
		return nil, fmt.Errorf("login: empty token in response")
	}
	return &result, nil
}

// Stats returns the platform-wide aggregate counters.
func (client *Client) Stats(ctx context.Context) (*PlatformStats, error) {
	response, err := client.get(ctx, "/api/admin/stats")
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats: %w", apiError(response.StatusCode, []byte(netutil.ErrorBody(response.Body))))
	}

	var result PlatformStats
	if err := netutil.DecodeResponse(response.Body, &result); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &result, nil
}

// Tenants returns the full tenant list. The backend serves either a
// bare array or a {"tenants": [...]} wrapper depending on version;
// both are accepted.
func (client *Client) Tenants(ctx context.Context) ([]Tenant, error) {
	response, err := client.get(ctx, "/api/admin/tenants")
	if err != nil {
		return nil, fmt.Errorf("tenants: %w", err)
	}
	defer response.Body.Close()

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("tenants: reading response: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tenants: %w", apiError(response.StatusCode, body))
	}

	return decodeTenants(body)
}

// decodeTenants handles both accepted tenant list encodings.
func decodeTenants(body []byte) ([]Tenant, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tenants []Tenant
		if err := json.Unmarshal(trimmed, &tenants); err != nil {
			return nil, fmt.Errorf("tenants: parsing response: %w", err)
		}
		return tenants, nil
	}

	var wrapper struct {
		Tenants []Tenant `json:"tenants"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("tenants: parsing response: %w", err)
	}
	return wrapper.Tenants, nil
}

// Pods returns the orchestration-layer pod snapshot.
func (client *Client) Pods(ctx context.Context) ([]PodStatus, error) {
	response, err := client.get(ctx, "/api/admin/kubernetes")
	if err != nil {
		return nil, fmt.Errorf("pods: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pods: %w", apiError(response.StatusCode, []byte(netutil.ErrorBody(response.Body))))
	}

	var result struct {
		Pods []PodStatus `json:"pods"`
	}
	if err := netutil.DecodeResponse(response.Body, &result); err != nil {
		return nil, fmt.Errorf("pods: %w", err)
	}
	return result.Pods, nil
}

// SuspendTenant suspends the tenant. Only HTTP success or failure is
// meaningful; the response body is ignored by backend contract.
func (client *Client) SuspendTenant(ctx context.Context, tenantID int64) error {
	return client.mutateTenant(ctx, tenantID, "suspend")
}

// ActivateTenant re-activates the tenant. Same contract as
// SuspendTenant.
func (client *Client) ActivateTenant(ctx context.Context, tenantID int64) error {
	return client.mutateTenant(ctx, tenantID, "activate")
}

func (client *Client) mutateTenant(ctx context.Context, tenantID int64, action string) error {
	path := "/api/admin/tenants/" + strconv.FormatInt(tenantID, 10) + "/" + action
	response, err := client.post(ctx, path, struct{}{}, true)
	if err != nil {
		return fmt.Errorf("%s tenant %d: %w", action, tenantID, err)
	}
	defer response.Body.Close()

	body, _ := netutil.ReadResponse(response.Body)
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("%s tenant %d: %w", action, tenantID, apiError(response.StatusCode, body))
	}
	return nil
}

// get makes an authenticated GET request.
func (client *Client) get(ctx context.Context, path string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	client.decorate(request, true)
	return client.httpClient.Do(request)
}

// post makes a POST request with a JSON body, optionally authenticated.
func (client *Client) post(ctx context.Context, path string, body any, authenticated bool) (*http.Response, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	client.decorate(request, authenticated)
	return client.httpClient.Do(request)
}

// decorate attaches the request ID and, when requested and available,
// the bearer credential. An absent credential sends the request
// unauthenticated and lets the backend's 401 surface as an APIError —
// the caller's error path is identical either way.
func (client *Client) decorate(request *http.Request, authenticated bool) {
	request.Header.Set("X-Request-ID", uuid.NewString())
	if !authenticated {
		return
	}
	if token, ok := client.tokens.Token(); ok {
		request.Header.Set("Authorization", "Bearer "+token)
	}
}
