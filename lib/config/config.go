// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the adminboard
// client.
//
// Configuration is loaded from a single YAML file specified by:
//   - ADMINBOARD_CONFIG environment variable, or
//   - --config flag passed to the command
//
// When neither is set, built-in defaults apply. The file never encodes
// a backend hostname requirement: api_url defaults to the local
// reverse proxy, and deployments that terminate routing elsewhere
// override it.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the adminboard client configuration.
type Config struct {
	// APIURL is the base URL of the platform admin API. The client
	// appends /api/... paths to it; routing to the real backend is the
	// proxy's concern.
	APIURL string `yaml:"api_url"`

	// PlatformDomain is the apex domain tenant storefronts live under.
	// Tenant rows link to https://{subdomain}.{PlatformDomain}.
	PlatformDomain string `yaml:"platform_domain"`

	// SessionFile overrides the default session file path. Empty means
	// the well-known path (see lib/session.DefaultPath).
	SessionFile string `yaml:"session_file"`

	// Poll configures per-query refresh intervals.
	Poll PollConfig `yaml:"poll"`

	// Login configures the login screen.
	Login LoginConfig `yaml:"login"`
}

// PollConfig holds the refresh interval for each tracked query, as
// duration strings ("10s", "1m"). Each query polls independently.
type PollConfig struct {
	// Stats is the platform statistics refresh interval.
	Stats string `yaml:"stats"`

	// Tenants is the tenant table refresh interval.
	Tenants string `yaml:"tenants"`

	// Pods is the pod snapshot refresh interval. Shortest by default
	// so the orchestration view tracks restarts closely.
	Pods string `yaml:"pods"`
}

// LoginConfig configures the login screen.
type LoginConfig struct {
	// DefaultEmail pre-fills the email field for operator convenience.
	// This is not a security control.
	DefaultEmail string `yaml:"default_email"`
}

// Default returns the default configuration. These are used as a base
// before loading the config file, and stand alone when no file is
// configured.
func Default() *Config {
	return &Config{
		APIURL:         "http://127.0.0.1:8080",
		PlatformDomain: "fv-company.com",
		Poll: PollConfig{
			Stats:   "10s",
			Tenants: "15s",
			Pods:    "5s",
		},
		Login: LoginConfig{
			DefaultEmail: "admin@fv-company.com",
		},
	}
}

// Load loads configuration from the ADMINBOARD_CONFIG environment
// variable, or returns defaults when it is not set.
func Load() (*Config, error) {
	configPath := os.Getenv("ADMINBOARD_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merging over
// the defaults. The config file is the single source of truth;
// environment variables do not override individual values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.APIURL == "" {
		errs = append(errs, fmt.Errorf("api_url is required"))
	} else if _, err := url.Parse(c.APIURL); err != nil {
		errs = append(errs, fmt.Errorf("api_url: %w", err))
	}

	if c.PlatformDomain == "" {
		errs = append(errs, fmt.Errorf("platform_domain is required"))
	}

	for name, value := range map[string]string{
		"poll.stats":   c.Poll.Stats,
		"poll.tenants": c.Poll.Tenants,
		"poll.pods":    c.Poll.Pods,
	} {
		interval, err := time.ParseDuration(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		if interval <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, value))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// PollIntervals returns the parsed refresh intervals. Call Validate
// first; unparseable values fall back to the defaults here so a
// partially-invalid config cannot stop the dashboard from polling.
func (c *Config) PollIntervals() (stats, tenants, pods time.Duration) {
	stats = parseIntervalOr(c.Poll.Stats, 10*time.Second)
	tenants = parseIntervalOr(c.Poll.Tenants, 15*time.Second)
	pods = parseIntervalOr(c.Poll.Pods, 5*time.Second)
	return stats, tenants, pods
}

func parseIntervalOr(value string, fallback time.Duration) time.Duration {
	interval, err := time.ParseDuration(value)
	if err != nil || interval <= 0 {
		return fallback
	}
	return interval
}
