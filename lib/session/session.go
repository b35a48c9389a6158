// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

// Package session persists the operator's bearer credential between
// runs of the dashboard.
//
// The credential is stored at a well-known path and loaded
// transparently on startup — log in once, then the dashboard opens
// directly. Logging out removes the file. No expiry is tracked on the
// client; an expired token surfaces as an authorization failure on the
// next API call.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is the credential storage abstraction. The dashboard and the
// API client depend on this interface rather than the filesystem so
// tests can substitute an in-memory implementation.
type Store interface {
	// Token returns the current credential, or false when no
	// credential is stored.
	Token() (string, bool)

	// SetToken persists the credential, marking the session
	// authenticated.
	SetToken(token string) error

	// Clear removes the credential, marking the session
	// unauthenticated. Clearing an already-empty store is not an
	// error.
	Clear() error
}

// fileFormat is the on-disk JSON shape of a persisted session.
type fileFormat struct {
	// Token is the bearer credential issued by POST /api/login.
	Token string `json:"token"`
}

// DefaultPath returns the path of the session file. Checks the
// ADMINBOARD_SESSION_FILE environment variable first, then falls back
// to ~/.config/adminboard/session.json (honoring XDG_CONFIG_HOME).
func DefaultPath() string {
	if envPath := os.Getenv("ADMINBOARD_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join("/tmp", "adminboard-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "adminboard", "session.json")
}

// FileStore persists the credential as a JSON file. The file is
// written with mode 0600 (owner-only read/write) since it contains a
// bearer token; the parent directory is created with mode 0700.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at the given path. An empty path
// selects DefaultPath.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath()
	}
	return &FileStore{path: path}
}

// Path returns the session file path this store reads and writes.
func (store *FileStore) Path() string {
	return store.path
}

// Token reads the persisted credential. A missing file, an unreadable
// file, or a file with an empty token all report an absent credential —
// the caller's recovery path is the same for each (show the login
// screen).
func (store *FileStore) Token() (string, bool) {
	data, err := os.ReadFile(store.path)
	if err != nil {
		return "", false
	}

	var persisted fileFormat
	if err := json.Unmarshal(data, &persisted); err != nil {
		return "", false
	}
	if persisted.Token == "" {
		return "", false
	}
	return persisted.Token, true
}

// SetToken writes the credential to the session file, creating the
// parent directory if needed.
func (store *FileStore) SetToken(token string) error {
	data, err := json.MarshalIndent(fileFormat{Token: token}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(store.path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}

	if err := os.WriteFile(store.path, data, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", store.path, err)
	}
	return nil
}

// Clear removes the session file.
func (store *FileStore) Clear() error {
	if err := os.Remove(store.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file %s: %w", store.path, err)
	}
	return nil
}

// MemoryStore is an in-memory Store for tests. Safe for concurrent
// use.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Token implements Store.
func (store *MemoryStore) Token() (string, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.token, store.set
}

// SetToken implements Store.
func (store *MemoryStore) SetToken(token string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token = token
	store.set = token != ""
	return nil
}

// Clear implements Store.
func (store *MemoryStore) Clear() error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token = ""
	store.set = false
	return nil
}
