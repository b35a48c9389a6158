// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	if _, ok := store.Token(); ok {
		t.Fatal("fresh store should have no token")
	}

	if err := store.SetToken("tok-123"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	token, ok := store.Token()
	if !ok || token != "tok-123" {
		t.Fatalf("expected tok-123, got %q (present=%v)", token, ok)
	}

	// A separate store on the same path sees the credential — this is
	// the reload-survival property.
	reloaded := NewFileStore(path)
	token, ok = reloaded.Token()
	if !ok || token != "tok-123" {
		t.Fatalf("reloaded store: expected tok-123, got %q (present=%v)", token, ok)
	}
}

func TestFileStorePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	if err := store.SetToken("secret"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat session file: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("session file mode should be 0600, got %o", mode)
	}
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	if err := store.SetToken("tok"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Fatal("token should be absent after Clear")
	}

	// Clearing an already-empty store is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	store := NewFileStore(path)
	if _, ok := store.Token(); ok {
		t.Fatal("corrupt session file should report an absent credential")
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	if _, ok := store.Token(); ok {
		t.Fatal("fresh memory store should be empty")
	}
	if err := store.SetToken("tok"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if token, ok := store.Token(); !ok || token != "tok" {
		t.Fatalf("expected tok, got %q (present=%v)", token, ok)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Fatal("token should be absent after Clear")
	}
}
