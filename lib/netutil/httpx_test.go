// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"strings"
	"testing"
)

func TestDecodeResponse(t *testing.T) {
	var decoded struct {
		Name string `json:"name"`
	}
	if err := DecodeResponse(strings.NewReader(`{"name":"web-1"}`), &decoded); err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if decoded.Name != "web-1" {
		t.Errorf("expected web-1, got %q", decoded.Name)
	}
}

func TestDecodeResponseInvalidJSON(t *testing.T) {
	var decoded map[string]any
	if err := DecodeResponse(strings.NewReader(`{broken`), &decoded); err == nil {
		t.Fatal("expected decode error for malformed JSON")
	}
}

func TestErrorBody(t *testing.T) {
	body := ErrorBody(strings.NewReader(`{"error":"tenant not found"}`))
	if !strings.Contains(body, "tenant not found") {
		t.Errorf("error body should contain the backend message, got %q", body)
	}
}
