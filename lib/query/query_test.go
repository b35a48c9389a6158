// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"context"
	"errors"
	"testing"
	"time"
)

// scripted returns a fetch function that pops answers in order.
func scripted(answers []int, errs []error) FetchFunc[int] {
	index := 0
	return func(ctx context.Context) (int, error) {
		defer func() { index++ }()
		if errs != nil && errs[index] != nil {
			return 0, errs[index]
		}
		return answers[index], nil
	}
}

func TestFetchApplyRoundTrip(t *testing.T) {
	q := New("stats", 10*time.Second, scripted([]int{42}, nil))

	if !q.Loading() {
		t.Error("fresh query should be loading")
	}
	if _, ok := q.Value(); ok {
		t.Error("fresh query should have no value")
	}

	result := q.Fetch(context.Background())
	if !q.Apply(result) {
		t.Fatal("first result should apply")
	}
	value, ok := q.Value()
	if !ok || value != 42 {
		t.Fatalf("expected 42, got %d (present=%v)", value, ok)
	}
	if q.Loading() {
		t.Error("query with a value is not loading")
	}
	if q.Err() != nil {
		t.Errorf("unexpected error: %v", q.Err())
	}
}

func TestFailedFetchKeepsPreviousValue(t *testing.T) {
	fetchErr := errors.New("backend unavailable")
	q := New("tenants", 15*time.Second, scripted([]int{7, 0}, []error{nil, fetchErr}))

	q.Apply(q.Fetch(context.Background()))
	if !q.Apply(q.Fetch(context.Background())) {
		t.Fatal("error result should still apply (it is newer)")
	}

	value, ok := q.Value()
	if !ok || value != 7 {
		t.Fatalf("previous value should survive a failed refresh, got %d (present=%v)", value, ok)
	}
	if !errors.Is(q.Err(), fetchErr) {
		t.Errorf("expected fetch error to surface, got %v", q.Err())
	}
	if q.Loading() {
		t.Error("a failed query with data is not loading")
	}
}

func TestErrorThenSuccessClearsError(t *testing.T) {
	q := New("pods", 5*time.Second, scripted([]int{0, 3}, []error{errors.New("boom"), nil}))

	q.Apply(q.Fetch(context.Background()))
	if q.Err() == nil {
		t.Fatal("expected error after failed first fetch")
	}
	if q.Loading() {
		t.Error("failed first fetch means error state, not loading")
	}

	q.Apply(q.Fetch(context.Background()))
	if q.Err() != nil {
		t.Errorf("error should clear on the next success, got %v", q.Err())
	}
	if value, _ := q.Value(); value != 3 {
		t.Errorf("expected 3, got %d", value)
	}
}

func TestSequenceGuardDiscardsStaleResult(t *testing.T) {
	q := New("tenants", 15*time.Second, scripted([]int{1, 2}, nil))

	// Dispatch two overlapping fetches; complete them out of order.
	slow := q.Fetch(context.Background())
	fast := q.Fetch(context.Background())

	if !q.Apply(fast) {
		t.Fatal("newer result should apply")
	}
	if q.Apply(slow) {
		t.Fatal("older result must be discarded after a newer one applied")
	}

	value, _ := q.Value()
	if value != 2 {
		t.Errorf("stale result overwrote fresh data: got %d, want 2", value)
	}
}

func TestStaleErrorDoesNotMaskFreshSuccess(t *testing.T) {
	fetchErr := errors.New("timeout")
	q := New("stats", 10*time.Second, scripted([]int{0, 9}, []error{fetchErr, nil}))

	slow := q.Fetch(context.Background())
	fast := q.Fetch(context.Background())

	q.Apply(fast)
	q.Apply(slow)

	if q.Err() != nil {
		t.Errorf("stale error should not surface after a fresher success, got %v", q.Err())
	}
	if value, _ := q.Value(); value != 9 {
		t.Errorf("expected 9, got %d", value)
	}
}
