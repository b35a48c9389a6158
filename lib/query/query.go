// Copyright 2026 The FV Platform Authors
// SPDX-License-Identifier: Apache-2.0

// Package query implements the dashboard's polling cache.
//
// Each tracked query (stats, tenants, pods) owns a fetch function, a
// refresh interval, and the latest known state. Values are complete
// snapshots: every successful fetch replaces the previous value
// wholesale, and a failed fetch keeps it (stale-while-revalidate).
//
// Fetches run concurrently with the UI loop, so overlapping polls for
// the same query can complete out of order. Every dispatched fetch
// takes a monotonic sequence number and Apply discards any result at
// or below the last applied sequence — a slow response for poll N can
// never overwrite the fresher result of poll N+1.
//
// Queries are plain constructed objects with no global registry; the
// dashboard owns its three instances and tests build their own.
package query

import (
	"context"
	"sync"
	"time"
)

// FetchFunc produces the full current value of a query, or fails.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Result is the outcome of one dispatched fetch. Seq orders results
// from the same Query; pass the Result to Apply to commit it.
type Result[T any] struct {
	Seq   uint64
	Value T
	Err   error
}

// Query tracks one polled entity: its fetch function, refresh
// interval, and last known state. Safe for the UI goroutine to read
// while fetches run elsewhere.
type Query[T any] struct {
	name     string
	interval time.Duration
	fetch    FetchFunc[T]

	mu         sync.Mutex
	nextSeq    uint64
	appliedSeq uint64
	inFlight   int
	value      T
	hasValue   bool
	err        error
}

// New creates a Query. The name appears in error surfaces; the
// interval is how often the dashboard schedules a refresh while
// mounted.
func New[T any](name string, interval time.Duration, fetch FetchFunc[T]) *Query[T] {
	return &Query[T]{
		name:     name,
		interval: interval,
		fetch:    fetch,
	}
}

// Name returns the query's display name.
func (q *Query[T]) Name() string { return q.name }

// Interval returns the refresh interval.
func (q *Query[T]) Interval() time.Duration { return q.interval }

// Fetch runs the fetch function and returns its result stamped with
// the next sequence number. The sequence is taken before the network
// call so that dispatch order, not completion order, decides which
// result wins. Fetch does not mutate cached state; pass the Result to
// Apply on the UI goroutine.
func (q *Query[T]) Fetch(ctx context.Context) Result[T] {
	q.mu.Lock()
	q.nextSeq++
	seq := q.nextSeq
	q.inFlight++
	q.mu.Unlock()

	value, err := q.fetch(ctx)
	return Result[T]{Seq: seq, Value: value, Err: err}
}

// Apply commits a fetch result. Returns false when the result is stale
// (an equal or newer result was already applied) and the cached state
// is untouched. A committed error keeps the previous value so the view
// can keep rendering it.
func (q *Query[T]) Apply(result Result[T]) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.inFlight > 0 {
		q.inFlight--
	}
	if result.Seq <= q.appliedSeq {
		return false
	}
	q.appliedSeq = result.Seq

	if result.Err != nil {
		q.err = result.Err
		return true
	}
	q.value = result.Value
	q.hasValue = true
	q.err = nil
	return true
}

// Value returns the last successful value, and whether one exists yet.
func (q *Query[T]) Value() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.value, q.hasValue
}

// Err returns the error from the most recent applied fetch, or nil if
// it succeeded. A non-nil Err with a present Value means the displayed
// data is stale.
func (q *Query[T]) Err() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.err
}

// Loading reports whether the first fetch is still outstanding: no
// value has ever been applied and no fetch has failed yet. Views show
// a loading indicator in this state and an error state once the first
// fetch fails.
func (q *Query[T]) Loading() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return !q.hasValue && q.err == nil
}
