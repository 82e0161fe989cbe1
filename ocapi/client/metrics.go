// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"sync/atomic"
	"time"
)

// CallMetrics tracks executor activity with atomic counters. One instance
// lives per Client and is safe for concurrent use.
type CallMetrics struct {
	callsTotal    int64
	failuresTotal int64
	retriesTotal  int64

	durationTotal int64 // nanoseconds
}

// NewCallMetrics creates a new metrics collector
func NewCallMetrics() *CallMetrics {
	return &CallMetrics{}
}

// Record records one completed call
func (m *CallMetrics) Record(duration time.Duration, err error) {
	atomic.AddInt64(&m.callsTotal, 1)
	atomic.AddInt64(&m.durationTotal, int64(duration))
	if err != nil {
		atomic.AddInt64(&m.failuresTotal, 1)
	}
}

// RecordRetry records one retry attempt
func (m *CallMetrics) RecordRetry() {
	atomic.AddInt64(&m.retriesTotal, 1)
}

// Snapshot is a point-in-time view of the collected metrics
type Snapshot struct {
	Calls      int64
	Failures   int64
	Retries    int64
	AvgLatency time.Duration
}

// Snapshot returns the current counter values
func (m *CallMetrics) Snapshot() Snapshot {
	calls := atomic.LoadInt64(&m.callsTotal)
	total := atomic.LoadInt64(&m.durationTotal)

	var avg time.Duration
	if calls > 0 {
		avg = time.Duration(total / calls)
	}

	return Snapshot{
		Calls:      calls,
		Failures:   atomic.LoadInt64(&m.failuresTotal),
		Retries:    atomic.LoadInt64(&m.retriesTotal),
		AvgLatency: avg,
	}
}
