package metrics

import (
	"sync"
	"time"
)

type operationStats struct {
	calls           int
	errors          int
	stale           int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about remote calls and orchestrator activity.
// When telemetry is enabled the same events are mirrored to OpenTelemetry instruments.
type Recorder struct {
	mu          sync.Mutex
	stats       map[string]*operationStats
	transitions map[string]int
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:       make(map[string]*operationStats),
		transitions: make(map[string]int),
		otel:        otel,
	}
}

// RecordRemoteCall increments counters for a remote operation and stores the last observed latency.
func (r *Recorder) RecordRemoteCall(operation string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(operation)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRemoteCall(operation, duration, err)
	}
}

// RecordStaleResponse tracks a completed response that was discarded because its selection moved on.
func (r *Recorder) RecordStaleResponse(operation string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.ensureStats(operation).stale++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStale(operation)
	}
}

// RecordTransition counts orchestrator phase changes keyed by target phase.
func (r *Recorder) RecordTransition(phase string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.transitions[phase]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordTransition(phase)
	}
}

// RemoteCalls returns the total calls recorded for an operation.
func (r *Recorder) RemoteCalls(operation string) int {
	return r.Snapshot(operation).Calls
}

// RemoteErrors returns the total failed calls recorded for an operation.
func (r *Recorder) RemoteErrors(operation string) int {
	return r.Snapshot(operation).Errors
}

// StaleResponses returns how many responses were discarded for an operation.
func (r *Recorder) StaleResponses(operation string) int {
	return r.Snapshot(operation).Stale
}

// LastCallLatency returns the last recorded latency for an operation.
func (r *Recorder) LastCallLatency(operation string) time.Duration {
	return r.Snapshot(operation).LastCallLatency
}

// Transitions returns how many times the orchestrator entered phase.
func (r *Recorder) Transitions(phase string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transitions[phase]
}

// Snapshot returns a copy of the current stats for an operation.
type Snapshot struct {
	Calls           int
	Errors          int
	Stale           int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(operation string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[operation]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		Stale:           stats.stale,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(operation string) *operationStats {
	stats, ok := r.stats[operation]
	if !ok {
		stats = &operationStats{}
		r.stats[operation] = stats
	}
	return stats
}
