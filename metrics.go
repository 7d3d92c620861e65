package geovec

import (
	"sync/atomic"
	"time"
)

// HandleEvent is a geometry handle lifecycle transition.
type HandleEvent uint8

const (
	// HandleCreated is recorded when a Geometry takes ownership of a pointer.
	HandleCreated HandleEvent = iota
	// HandleReleased is recorded when Release destroys a pointer.
	HandleReleased
	// HandleCollected is recorded when a pointer of an unreachable Geometry
	// is destroyed by the Context.
	HandleCollected
)

func (e HandleEvent) String() string {
	switch e {
	case HandleCreated:
		return "created"
	case HandleReleased:
		return "released"
	case HandleCollected:
		return "collected"
	default:
		return "unknown"
	}
}

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; package
// prommetrics provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordDispatch is called after each ufunc call. elements is the
	// number of output positions, err is nil if successful.
	RecordDispatch(op string, elements int, duration time.Duration, err error)

	// RecordNotice is called for each engine notice. op is empty outside a
	// dispatch.
	RecordNotice(op string)

	// RecordHandle is called for each geometry handle lifecycle event.
	RecordHandle(event HandleEvent)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordDispatch(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordNotice(string)                              {}
func (NoopMetricsCollector) RecordHandle(HandleEvent)                         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	DispatchCount      atomic.Int64
	DispatchErrors     atomic.Int64
	DispatchElements   atomic.Int64
	DispatchTotalNanos atomic.Int64
	NoticeCount        atomic.Int64
	HandlesCreated     atomic.Int64
	HandlesReleased    atomic.Int64
	HandlesCollected   atomic.Int64
}

// RecordDispatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDispatch(_ string, elements int, duration time.Duration, err error) {
	b.DispatchCount.Add(1)
	b.DispatchElements.Add(int64(elements))
	b.DispatchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DispatchErrors.Add(1)
	}
}

// RecordNotice implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNotice(string) {
	b.NoticeCount.Add(1)
}

// RecordHandle implements MetricsCollector.
func (b *BasicMetricsCollector) RecordHandle(event HandleEvent) {
	switch event {
	case HandleCreated:
		b.HandlesCreated.Add(1)
	case HandleReleased:
		b.HandlesReleased.Add(1)
	case HandleCollected:
		b.HandlesCollected.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	created := b.HandlesCreated.Load()
	released := b.HandlesReleased.Load()
	collected := b.HandlesCollected.Load()
	return BasicMetricsStats{
		DispatchCount:    b.DispatchCount.Load(),
		DispatchErrors:   b.DispatchErrors.Load(),
		DispatchElements: b.DispatchElements.Load(),
		DispatchAvgNanos: b.getAvgDispatchNanos(),
		NoticeCount:      b.NoticeCount.Load(),
		HandlesCreated:   created,
		HandlesReleased:  released,
		HandlesCollected: collected,
		LiveHandles:      created - released - collected,
	}
}

func (b *BasicMetricsCollector) getAvgDispatchNanos() int64 {
	count := b.DispatchCount.Load()
	if count == 0 {
		return 0
	}
	return b.DispatchTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	DispatchCount    int64
	DispatchErrors   int64
	DispatchElements int64
	DispatchAvgNanos int64
	NoticeCount      int64
	HandlesCreated   int64
	HandlesReleased  int64
	HandlesCollected int64
	// LiveHandles is HandlesCreated minus released and collected handles.
	LiveHandles int64
}
