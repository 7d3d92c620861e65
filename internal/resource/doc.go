// Package resource accounts memory held by transient engine objects.
//
// Coordinate sequences are allocated by the engine, outside the Go heap, so
// their size is tracked here against an optional hard limit. Acquisition is
// non-blocking and fails fast with ErrMemoryLimitExceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 64 << 20,
//	})
//
//	r, err := rc.Reserve(int64(size * dims * 8))
//	if err != nil {
//	    // ErrMemoryLimitExceeded
//	}
//	defer r.Release()
//
// All methods are safe for concurrent use, and a nil *Controller accepts
// every request without tracking.
package resource
