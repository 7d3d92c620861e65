// Package geovec applies vectorized operations to geometries owned by an
// external geometry engine.
//
// Geometries live inside the engine and are reached through opaque
// pointers. geovec wraps each pointer in a single-owner Geometry handle,
// builds new geometries from coordinates through the engine's coordinate
// sequences, and turns engine failures and notices into Go errors and
// log records. The elementwise, broadcasting operations themselves live in
// package ufunc; the array runtime they iterate over lives in package array.
//
// # Quick Start
//
//	ctx, err := geovec.Init(planar.New())
//	if err != nil {
//	    return err
//	}
//	defer ctx.Close()
//
//	coords, _ := array.FromRows([][]float64{{0, 0}, {1, 1}, {2, 0}})
//	lines, err := ufunc.LineStrings.Call(ctx, coords)   // 0-d array of one LineString
//	n, err := ufunc.GetNumPoints.Call(ctx, lines)        // 3
//
// # Engine Context
//
// Exactly one Context is active per process. Init registers error and
// notice handlers with the engine; Close finishes the engine session and
// frees the slot for the next Init. Every operation takes the Context
// explicitly, so tests can build one per test.
//
// A Context is not safe for concurrent dispatch. Callers that share one
// across goroutines must serialize calls.
//
// # Ownership
//
// A Geometry owns its engine pointer. Release destroys it exactly once;
// later calls are no-ops and the handle becomes empty. Geometries dropped
// without Release are reclaimed after garbage collection: the runtime
// cleanup only queues the pointer, and the Context destroys queued
// pointers at the start of the next dispatch (or in Collect and Close).
//
// Ufunc outputs are new handles. Writing into an existing output array
// releases the geometry previously stored at each written position.
//
// # Errors
//
// Engine failures are reported as *EngineError, which matches both
// ErrEngineOperationFailed and ErrEngine. Ufunc failures are wrapped in a
// *DispatchError naming the operation and the output position:
//
//	_, err := ufunc.Area.Call(ctx, geoms)
//	var de *geovec.DispatchError
//	if errors.As(err, &de) {
//	    log.Printf("%s failed at %d", de.Op, de.Index)
//	}
//	if errors.Is(err, geovec.ErrEmptyGeometry) {
//	    // a released handle was passed in
//	}
//
// Notices (for example the reason a geometry is invalid) never fail a call.
// They are logged at warn level and passed to WithNoticeHandler.
package geovec
