// Package testutil provides testing utilities for geovec.
//
// This package is intended for use in tests and benchmarks only.
// It provides random coordinate generation, a planar-backed Context and
// handle leak assertions.
//
// # Random Coordinates
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.Points(100, 2, 10)  // 100 2-D points in [-10, 10)
//	ring := rng.Ring(8, 0, 0, 1)   // open 8-vertex ring around the origin
//
// # Contexts
//
//	ctx, eng := testutil.NewContext(t)
//	...
//	testutil.AssertLive(t, eng, 0)
package testutil
