// Package engine defines the contract between geovec and a geometry engine.
//
// The engine owns every geometry. geovec only ever sees opaque pointers
// (Geom, CoordSeq) and talks to the engine through the Engine interface,
// which is modeled on the reentrant GEOS C API:
//
//   - Every method implicitly runs against the engine's own context handle.
//   - Failures are signalled twice: through the registered error handler
//     (with a formatted message) and through a sentinel return value.
//   - Informational conditions go to the notice handler and do not fail
//     the call.
//
// # Sentinels
//
//	Geometry constructors   Geom(0)
//	Predicates              Exception (2); False (0) / True (1) otherwise
//	Out-parameter measures  return 0 (1 on success)
//	Codes and counts        -1
//	Normalize               -1
//	Project                 -1.0 (ambiguous with a valid result)
//
// # Ownership
//
// Every Geom returned by the engine is owned by the caller and must be
// passed to Destroy exactly once. Builders (CreatePoint, CreateLineString,
// CreateLinearRing, CreatePolygon) take ownership of their inputs whether
// they succeed or not.
//
// # Implementations
//
//   - engine/planar: pure Go reference engine (default, no cgo).
//   - engine/geos: cgo binding to libgeos_c (build tag "geos").
package engine
