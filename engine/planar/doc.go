// Package planar is a pure Go reference implementation of engine.Engine.
//
// It keeps every geometry in a handle table and hands out table ids as
// engine.Geom pointers, which makes ownership bugs observable: Live reports
// the number of geometries that have not been destroyed, and Stats counts
// creations, destructions and destroys of unknown pointers.
//
// # Coverage
//
// Every engine.Engine operation is implemented for 2D planar geometry.
// Measures, centroids and Douglas-Peucker simplification come from
// github.com/paulmach/orb; DE-9IM predicates, overlays, convex hulls,
// points on surface, simplicity and validity come from
// github.com/peterstace/simplefeatures, reached through WKB. Buffers are
// the union of discs and swept segments, so joins and caps are always
// round. Z values are carried by construction, accessors and simplify but
// dropped by the overlay and relation operations.
//
// # Fault Injection
//
// InjectFault makes a named method fail after a number of successful calls,
// which is how the dispatch layer's cleanup paths are tested:
//
//	e := planar.New()
//	e.InjectFault("CoordSeqSetOrdinate", 3) // 4th call fails
package planar
