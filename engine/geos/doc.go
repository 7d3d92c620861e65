// Package geos binds engine.Engine to libgeos_c through its reentrant API.
//
// The binding is compiled only with the geos build tag and cgo enabled:
//
//	go build -tags geos ./...
//
// Error and notice messages are delivered through C trampolines that look
// the Engine up by a runtime/cgo handle passed as GEOS userdata.
// Sub-geometry accessors that return pointers owned by their parent
// (exterior ring, interior ring n, geometry n) are cloned so every returned
// Geom is owned by the caller.
package geos
