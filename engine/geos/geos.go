//go:build geos && cgo

package geos

/*
#cgo LDFLAGS: -lgeos_c
#include <stdint.h>
#include <geos_c.h>

void geovec_install(GEOSContextHandle_t h, uintptr_t self);
*/
import "C"

import (
	"errors"
	"runtime/cgo"
	"unsafe"

	"github.com/hupe1980/geovec/engine"
)

// Version is the libgeos_c version the binding was compiled against.
const Version string = C.GEOS_CAPI_VERSION

// Engine is a GEOS context handle.
type Engine struct {
	h    C.GEOSContextHandle_t
	self cgo.Handle

	onError    engine.MessageHandler
	errData    any
	onNotice   engine.MessageHandler
	noticeData any
}

var _ engine.Engine = (*Engine)(nil)

// New initializes a GEOS context. Finish releases it.
func New() (*Engine, error) {
	h := C.GEOS_init_r()
	if h == nil {
		return nil, errors.New("geos: GEOS_init_r failed")
	}
	e := &Engine{h: h}
	e.self = cgo.NewHandle(e)
	C.geovec_install(h, C.uintptr_t(e.self))
	return e, nil
}

//export goGeosMessage
func goGeosMessage(message *C.char, userdata unsafe.Pointer, notice C.int) {
	e, ok := cgo.Handle(uintptr(userdata)).Value().(*Engine)
	if !ok || e == nil {
		return
	}
	msg := C.GoString(message)
	if notice != 0 {
		if e.onNotice != nil {
			e.onNotice(msg, e.noticeData)
		}
		return
	}
	if e.onError != nil {
		e.onError(msg, e.errData)
	}
}

func gp(g engine.Geom) *C.GEOSGeometry {
	return (*C.GEOSGeometry)(unsafe.Pointer(uintptr(g)))
}

func ge(p *C.GEOSGeometry) engine.Geom {
	return engine.Geom(uintptr(unsafe.Pointer(p)))
}

func sp(s engine.CoordSeq) *C.GEOSCoordSequence {
	return (*C.GEOSCoordSequence)(unsafe.Pointer(uintptr(s)))
}

func (e *Engine) SetErrorHandler(h engine.MessageHandler, userdata any) {
	e.onError, e.errData = h, userdata
}

func (e *Engine) SetNoticeHandler(h engine.MessageHandler, userdata any) {
	e.onNotice, e.noticeData = h, userdata
}

func (e *Engine) Finish() {
	if e.h == nil {
		return
	}
	C.GEOS_finish_r(e.h)
	e.h = nil
	e.self.Delete()
}

// owned clones a pointer borrowed from its parent geometry.
func (e *Engine) owned(p *C.GEOSGeometry) engine.Geom {
	if p == nil {
		return 0
	}
	return ge(C.GEOSGeom_clone_r(e.h, p))
}

func (e *Engine) Clone(g engine.Geom) engine.Geom { return ge(C.GEOSGeom_clone_r(e.h, gp(g))) }

func (e *Engine) Destroy(g engine.Geom) {
	if g != 0 {
		C.GEOSGeom_destroy_r(e.h, gp(g))
	}
}

func (e *Engine) TypeID(g engine.Geom) int { return int(C.GEOSGeomTypeId_r(e.h, gp(g))) }
func (e *Engine) HasZ(g engine.Geom) int8  { return int8(C.GEOSHasZ_r(e.h, gp(g))) }

func (e *Engine) IsEmpty(g engine.Geom) int8  { return int8(C.GEOSisEmpty_r(e.h, gp(g))) }
func (e *Engine) IsSimple(g engine.Geom) int8 { return int8(C.GEOSisSimple_r(e.h, gp(g))) }
func (e *Engine) IsRing(g engine.Geom) int8   { return int8(C.GEOSisRing_r(e.h, gp(g))) }
func (e *Engine) IsClosed(g engine.Geom) int8 { return int8(C.GEOSisClosed_r(e.h, gp(g))) }
func (e *Engine) IsValid(g engine.Geom) int8  { return int8(C.GEOSisValid_r(e.h, gp(g))) }

func (e *Engine) Disjoint(a, b engine.Geom) int8 { return int8(C.GEOSDisjoint_r(e.h, gp(a), gp(b))) }
func (e *Engine) Touches(a, b engine.Geom) int8  { return int8(C.GEOSTouches_r(e.h, gp(a), gp(b))) }
func (e *Engine) Intersects(a, b engine.Geom) int8 {
	return int8(C.GEOSIntersects_r(e.h, gp(a), gp(b)))
}
func (e *Engine) Crosses(a, b engine.Geom) int8   { return int8(C.GEOSCrosses_r(e.h, gp(a), gp(b))) }
func (e *Engine) Within(a, b engine.Geom) int8    { return int8(C.GEOSWithin_r(e.h, gp(a), gp(b))) }
func (e *Engine) Contains(a, b engine.Geom) int8  { return int8(C.GEOSContains_r(e.h, gp(a), gp(b))) }
func (e *Engine) Overlaps(a, b engine.Geom) int8  { return int8(C.GEOSOverlaps_r(e.h, gp(a), gp(b))) }
func (e *Engine) Equals(a, b engine.Geom) int8    { return int8(C.GEOSEquals_r(e.h, gp(a), gp(b))) }
func (e *Engine) Covers(a, b engine.Geom) int8    { return int8(C.GEOSCovers_r(e.h, gp(a), gp(b))) }
func (e *Engine) CoveredBy(a, b engine.Geom) int8 { return int8(C.GEOSCoveredBy_r(e.h, gp(a), gp(b))) }

func (e *Engine) EqualsExact(a, b engine.Geom, tolerance float64) int8 {
	return int8(C.GEOSEqualsExact_r(e.h, gp(a), gp(b), C.double(tolerance)))
}

func (e *Engine) Envelope(g engine.Geom) engine.Geom   { return ge(C.GEOSEnvelope_r(e.h, gp(g))) }
func (e *Engine) ConvexHull(g engine.Geom) engine.Geom { return ge(C.GEOSConvexHull_r(e.h, gp(g))) }
func (e *Engine) Boundary(g engine.Geom) engine.Geom   { return ge(C.GEOSBoundary_r(e.h, gp(g))) }
func (e *Engine) UnaryUnion(g engine.Geom) engine.Geom { return ge(C.GEOSUnaryUnion_r(e.h, gp(g))) }
func (e *Engine) PointOnSurface(g engine.Geom) engine.Geom {
	return ge(C.GEOSPointOnSurface_r(e.h, gp(g)))
}
func (e *Engine) Centroid(g engine.Geom) engine.Geom  { return ge(C.GEOSGetCentroid_r(e.h, gp(g))) }
func (e *Engine) LineMerge(g engine.Geom) engine.Geom { return ge(C.GEOSLineMerge_r(e.h, gp(g))) }
func (e *Engine) ExtractUniquePoints(g engine.Geom) engine.Geom {
	return ge(C.GEOSGeom_extractUniquePoints_r(e.h, gp(g)))
}
func (e *Engine) StartPoint(g engine.Geom) engine.Geom {
	return ge(C.GEOSGeomGetStartPoint_r(e.h, gp(g)))
}
func (e *Engine) EndPoint(g engine.Geom) engine.Geom { return ge(C.GEOSGeomGetEndPoint_r(e.h, gp(g))) }

func (e *Engine) ExteriorRing(g engine.Geom) engine.Geom {
	return e.owned(C.GEOSGetExteriorRing_r(e.h, gp(g)))
}

func (e *Engine) Normalize(g engine.Geom) int { return int(C.GEOSNormalize_r(e.h, gp(g))) }

func (e *Engine) InteriorRingN(g engine.Geom, n int) engine.Geom {
	return e.owned(C.GEOSGetInteriorRingN_r(e.h, gp(g), C.int(n)))
}

func (e *Engine) PointN(g engine.Geom, n int) engine.Geom {
	return ge(C.GEOSGeomGetPointN_r(e.h, gp(g), C.int(n)))
}

func (e *Engine) GeometryN(g engine.Geom, n int) engine.Geom {
	return e.owned(C.GEOSGetGeometryN_r(e.h, gp(g), C.int(n)))
}

func (e *Engine) Interpolate(g engine.Geom, d float64) engine.Geom {
	return ge(C.GEOSInterpolate_r(e.h, gp(g), C.double(d)))
}

func (e *Engine) InterpolateNormalized(g engine.Geom, fraction float64) engine.Geom {
	return ge(C.GEOSInterpolateNormalized_r(e.h, gp(g), C.double(fraction)))
}

func (e *Engine) Simplify(g engine.Geom, tolerance float64) engine.Geom {
	return ge(C.GEOSSimplify_r(e.h, gp(g), C.double(tolerance)))
}

func (e *Engine) TopologyPreserveSimplify(g engine.Geom, tolerance float64) engine.Geom {
	return ge(C.GEOSTopologyPreserveSimplify_r(e.h, gp(g), C.double(tolerance)))
}

func (e *Engine) Intersection(a, b engine.Geom) engine.Geom {
	return ge(C.GEOSIntersection_r(e.h, gp(a), gp(b)))
}
func (e *Engine) Difference(a, b engine.Geom) engine.Geom {
	return ge(C.GEOSDifference_r(e.h, gp(a), gp(b)))
}
func (e *Engine) SymDifference(a, b engine.Geom) engine.Geom {
	return ge(C.GEOSSymDifference_r(e.h, gp(a), gp(b)))
}
func (e *Engine) Union(a, b engine.Geom) engine.Geom { return ge(C.GEOSUnion_r(e.h, gp(a), gp(b))) }
func (e *Engine) SharedPaths(a, b engine.Geom) engine.Geom {
	return ge(C.GEOSSharedPaths_r(e.h, gp(a), gp(b)))
}

func (e *Engine) Buffer(g engine.Geom, width float64, quadsegs int) engine.Geom {
	return ge(C.GEOSBuffer_r(e.h, gp(g), C.double(width), C.int(quadsegs)))
}

func (e *Engine) Snap(a, b engine.Geom, tolerance float64) engine.Geom {
	return ge(C.GEOSSnap_r(e.h, gp(a), gp(b), C.double(tolerance)))
}

// measure calls a GEOS out-parameter function and copies the result.
func measure(out *float64, fn func(*C.double) C.int) int {
	var v C.double
	r := int(fn(&v))
	if r != 0 {
		*out = float64(v)
	}
	return r
}

func (e *Engine) X(g engine.Geom, out *float64) int {
	return measure(out, func(v *C.double) C.int { return C.GEOSGeomGetX_r(e.h, gp(g), v) })
}

func (e *Engine) Y(g engine.Geom, out *float64) int {
	return measure(out, func(v *C.double) C.int { return C.GEOSGeomGetY_r(e.h, gp(g), v) })
}

func (e *Engine) Area(g engine.Geom, out *float64) int {
	return measure(out, func(v *C.double) C.int { return C.GEOSArea_r(e.h, gp(g), v) })
}

func (e *Engine) Length(g engine.Geom, out *float64) int {
	return measure(out, func(v *C.double) C.int { return C.GEOSLength_r(e.h, gp(g), v) })
}

func (e *Engine) CurveLength(g engine.Geom, out *float64) int {
	return measure(out, func(v *C.double) C.int { return C.GEOSGeomGetLength_r(e.h, gp(g), v) })
}

func (e *Engine) Distance(a, b engine.Geom, out *float64) int {
	return measure(out, func(v *C.double) C.int { return C.GEOSDistance_r(e.h, gp(a), gp(b), v) })
}

func (e *Engine) HausdorffDistance(a, b engine.Geom, out *float64) int {
	return measure(out, func(v *C.double) C.int { return C.GEOSHausdorffDistance_r(e.h, gp(a), gp(b), v) })
}

func (e *Engine) Project(a, b engine.Geom) float64 {
	return float64(C.GEOSProject_r(e.h, gp(a), gp(b)))
}

func (e *Engine) ProjectNormalized(a, b engine.Geom) float64 {
	return float64(C.GEOSProjectNormalized_r(e.h, gp(a), gp(b)))
}

func (e *Engine) Dimensions(g engine.Geom) int {
	return int(C.GEOSGeom_getDimensions_r(e.h, gp(g)))
}

func (e *Engine) CoordinateDimension(g engine.Geom) int {
	return int(C.GEOSGeom_getCoordinateDimension_r(e.h, gp(g)))
}

func (e *Engine) SRID(g engine.Geom) int          { return int(C.GEOSGetSRID_r(e.h, gp(g))) }
func (e *Engine) NumGeometries(g engine.Geom) int { return int(C.GEOSGetNumGeometries_r(e.h, gp(g))) }
func (e *Engine) NumInteriorRings(g engine.Geom) int {
	return int(C.GEOSGetNumInteriorRings_r(e.h, gp(g)))
}
func (e *Engine) NumPoints(g engine.Geom) int { return int(C.GEOSGeomGetNumPoints_r(e.h, gp(g))) }
func (e *Engine) NumCoordinates(g engine.Geom) int {
	return int(C.GEOSGetNumCoordinates_r(e.h, gp(g)))
}

func (e *Engine) CoordSeqCreate(size, dims int) engine.CoordSeq {
	s := C.GEOSCoordSeq_create_r(e.h, C.uint(size), C.uint(dims))
	return engine.CoordSeq(uintptr(unsafe.Pointer(s)))
}

func (e *Engine) CoordSeqSetOrdinate(s engine.CoordSeq, idx, dim int, v float64) int {
	return int(C.GEOSCoordSeq_setOrdinate_r(e.h, sp(s), C.uint(idx), C.uint(dim), C.double(v)))
}

func (e *Engine) CoordSeqDestroy(s engine.CoordSeq) {
	if s != 0 {
		C.GEOSCoordSeq_destroy_r(e.h, sp(s))
	}
}

func (e *Engine) CreatePoint(s engine.CoordSeq) engine.Geom {
	return ge(C.GEOSGeom_createPoint_r(e.h, sp(s)))
}

func (e *Engine) CreateLineString(s engine.CoordSeq) engine.Geom {
	return ge(C.GEOSGeom_createLineString_r(e.h, sp(s)))
}

func (e *Engine) CreateLinearRing(s engine.CoordSeq) engine.Geom {
	return ge(C.GEOSGeom_createLinearRing_r(e.h, sp(s)))
}

func (e *Engine) CreatePolygon(shell engine.Geom, holes []engine.Geom) engine.Geom {
	if len(holes) == 0 {
		return ge(C.GEOSGeom_createPolygon_r(e.h, gp(shell), nil, 0))
	}
	rings := make([]*C.GEOSGeometry, len(holes))
	for i, h := range holes {
		rings[i] = gp(h)
	}
	return ge(C.GEOSGeom_createPolygon_r(e.h, gp(shell), &rings[0], C.uint(len(rings))))
}
