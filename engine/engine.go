package engine

// Geom is an opaque pointer to an engine-owned geometry.
// The zero value is the null pointer.
type Geom uintptr

// CoordSeq is an opaque pointer to an engine-owned coordinate sequence.
// The zero value is the null pointer.
type CoordSeq uintptr

// Predicate results.
const (
	False     int8 = 0
	True      int8 = 1
	Exception int8 = 2
)

// TypeID is the engine's geometry type code.
type TypeID uint8

const (
	Point TypeID = iota
	LineString
	LinearRing
	Polygon
	MultiPoint
	MultiLineString
	MultiPolygon
	GeometryCollection
)

// String returns the geometry type name.
func (t TypeID) String() string {
	switch t {
	case Point:
		return "Point"
	case LineString:
		return "LineString"
	case LinearRing:
		return "LinearRing"
	case Polygon:
		return "Polygon"
	case MultiPoint:
		return "MultiPoint"
	case MultiLineString:
		return "MultiLineString"
	case MultiPolygon:
		return "MultiPolygon"
	case GeometryCollection:
		return "GeometryCollection"
	default:
		return "Unknown"
	}
}

// MessageHandler receives engine diagnostics. userdata is the value that was
// registered together with the handler.
type MessageHandler func(message string, userdata any)

// Engine is a geometry engine session.
//
// Implementations are not required to be safe for concurrent use.
type Engine interface {
	// SetErrorHandler registers the handler invoked before a call returns its
	// failure sentinel.
	SetErrorHandler(h MessageHandler, userdata any)
	// SetNoticeHandler registers the handler for non-fatal diagnostics.
	SetNoticeHandler(h MessageHandler, userdata any)
	// Finish tears the session down. No method may be called afterwards.
	Finish()

	Clone(g Geom) Geom
	Destroy(g Geom)
	// TypeID returns the type code, or -1.
	TypeID(g Geom) int
	HasZ(g Geom) int8

	IsEmpty(g Geom) int8
	IsSimple(g Geom) int8
	IsRing(g Geom) int8
	IsClosed(g Geom) int8
	IsValid(g Geom) int8

	Disjoint(a, b Geom) int8
	Touches(a, b Geom) int8
	Intersects(a, b Geom) int8
	Crosses(a, b Geom) int8
	Within(a, b Geom) int8
	Contains(a, b Geom) int8
	Overlaps(a, b Geom) int8
	Equals(a, b Geom) int8
	Covers(a, b Geom) int8
	CoveredBy(a, b Geom) int8
	EqualsExact(a, b Geom, tolerance float64) int8

	Envelope(g Geom) Geom
	ConvexHull(g Geom) Geom
	Boundary(g Geom) Geom
	UnaryUnion(g Geom) Geom
	PointOnSurface(g Geom) Geom
	Centroid(g Geom) Geom
	LineMerge(g Geom) Geom
	ExtractUniquePoints(g Geom) Geom
	StartPoint(g Geom) Geom
	EndPoint(g Geom) Geom
	// ExteriorRing, InteriorRingN and GeometryN return owned copies.
	ExteriorRing(g Geom) Geom
	// Normalize rewrites g in place into normal form. Returns -1 on failure.
	Normalize(g Geom) int

	InteriorRingN(g Geom, n int) Geom
	PointN(g Geom, n int) Geom
	GeometryN(g Geom, n int) Geom

	Interpolate(g Geom, d float64) Geom
	InterpolateNormalized(g Geom, fraction float64) Geom
	Simplify(g Geom, tolerance float64) Geom
	TopologyPreserveSimplify(g Geom, tolerance float64) Geom

	Intersection(a, b Geom) Geom
	Difference(a, b Geom) Geom
	SymDifference(a, b Geom) Geom
	Union(a, b Geom) Geom
	SharedPaths(a, b Geom) Geom

	Buffer(g Geom, width float64, quadsegs int) Geom
	Snap(a, b Geom, tolerance float64) Geom

	// Out-parameter measures return 1 on success and 0 on failure.
	X(g Geom, out *float64) int
	Y(g Geom, out *float64) int
	Area(g Geom, out *float64) int
	Length(g Geom, out *float64) int
	CurveLength(g Geom, out *float64) int
	Distance(a, b Geom, out *float64) int
	HausdorffDistance(a, b Geom, out *float64) int

	// Project returns the distance along a of the point on a closest to b,
	// or -1.0 on failure.
	Project(a, b Geom) float64
	ProjectNormalized(a, b Geom) float64

	Dimensions(g Geom) int
	CoordinateDimension(g Geom) int
	SRID(g Geom) int
	NumGeometries(g Geom) int
	NumInteriorRings(g Geom) int
	NumPoints(g Geom) int
	NumCoordinates(g Geom) int

	CoordSeqCreate(size, dims int) CoordSeq
	// CoordSeqSetOrdinate returns 1 on success and 0 on failure.
	CoordSeqSetOrdinate(s CoordSeq, idx, dim int, v float64) int
	CoordSeqDestroy(s CoordSeq)

	CreatePoint(s CoordSeq) Geom
	CreateLineString(s CoordSeq) Geom
	CreateLinearRing(s CoordSeq) Geom
	CreatePolygon(shell Geom, holes []Geom) Geom
}
