package planar

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
	"github.com/peterstace/simplefeatures/geom"

	"github.com/hupe1980/geovec/engine"
)

// Unary predicates.

func (e *Engine) IsEmpty(g engine.Geom) int8 {
	x, ok := e.lookup("IsEmpty", g)
	if !ok {
		return engine.Exception
	}
	return boolean(x.isEmpty())
}

func (e *Engine) IsSimple(g engine.Geom) int8 {
	x, ok := e.lookup("IsSimple", g)
	if !ok {
		return engine.Exception
	}
	simple, err := isSimple(x)
	if err != nil {
		e.fail("IsSimple", err)
		return engine.Exception
	}
	return boolean(simple)
}

func (e *Engine) IsRing(g engine.Geom) int8 {
	x, ok := e.lookup("IsRing", g)
	if !ok {
		return engine.Exception
	}
	if !x.isLinear() || x.isEmpty() || !x.isClosed() {
		return engine.False
	}
	simple, err := isSimple(x)
	if err != nil {
		e.fail("IsRing", err)
		return engine.Exception
	}
	return boolean(simple)
}

func (e *Engine) IsClosed(g engine.Geom) int8 {
	x, ok := e.lookup("IsClosed", g)
	if !ok {
		return engine.Exception
	}
	switch x.kind {
	case engine.LineString, engine.LinearRing:
		return boolean(x.isClosed())
	case engine.MultiLineString:
		for _, p := range x.parts {
			if !p.isClosed() {
				return engine.False
			}
		}
		return boolean(len(x.parts) > 0)
	default:
		e.raise("IsClosed: argument is not a LineString or MultiLineString")
		return engine.Exception
	}
}

// IsValid reports validity; the reason for an invalid geometry goes to the
// notice handler.
func (e *Engine) IsValid(g engine.Geom) int8 {
	x, ok := e.lookup("IsValid", g)
	if !ok {
		return engine.Exception
	}
	msg, err := validate(x)
	if err != nil {
		e.fail("IsValid", err)
		return engine.Exception
	}
	if msg != "" {
		e.notice("%s", msg)
		return engine.False
	}
	return engine.True
}

// Binary predicates. Relations are evaluated by simplefeatures' DE-9IM
// matrix. Empty operands are decided by an emptyRule instead.

type (
	relation  func(a, b geom.Geometry) (bool, error)
	emptyRule func(aEmpty, bEmpty bool) bool
)

func never(_, _ bool) bool     { return false }
func always(_, _ bool) bool    { return true }
func bothEmpty(a, b bool) bool { return a && b }

func (e *Engine) relate(method string, a, b engine.Geom, fn relation, whenEmpty emptyRule) int8 {
	x, y, ok := e.lookup2(method, a, b)
	if !ok {
		return engine.Exception
	}
	if x.isEmpty() || y.isEmpty() {
		return boolean(whenEmpty(x.isEmpty(), y.isEmpty()))
	}
	sx, sy, err := toSF2(x, y)
	if err != nil {
		e.fail(method, err)
		return engine.Exception
	}
	r, err := fn(sx, sy)
	if err != nil {
		e.fail(method, err)
		return engine.Exception
	}
	return boolean(r)
}

func intersects(a, b geom.Geometry) (bool, error) {
	return geom.Intersects(a, b), nil
}

func (e *Engine) Intersects(a, b engine.Geom) int8 {
	return e.relate("Intersects", a, b, intersects, never)
}

func (e *Engine) Disjoint(a, b engine.Geom) int8 {
	return e.relate("Disjoint", a, b, geom.Disjoint, always)
}

func (e *Engine) Touches(a, b engine.Geom) int8 {
	return e.relate("Touches", a, b, geom.Touches, never)
}

func (e *Engine) Crosses(a, b engine.Geom) int8 {
	return e.relate("Crosses", a, b, geom.Crosses, never)
}

func (e *Engine) Within(a, b engine.Geom) int8 {
	return e.relate("Within", a, b, geom.Within, never)
}

func (e *Engine) Contains(a, b engine.Geom) int8 {
	return e.relate("Contains", a, b, geom.Contains, never)
}

func (e *Engine) Overlaps(a, b engine.Geom) int8 {
	return e.relate("Overlaps", a, b, geom.Overlaps, never)
}

func (e *Engine) Covers(a, b engine.Geom) int8 {
	return e.relate("Covers", a, b, geom.Covers, never)
}

func (e *Engine) CoveredBy(a, b engine.Geom) int8 {
	return e.relate("CoveredBy", a, b, geom.CoveredBy, never)
}

// Equals is topological equality. Two empty geometries are equal.
func (e *Engine) Equals(a, b engine.Geom) int8 {
	return e.relate("Equals", a, b, geom.Equals, bothEmpty)
}

func (e *Engine) EqualsExact(a, b engine.Geom, tolerance float64) int8 {
	x, y, ok := e.lookup2("EqualsExact", a, b)
	if !ok {
		return engine.Exception
	}
	return boolean(equalsExact(x, y, tolerance))
}

func equalsExact(a, b *geometry, tolerance float64) bool {
	if a.kind != b.kind || len(a.coords) != len(b.coords) || len(a.parts) != len(b.parts) {
		return false
	}
	for i := range a.coords {
		if dist(a.coords[i], b.coords[i]) > tolerance {
			return false
		}
	}
	for i := range a.parts {
		if !equalsExact(a.parts[i], b.parts[i], tolerance) {
			return false
		}
	}
	return true
}

// viaSF runs fn on the simplefeatures form of x and stores the result.
func (e *Engine) viaSF(method string, x *geometry, fn func(geom.Geometry) (geom.Geometry, error)) engine.Geom {
	s, err := toSF(x)
	if err == nil {
		s, err = fn(s)
	}
	var out *geometry
	if err == nil {
		out, err = fromSF(s)
	}
	if err != nil {
		e.fail(method, err)
		return 0
	}
	out.srid = x.srid
	return e.put(out)
}

// Unary transforms.

func (e *Engine) Envelope(g engine.Geom) engine.Geom {
	x, ok := e.lookup("Envelope", g)
	if !ok {
		return 0
	}
	env := x.envelope()
	if env.null {
		return e.put(newGeometry(engine.Point, 2))
	}
	b := orb.Bound{Min: orb.Point{env.minX, env.minY}, Max: orb.Point{env.maxX, env.maxY}}
	if b.Min == b.Max {
		return e.put(&geometry{kind: engine.Point, dims: 2, srid: x.srid, coords: []coord{{x: env.minX, y: env.minY}}})
	}
	out := fromOrb(b)
	out.srid = x.srid
	return e.put(out)
}

func (e *Engine) ConvexHull(g engine.Geom) engine.Geom {
	x, ok := e.lookup("ConvexHull", g)
	if !ok {
		return 0
	}
	if x.isEmpty() {
		return e.put(newGeometry(engine.GeometryCollection, 2))
	}
	return e.viaSF("ConvexHull", x, func(s geom.Geometry) (geom.Geometry, error) {
		return s.ConvexHull(), nil
	})
}

// Boundary follows GEOS: points have an empty collection, lines the
// endpoints left by the mod-2 rule, polygons their rings as line strings.
func (e *Engine) Boundary(g engine.Geom) engine.Geom {
	x, ok := e.lookup("Boundary", g)
	if !ok {
		return 0
	}
	switch x.kind {
	case engine.Point, engine.MultiPoint:
		return e.put(newGeometry(engine.GeometryCollection, x.dims))
	case engine.LineString, engine.LinearRing, engine.MultiLineString:
		return e.viaSF("Boundary", x, func(s geom.Geometry) (geom.Geometry, error) {
			return s.Boundary(), nil
		})
	case engine.Polygon, engine.MultiPolygon:
		_, _, polys := x.components()
		var rings []*geometry
		for _, p := range polys {
			for _, r := range p.parts {
				rings = append(rings, &geometry{kind: engine.LineString, dims: r.dims, coords: append([]coord(nil), r.coords...)})
			}
		}
		if x.kind == engine.Polygon && len(rings) == 1 {
			return e.put(rings[0])
		}
		return e.put(&geometry{kind: engine.MultiLineString, dims: x.dims, parts: rings})
	default:
		e.raise("IllegalArgumentException: Operation not supported by GeometryCollection")
		return 0
	}
}

func multiPoint(cs []coord, dims int) *geometry {
	mp := newGeometry(engine.MultiPoint, dims)
	for _, c := range cs {
		mp.parts = append(mp.parts, &geometry{kind: engine.Point, dims: dims, coords: []coord{c}})
	}
	return mp
}

func (e *Engine) UnaryUnion(g engine.Geom) engine.Geom {
	x, ok := e.lookup("UnaryUnion", g)
	if !ok {
		return 0
	}
	return e.viaSF("UnaryUnion", x, geom.UnaryUnion)
}

func (e *Engine) PointOnSurface(g engine.Geom) engine.Geom {
	x, ok := e.lookup("PointOnSurface", g)
	if !ok {
		return 0
	}
	if x.isEmpty() {
		return e.put(newGeometry(engine.Point, 2))
	}
	return e.viaSF("PointOnSurface", x, func(s geom.Geometry) (geom.Geometry, error) {
		return s.PointOnSurface().AsGeometry(), nil
	})
}

func (e *Engine) Centroid(g engine.Geom) engine.Geom {
	x, ok := e.lookup("Centroid", g)
	if !ok {
		return 0
	}
	c, found := centroid(x)
	if !found {
		return e.put(newGeometry(engine.Point, 2))
	}
	return e.put(&geometry{kind: engine.Point, dims: 2, srid: x.srid, coords: []coord{c}})
}

func (e *Engine) LineMerge(g engine.Geom) engine.Geom {
	x, ok := e.lookup("LineMerge", g)
	if !ok {
		return 0
	}
	out := lineMerge(x)
	out.srid = x.srid
	return e.put(out)
}

func (e *Engine) ExtractUniquePoints(g engine.Geom) engine.Geom {
	x, ok := e.lookup("ExtractUniquePoints", g)
	if !ok {
		return 0
	}
	return e.put(multiPoint(uniqueCoords(x.allCoords()), x.dims))
}

func (e *Engine) StartPoint(g engine.Geom) engine.Geom {
	return e.endpoint("StartPoint", g, true)
}

func (e *Engine) EndPoint(g engine.Geom) engine.Geom {
	return e.endpoint("EndPoint", g, false)
}

func (e *Engine) endpoint(method string, g engine.Geom, start bool) engine.Geom {
	x, ok := e.lookup(method, g)
	if !ok {
		return 0
	}
	if !x.isLinear() {
		e.raise("IllegalArgumentException: Argument is not a LineString")
		return 0
	}
	if x.isEmpty() {
		return e.put(newGeometry(engine.Point, x.dims))
	}
	c := x.coords[len(x.coords)-1]
	if start {
		c = x.coords[0]
	}
	return e.put(&geometry{kind: engine.Point, dims: x.dims, srid: x.srid, coords: []coord{c}})
}

func (e *Engine) ExteriorRing(g engine.Geom) engine.Geom {
	x, ok := e.lookup("ExteriorRing", g)
	if !ok {
		return 0
	}
	if x.kind != engine.Polygon {
		e.raise("IllegalArgumentException: Argument is not a Polygon")
		return 0
	}
	if x.isEmpty() {
		return e.put(newGeometry(engine.LinearRing, x.dims))
	}
	return e.put(x.shell().clone())
}

func (e *Engine) Normalize(g engine.Geom) int {
	x, ok := e.lookup("Normalize", g)
	if !ok {
		return -1
	}
	x.normalize()
	return 0
}

// Indexed transforms.

func (e *Engine) InteriorRingN(g engine.Geom, n int) engine.Geom {
	x, ok := e.lookup("InteriorRingN", g)
	if !ok {
		return 0
	}
	if x.kind != engine.Polygon {
		e.raise("IllegalArgumentException: Argument is not a Polygon")
		return 0
	}
	holes := x.holes()
	if n < 0 || n >= len(holes) {
		e.raise("IllegalArgumentException: Index %d out of range for polygon with %d interior rings", n, len(holes))
		return 0
	}
	return e.put(holes[n].clone())
}

func (e *Engine) PointN(g engine.Geom, n int) engine.Geom {
	x, ok := e.lookup("PointN", g)
	if !ok {
		return 0
	}
	if !x.isLinear() {
		e.raise("IllegalArgumentException: Argument is not a LineString")
		return 0
	}
	if n < 0 || n >= len(x.coords) {
		e.raise("IllegalArgumentException: Index %d out of range for LineString with %d points", n, len(x.coords))
		return 0
	}
	return e.put(&geometry{kind: engine.Point, dims: x.dims, srid: x.srid, coords: []coord{x.coords[n]}})
}

// GeometryN returns a copy of member n. Non-collections are their own
// member 0.
func (e *Engine) GeometryN(g engine.Geom, n int) engine.Geom {
	x, ok := e.lookup("GeometryN", g)
	if !ok {
		return 0
	}
	if !x.isCollection() {
		if n != 0 {
			e.raise("IllegalArgumentException: Index %d out of range for %s", n, x.kind)
			return 0
		}
		return e.put(x.clone())
	}
	if n < 0 || n >= len(x.parts) {
		e.raise("IllegalArgumentException: Index %d out of range for %s with %d members", n, x.kind, len(x.parts))
		return 0
	}
	return e.put(x.parts[n].clone())
}

// Parametric transforms.

func (e *Engine) Interpolate(g engine.Geom, d float64) engine.Geom {
	x, ok := e.lookup("Interpolate", g)
	if !ok {
		return 0
	}
	return e.interpolate("Interpolate", x, d, false)
}

func (e *Engine) InterpolateNormalized(g engine.Geom, fraction float64) engine.Geom {
	x, ok := e.lookup("InterpolateNormalized", g)
	if !ok {
		return 0
	}
	return e.interpolate("InterpolateNormalized", x, fraction, true)
}

func (e *Engine) interpolate(method string, x *geometry, d float64, normalized bool) engine.Geom {
	if !x.isLinear() {
		e.raise("%s: IllegalArgumentException: only linear geometries are supported", method)
		return 0
	}
	if x.isEmpty() {
		return e.put(newGeometry(engine.Point, x.dims))
	}
	if normalized {
		d *= lineLength(x.coords)
	}
	c := interpolate(x, d)
	return e.put(&geometry{kind: engine.Point, dims: x.dims, srid: x.srid, coords: []coord{c}})
}

func (e *Engine) Simplify(g engine.Geom, tolerance float64) engine.Geom {
	x, ok := e.lookup("Simplify", g)
	if !ok {
		return 0
	}
	if tolerance < 0 {
		e.raise("IllegalArgumentException: Tolerance must be non-negative")
		return 0
	}
	return e.put(simplifyGeometry(x, simplify.DouglasPeucker(tolerance)))
}

func (e *Engine) TopologyPreserveSimplify(g engine.Geom, tolerance float64) engine.Geom {
	x, ok := e.lookup("TopologyPreserveSimplify", g)
	if !ok {
		return 0
	}
	if tolerance < 0 {
		e.raise("IllegalArgumentException: Tolerance must be non-negative")
		return 0
	}
	out, err := preserveSimplify(x, simplify.DouglasPeucker(tolerance))
	if err != nil {
		e.fail("TopologyPreserveSimplify", err)
		return 0
	}
	return e.put(out)
}

// Binary transforms.

type overlayFunc func(a, b geom.Geometry) (geom.Geometry, error)

func (e *Engine) overlay(method string, a, b engine.Geom, fn overlayFunc) engine.Geom {
	x, y, ok := e.lookup2(method, a, b)
	if !ok {
		return 0
	}
	sx, sy, err := toSF2(x, y)
	if err != nil {
		e.fail(method, err)
		return 0
	}
	r, err := fn(sx, sy)
	if err != nil {
		e.fail(method, err)
		return 0
	}
	out, err := fromSF(r)
	if err != nil {
		e.fail(method, err)
		return 0
	}
	out.srid = x.srid
	return e.put(out)
}

func (e *Engine) Union(a, b engine.Geom) engine.Geom {
	return e.overlay("Union", a, b, geom.Union)
}

func (e *Engine) Intersection(a, b engine.Geom) engine.Geom {
	return e.overlay("Intersection", a, b, geom.Intersection)
}

func (e *Engine) Difference(a, b engine.Geom) engine.Geom {
	return e.overlay("Difference", a, b, geom.Difference)
}

func (e *Engine) SymDifference(a, b engine.Geom) engine.Geom {
	return e.overlay("SymDifference", a, b, geom.SymmetricDifference)
}

// SharedPaths returns a collection of two MultiLineStrings: the linework
// a and b share in the same direction, then in opposite directions.
func (e *Engine) SharedPaths(a, b engine.Geom) engine.Geom {
	x, y, ok := e.lookup2("SharedPaths", a, b)
	if !ok {
		return 0
	}
	if !isLineal(x) || !isLineal(y) {
		e.raise("IllegalArgumentException: Geometry is not lineal")
		return 0
	}
	out, err := sharedPaths(x, y)
	if err != nil {
		e.fail("SharedPaths", err)
		return 0
	}
	out.srid = x.srid
	return e.put(out)
}

// Buffer approximates round joins and caps with 4*quadsegs segments per
// circle.
func (e *Engine) Buffer(g engine.Geom, width float64, quadsegs int) engine.Geom {
	x, ok := e.lookup("Buffer", g)
	if !ok {
		return 0
	}
	out, err := buffer(x, width, quadsegs)
	if err != nil {
		e.fail("Buffer", err)
		return 0
	}
	out.srid = x.srid
	return e.put(out)
}

// Snap moves the vertices of a onto vertices of b within tolerance.
func (e *Engine) Snap(a, b engine.Geom, tolerance float64) engine.Geom {
	x, y, ok := e.lookup2("Snap", a, b)
	if !ok {
		return 0
	}
	return e.put(snap(x, uniqueCoords(y.allCoords()), tolerance))
}

// Measures.

func (e *Engine) X(g engine.Geom, out *float64) int {
	return e.ordinate("X", g, out, func(c coord) float64 { return c.x })
}

func (e *Engine) Y(g engine.Geom, out *float64) int {
	return e.ordinate("Y", g, out, func(c coord) float64 { return c.y })
}

func (e *Engine) ordinate(method string, g engine.Geom, out *float64, pick func(coord) float64) int {
	x, ok := e.lookup(method, g)
	if !ok {
		return 0
	}
	if x.kind != engine.Point {
		e.raise("IllegalArgumentException: Argument is not a Point")
		return 0
	}
	if x.isEmpty() {
		e.raise("UnsupportedOperationException: getX called on empty Point")
		return 0
	}
	*out = pick(x.coords[0])
	return 1
}

func (e *Engine) Area(g engine.Geom, out *float64) int {
	x, ok := e.lookup("Area", g)
	if !ok {
		return 0
	}
	*out = area(x)
	return 1
}

func (e *Engine) Length(g engine.Geom, out *float64) int {
	x, ok := e.lookup("Length", g)
	if !ok {
		return 0
	}
	*out = length(x)
	return 1
}

// CurveLength is defined for LineStrings and LinearRings only.
func (e *Engine) CurveLength(g engine.Geom, out *float64) int {
	x, ok := e.lookup("CurveLength", g)
	if !ok {
		return 0
	}
	if !x.isLinear() {
		e.raise("IllegalArgumentException: Argument is not a LineString")
		return 0
	}
	*out = lineLength(x.coords)
	return 1
}

// Distance is 0 when either operand is empty.
func (e *Engine) Distance(a, b engine.Geom, out *float64) int {
	x, y, ok := e.lookup2("Distance", a, b)
	if !ok {
		return 0
	}
	if x.isEmpty() || y.isEmpty() {
		*out = 0
		return 1
	}
	sx, sy, err := toSF2(x, y)
	if err != nil {
		e.fail("Distance", err)
		return 0
	}
	*out, _ = geom.Distance(sx, sy)
	return 1
}

func (e *Engine) HausdorffDistance(a, b engine.Geom, out *float64) int {
	x, y, ok := e.lookup2("HausdorffDistance", a, b)
	if !ok {
		return 0
	}
	d, err := hausdorff(x, y)
	if err != nil {
		e.fail("HausdorffDistance", err)
		return 0
	}
	*out = d
	return 1
}

func (e *Engine) Project(a, b engine.Geom) float64 {
	return e.project("Project", a, b, false)
}

func (e *Engine) ProjectNormalized(a, b engine.Geom) float64 {
	return e.project("ProjectNormalized", a, b, true)
}

func (e *Engine) project(method string, a, b engine.Geom, normalized bool) float64 {
	x, y, ok := e.lookup2(method, a, b)
	if !ok {
		return -1
	}
	if y.kind != engine.Point || y.isEmpty() {
		e.raise("IllegalArgumentException: second argument must be a non-empty Point")
		return -1
	}
	if !isLineal(x) {
		e.raise("IllegalArgumentException: first argument must be lineal")
		return -1
	}
	_, lines, _ := x.components()
	d := project(lines, y.coords[0])
	if normalized {
		total := length(x)
		if total == 0 {
			return 0
		}
		d /= total
	}
	return d
}

// Codes and counts.

func (e *Engine) Dimensions(g engine.Geom) int {
	x, ok := e.lookup("Dimensions", g)
	if !ok {
		return -1
	}
	return x.dimension()
}

func (e *Engine) CoordinateDimension(g engine.Geom) int {
	x, ok := e.lookup("CoordinateDimension", g)
	if !ok {
		return -1
	}
	return x.dims
}

func (e *Engine) SRID(g engine.Geom) int {
	x, ok := e.lookup("SRID", g)
	if !ok {
		return -1
	}
	return x.srid
}

func (e *Engine) NumGeometries(g engine.Geom) int {
	x, ok := e.lookup("NumGeometries", g)
	if !ok {
		return -1
	}
	if !x.isCollection() {
		return 1
	}
	return len(x.parts)
}

func (e *Engine) NumInteriorRings(g engine.Geom) int {
	x, ok := e.lookup("NumInteriorRings", g)
	if !ok {
		return -1
	}
	if x.kind != engine.Polygon {
		e.raise("IllegalArgumentException: Argument is not a Polygon")
		return -1
	}
	return len(x.holes())
}

func (e *Engine) NumPoints(g engine.Geom) int {
	x, ok := e.lookup("NumPoints", g)
	if !ok {
		return -1
	}
	if !x.isLinear() {
		e.raise("IllegalArgumentException: Argument is not a LineString")
		return -1
	}
	return len(x.coords)
}

func (e *Engine) NumCoordinates(g engine.Geom) int {
	x, ok := e.lookup("NumCoordinates", g)
	if !ok {
		return -1
	}
	return x.numCoordinates()
}
