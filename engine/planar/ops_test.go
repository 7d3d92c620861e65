package planar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geovec/engine"
)

func TestPredicates(t *testing.T) {
	e, rec := newTestEngine(t)

	sq := square(t, e, 0, 0, 10)
	inside := point(t, e, 5, 5)
	onEdge := point(t, e, 10, 5)
	outside := point(t, e, 20, 20)
	far := square(t, e, 30, 30, 1)
	overlapping := square(t, e, 5, 5, 10)
	adjacent := square(t, e, 10, 0, 10)
	diagonal := line(t, e, [2]float64{0, 0}, [2]float64{10, 10})
	antiDiagonal := line(t, e, [2]float64{0, 10}, [2]float64{10, 0})
	innerLine := line(t, e, [2]float64{1, 1}, [2]float64{2, 2})

	tests := []struct {
		name string
		fn   func(a, b engine.Geom) int8
		a, b engine.Geom
		want int8
	}{
		{"intersects inside", e.Intersects, sq, inside, engine.True},
		{"intersects outside", e.Intersects, sq, outside, engine.False},
		{"intersects polygons", e.Intersects, sq, overlapping, engine.True},
		{"disjoint polygons", e.Disjoint, sq, far, engine.True},
		{"contains inside", e.Contains, sq, inside, engine.True},
		{"contains boundary", e.Contains, sq, onEdge, engine.False},
		{"covers boundary", e.Covers, sq, onEdge, engine.True},
		{"within", e.Within, inside, sq, engine.True},
		{"covered by", e.CoveredBy, onEdge, sq, engine.True},
		{"touches boundary", e.Touches, onEdge, sq, engine.True},
		{"touches interior", e.Touches, sq, inside, engine.False},
		{"equals self", e.Equals, sq, sq, engine.True},
		{"equals other", e.Equals, sq, far, engine.False},
		{"lines cross", e.Crosses, diagonal, antiDiagonal, engine.True},
		{"line crosses polygon", e.Crosses, diagonal, overlapping, engine.True},
		{"polygon contains line", e.Contains, sq, innerLine, engine.True},
		{"polygon contains overlapping polygon", e.Contains, sq, overlapping, engine.False},
		{"line within polygon", e.Within, innerLine, sq, engine.True},
		{"polygons touch", e.Touches, sq, adjacent, engine.True},
		{"overlapping polygons do not touch", e.Touches, sq, overlapping, engine.False},
		{"polygons overlap", e.Overlaps, sq, overlapping, engine.True},
		{"adjacent polygons do not overlap", e.Overlaps, sq, adjacent, engine.False},
		{"polygon covers line", e.Covers, sq, innerLine, engine.True},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.a, tt.b))
		})
	}
	assert.Empty(t, rec.errors)

	t.Run("empty operands", func(t *testing.T) {
		empty := e.CreateLineString(e.CoordSeqCreate(0, 2))
		require.NotZero(t, empty)
		assert.Equal(t, engine.False, e.Intersects(sq, empty))
		assert.Equal(t, engine.True, e.Disjoint(empty, sq))
		assert.Equal(t, engine.True, e.Equals(empty, empty))
		assert.Equal(t, engine.False, e.Equals(empty, sq))
	})
}

func TestEqualsIgnoresOrientation(t *testing.T) {
	e, _ := newTestEngine(t)

	a := line(t, e, [2]float64{0, 0}, [2]float64{1, 1}, [2]float64{2, 0})
	b := line(t, e, [2]float64{2, 0}, [2]float64{1, 1}, [2]float64{0, 0})

	assert.Equal(t, engine.True, e.Equals(a, b))
	assert.Equal(t, engine.False, e.EqualsExact(a, b, 0))
}

func TestEqualsExactTolerance(t *testing.T) {
	e, _ := newTestEngine(t)

	a := point(t, e, 0, 0)
	b := point(t, e, 0, 0.1)

	assert.Equal(t, engine.False, e.EqualsExact(a, b, 0.01))
	assert.Equal(t, engine.True, e.EqualsExact(a, b, 0.2))
}

func TestUnaryPredicates(t *testing.T) {
	e, rec := newTestEngine(t)

	closed := line(t, e, [2]float64{0, 0}, [2]float64{1, 0}, [2]float64{1, 1}, [2]float64{0, 0})
	bowtie := line(t, e, [2]float64{0, 0}, [2]float64{1, 1}, [2]float64{1, 0}, [2]float64{0, 1}, [2]float64{0, 0})
	open := line(t, e, [2]float64{0, 0}, [2]float64{1, 0})

	assert.Equal(t, engine.True, e.IsClosed(closed))
	assert.Equal(t, engine.True, e.IsRing(closed))
	assert.Equal(t, engine.False, e.IsSimple(bowtie))
	assert.Equal(t, engine.False, e.IsRing(bowtie))
	assert.Equal(t, engine.False, e.IsClosed(open))
	assert.Equal(t, engine.True, e.IsSimple(open))

	p := point(t, e, 0, 0)
	assert.Equal(t, engine.Exception, e.IsClosed(p))
	assert.Len(t, rec.errors, 1)

	t.Run("invalid polygon emits notice", func(t *testing.T) {
		shell := ring(t, e, [2]float64{0, 0}, [2]float64{1, 1}, [2]float64{1, 0}, [2]float64{0, 1}, [2]float64{0, 0})
		poly := e.CreatePolygon(shell, nil)
		require.NotZero(t, poly)

		assert.Equal(t, engine.False, e.IsValid(poly))
		require.Len(t, rec.notices, 1)
		assert.Contains(t, rec.notices[0], "Self-intersection")
	})

	t.Run("valid polygon", func(t *testing.T) {
		assert.Equal(t, engine.True, e.IsValid(square(t, e, 0, 0, 1)))
	})
}

func TestMeasures(t *testing.T) {
	e, _ := newTestEngine(t)

	sq := square(t, e, 0, 0, 2)
	ln := line(t, e, [2]float64{0, 0}, [2]float64{3, 4})
	p := point(t, e, 3, 4)
	q := point(t, e, 0, 0)

	var out float64
	require.Equal(t, 1, e.Area(sq, &out))
	assert.Equal(t, 4.0, out)
	require.Equal(t, 1, e.Length(sq, &out))
	assert.Equal(t, 8.0, out)
	require.Equal(t, 1, e.CurveLength(ln, &out))
	assert.Equal(t, 5.0, out)
	require.Equal(t, 1, e.Distance(p, q, &out))
	assert.Equal(t, 5.0, out)
	require.Equal(t, 1, e.X(p, &out))
	assert.Equal(t, 3.0, out)
	require.Equal(t, 1, e.Y(p, &out))
	assert.Equal(t, 4.0, out)
	require.Equal(t, 1, e.HausdorffDistance(ln, q, &out))
	assert.Equal(t, 5.0, out)

	assert.Zero(t, e.CurveLength(sq, &out))
	assert.Zero(t, e.X(sq, &out))

	assert.InDelta(t, 2.0, e.Project(ln, point(t, e, 3, 0.25)), 1e-9)
	assert.Equal(t, 1.0, e.ProjectNormalized(ln, p))
	assert.Equal(t, -1.0, e.Project(p, ln))
}

func TestTransforms(t *testing.T) {
	e, _ := newTestEngine(t)

	ln := line(t, e, [2]float64{0, 0}, [2]float64{10, 0}, [2]float64{10, 10})

	t.Run("envelope", func(t *testing.T) {
		env := e.Envelope(ln)
		assert.Equal(t, int(engine.Polygon), e.TypeID(env))
		var a float64
		e.Area(env, &a)
		assert.Equal(t, 100.0, a)
	})

	t.Run("centroid of square", func(t *testing.T) {
		c := e.Centroid(square(t, e, 0, 0, 4))
		var x, y float64
		e.X(c, &x)
		e.Y(c, &y)
		assert.InDelta(t, 2.0, x, 1e-12)
		assert.InDelta(t, 2.0, y, 1e-12)
	})

	t.Run("convex hull", func(t *testing.T) {
		h := e.ConvexHull(ln)
		assert.Equal(t, int(engine.Polygon), e.TypeID(h))
		assert.Equal(t, 4, e.NumCoordinates(h))
	})

	t.Run("boundary of open line", func(t *testing.T) {
		b := e.Boundary(ln)
		assert.Equal(t, int(engine.MultiPoint), e.TypeID(b))
		assert.Equal(t, 2, e.NumGeometries(b))
	})

	t.Run("start and end point", func(t *testing.T) {
		var x float64
		e.X(e.StartPoint(ln), &x)
		assert.Equal(t, 0.0, x)
		var y float64
		e.Y(e.EndPoint(ln), &y)
		assert.Equal(t, 10.0, y)
	})

	t.Run("interpolate", func(t *testing.T) {
		var x, y float64
		p := e.Interpolate(ln, 15)
		e.X(p, &x)
		e.Y(p, &y)
		assert.Equal(t, 10.0, x)
		assert.Equal(t, 5.0, y)

		p = e.InterpolateNormalized(ln, 0.25)
		e.X(p, &x)
		assert.Equal(t, 5.0, x)
	})

	t.Run("simplify", func(t *testing.T) {
		wiggle := line(t, e, [2]float64{0, 0}, [2]float64{5, 0.01}, [2]float64{10, 0})
		s := e.Simplify(wiggle, 0.1)
		assert.Equal(t, 2, e.NumPoints(s))
	})

	t.Run("point on surface lies inside", func(t *testing.T) {
		sq := square(t, e, 0, 0, 4)
		p := e.PointOnSurface(sq)
		assert.Equal(t, engine.True, e.Contains(sq, p))
	})

	t.Run("point buffer", func(t *testing.T) {
		b := e.Buffer(point(t, e, 0, 0), 1, 8)
		assert.Equal(t, 33, e.NumCoordinates(b))
		var a float64
		e.Area(b, &a)
		assert.InDelta(t, 3.12, a, 0.01)
	})

	t.Run("indexed accessors", func(t *testing.T) {
		p := e.PointN(ln, 1)
		var x float64
		e.X(p, &x)
		assert.Equal(t, 10.0, x)
		assert.Zero(t, e.PointN(ln, 3))

		g := e.GeometryN(ln, 0)
		assert.Equal(t, engine.True, e.EqualsExact(g, ln, 0))
		assert.NotEqual(t, ln, g)
	})

	t.Run("exterior ring is an owned copy", func(t *testing.T) {
		sq := square(t, e, 0, 0, 1)
		r := e.ExteriorRing(sq)
		require.NotZero(t, r)
		e.Destroy(sq)
		assert.Equal(t, 5, e.NumPoints(r))
	})
}

func TestNormalize(t *testing.T) {
	e, _ := newTestEngine(t)

	ln := line(t, e, [2]float64{2, 0}, [2]float64{1, 1}, [2]float64{0, 0})
	require.Equal(t, 0, e.Normalize(ln))

	var x float64
	e.X(e.StartPoint(ln), &x)
	assert.Equal(t, 0.0, x)

	sq := square(t, e, 0, 0, 1)
	require.Equal(t, 0, e.Normalize(sq))
	r := e.ExteriorRing(sq)
	var y float64
	e.Y(e.PointN(r, 1), &y)
	assert.Equal(t, 1.0, y, "normalized shells run clockwise")
}

func TestOverlays(t *testing.T) {
	e, rec := newTestEngine(t)

	a := square(t, e, 0, 0, 10)
	b := square(t, e, 5, 5, 10)

	tests := []struct {
		name string
		fn   func(a, b engine.Geom) engine.Geom
		area float64
	}{
		{"intersection", e.Intersection, 25},
		{"union", e.Union, 175},
		{"difference", e.Difference, 75},
		{"symmetric difference", e.SymDifference, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.fn(a, b)
			require.NotZero(t, g)
			var area float64
			require.Equal(t, 1, e.Area(g, &area))
			assert.InDelta(t, tt.area, area, 1e-9)
		})
	}

	t.Run("disjoint intersection is empty", func(t *testing.T) {
		g := e.Intersection(a, square(t, e, 20, 20, 1))
		require.NotZero(t, g)
		assert.Equal(t, engine.True, e.IsEmpty(g))
	})

	t.Run("unary union dissolves", func(t *testing.T) {
		u := e.Union(a, b)
		g := e.UnaryUnion(u)
		require.NotZero(t, g)
		assert.Equal(t, int(engine.Polygon), e.TypeID(g))
	})
	assert.Empty(t, rec.errors)
}

func TestBufferShapes(t *testing.T) {
	e, rec := newTestEngine(t)

	t.Run("line", func(t *testing.T) {
		b := e.Buffer(line(t, e, [2]float64{0, 0}, [2]float64{10, 0}), 1, 8)
		require.NotZero(t, b)
		assert.Equal(t, int(engine.Polygon), e.TypeID(b))
		var a float64
		e.Area(b, &a)
		assert.InDelta(t, 23.12, a, 0.01)
	})

	t.Run("polygon grows", func(t *testing.T) {
		b := e.Buffer(square(t, e, 0, 0, 10), 1, 8)
		require.NotZero(t, b)
		var a float64
		e.Area(b, &a)
		assert.InDelta(t, 100+40+3.12, a, 0.01)
	})

	t.Run("polygon shrinks", func(t *testing.T) {
		b := e.Buffer(square(t, e, 0, 0, 10), -1, 8)
		require.NotZero(t, b)
		var a float64
		e.Area(b, &a)
		assert.InDelta(t, 64.0, a, 1e-6)
	})

	t.Run("negative width on a line", func(t *testing.T) {
		b := e.Buffer(line(t, e, [2]float64{0, 0}, [2]float64{1, 0}), -1, 8)
		assert.Equal(t, engine.True, e.IsEmpty(b))
	})
	assert.Empty(t, rec.errors)
}

func TestLinework(t *testing.T) {
	e, rec := newTestEngine(t)

	t.Run("line merge", func(t *testing.T) {
		u := e.Union(
			line(t, e, [2]float64{0, 0}, [2]float64{1, 0}),
			line(t, e, [2]float64{1, 0}, [2]float64{2, 1}),
		)
		require.NotZero(t, u)
		m := e.LineMerge(u)
		require.NotZero(t, m)
		assert.Equal(t, int(engine.LineString), e.TypeID(m))
		assert.Equal(t, 3, e.NumPoints(m))
	})

	t.Run("line merge of a point", func(t *testing.T) {
		m := e.LineMerge(point(t, e, 0, 0))
		assert.Equal(t, engine.True, e.IsEmpty(m))
	})

	t.Run("shared paths", func(t *testing.T) {
		a := line(t, e, [2]float64{0, 0}, [2]float64{10, 0})
		same := line(t, e, [2]float64{5, 0}, [2]float64{15, 0})
		opposite := line(t, e, [2]float64{15, 0}, [2]float64{5, 0})

		sp := e.SharedPaths(a, same)
		require.NotZero(t, sp)
		assert.Equal(t, 1, e.NumGeometries(e.GeometryN(sp, 0)))
		assert.Equal(t, 0, e.NumGeometries(e.GeometryN(sp, 1)))

		sp = e.SharedPaths(a, opposite)
		require.NotZero(t, sp)
		assert.Equal(t, 0, e.NumGeometries(e.GeometryN(sp, 0)))
		assert.Equal(t, 1, e.NumGeometries(e.GeometryN(sp, 1)))
	})

	t.Run("snap", func(t *testing.T) {
		ln := line(t, e, [2]float64{0, 0}, [2]float64{10, 0.1})
		s := e.Snap(ln, point(t, e, 10, 0), 0.5)
		require.NotZero(t, s)
		var y float64
		e.Y(e.EndPoint(s), &y)
		assert.Equal(t, 0.0, y)
	})

	t.Run("topology preserving simplify", func(t *testing.T) {
		wiggle := line(t, e, [2]float64{0, 0}, [2]float64{5, 0.01}, [2]float64{10, 0})
		s := e.TopologyPreserveSimplify(wiggle, 0.1)
		assert.Equal(t, 2, e.NumPoints(s))
	})
	assert.Empty(t, rec.errors)

	t.Run("shared paths needs lines", func(t *testing.T) {
		assert.Zero(t, e.SharedPaths(point(t, e, 0, 0), point(t, e, 1, 1)))
		assert.Contains(t, rec.errors[len(rec.errors)-1], "not lineal")
	})
}
