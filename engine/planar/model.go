package planar

import (
	"math"
	"slices"

	"github.com/paulmach/orb"

	"github.com/hupe1980/geovec/engine"
)

type coord struct {
	x, y, z float64
}

func (c coord) equals2D(o coord) bool { return c.x == o.x && c.y == o.y }

func (c coord) compare(o coord) int {
	switch {
	case c.x < o.x:
		return -1
	case c.x > o.x:
		return 1
	case c.y < o.y:
		return -1
	case c.y > o.y:
		return 1
	default:
		return 0
	}
}

// geometry is the in-memory model. Point, LineString and LinearRing use
// coords; Polygon keeps its shell followed by its holes in parts; the
// multi types and GeometryCollection keep their members in parts.
type geometry struct {
	kind   engine.TypeID
	dims   int
	srid   int
	coords []coord
	parts  []*geometry
}

func newGeometry(kind engine.TypeID, dims int) *geometry {
	return &geometry{kind: kind, dims: dims}
}

func (g *geometry) clone() *geometry {
	c := &geometry{kind: g.kind, dims: g.dims, srid: g.srid}
	if g.coords != nil {
		c.coords = slices.Clone(g.coords)
	}
	if g.parts != nil {
		c.parts = make([]*geometry, len(g.parts))
		for i, p := range g.parts {
			c.parts[i] = p.clone()
		}
	}
	return c
}

func (g *geometry) isCollection() bool {
	return g.kind >= engine.MultiPoint
}

func (g *geometry) isLinear() bool {
	return g.kind == engine.LineString || g.kind == engine.LinearRing
}

func (g *geometry) isEmpty() bool {
	switch g.kind {
	case engine.Point, engine.LineString, engine.LinearRing:
		return len(g.coords) == 0
	case engine.Polygon:
		return len(g.parts) == 0 || g.parts[0].isEmpty()
	default:
		for _, p := range g.parts {
			if !p.isEmpty() {
				return false
			}
		}
		return true
	}
}

func (g *geometry) shell() *geometry {
	if len(g.parts) == 0 {
		return nil
	}
	return g.parts[0]
}

func (g *geometry) holes() []*geometry {
	if len(g.parts) < 2 {
		return nil
	}
	return g.parts[1:]
}

func (g *geometry) numCoordinates() int {
	n := len(g.coords)
	for _, p := range g.parts {
		n += p.numCoordinates()
	}
	return n
}

// allCoords returns every vertex in storage order.
func (g *geometry) allCoords() []coord {
	out := make([]coord, 0, g.numCoordinates())
	g.walk(func(x *geometry) {
		out = append(out, x.coords...)
	})
	return out
}

// walk visits every leaf (Point, LineString, LinearRing) of g.
func (g *geometry) walk(fn func(*geometry)) {
	switch g.kind {
	case engine.Point, engine.LineString, engine.LinearRing:
		fn(g)
	default:
		for _, p := range g.parts {
			p.walk(fn)
		}
	}
}

// components splits g into its puntal, lineal and polygonal leaves. Polygon
// rings are reported through polys only.
func (g *geometry) components() (points []coord, lines []*geometry, polys []*geometry) {
	var visit func(x *geometry)
	visit = func(x *geometry) {
		switch x.kind {
		case engine.Point:
			points = append(points, x.coords...)
		case engine.LineString, engine.LinearRing:
			if len(x.coords) > 0 {
				lines = append(lines, x)
			}
		case engine.Polygon:
			if !x.isEmpty() {
				polys = append(polys, x)
			}
		default:
			for _, p := range x.parts {
				visit(p)
			}
		}
	}
	visit(g)
	return points, lines, polys
}

func (g *geometry) dimension() int {
	switch g.kind {
	case engine.Point, engine.MultiPoint:
		return 0
	case engine.LineString, engine.LinearRing, engine.MultiLineString:
		return 1
	case engine.Polygon, engine.MultiPolygon:
		return 2
	default:
		d := -1
		for _, p := range g.parts {
			d = max(d, p.dimension())
		}
		return d
	}
}

func (g *geometry) isClosed() bool {
	return len(g.coords) > 0 && g.coords[0].equals2D(g.coords[len(g.coords)-1])
}

type envelope struct {
	minX, minY, maxX, maxY float64
	null                   bool
}

func (g *geometry) envelope() envelope {
	env := envelope{
		minX: math.Inf(1), minY: math.Inf(1),
		maxX: math.Inf(-1), maxY: math.Inf(-1),
		null: true,
	}
	for _, c := range g.allCoords() {
		env.minX = math.Min(env.minX, c.x)
		env.minY = math.Min(env.minY, c.y)
		env.maxX = math.Max(env.maxX, c.x)
		env.maxY = math.Max(env.maxY, c.y)
		env.null = false
	}
	return env
}

// sortIndex orders geometry types the way normalized collections are sorted.
func (g *geometry) sortIndex() int {
	return int(g.kind)
}

func (g *geometry) compare(o *geometry) int {
	if a, b := g.sortIndex(), o.sortIndex(); a != b {
		if a < b {
			return -1
		}
		return 1
	}
	if g.isEmpty() || o.isEmpty() {
		switch {
		case g.isEmpty() && o.isEmpty():
			return 0
		case g.isEmpty():
			return -1
		default:
			return 1
		}
	}
	if g.coords != nil || o.coords != nil {
		n := min(len(g.coords), len(o.coords))
		for i := 0; i < n; i++ {
			if c := g.coords[i].compare(o.coords[i]); c != 0 {
				return c
			}
		}
		return cmpInt(len(g.coords), len(o.coords))
	}
	n := min(len(g.parts), len(o.parts))
	for i := 0; i < n; i++ {
		if c := g.parts[i].compare(o.parts[i]); c != 0 {
			return c
		}
	}
	return cmpInt(len(g.parts), len(o.parts))
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// normalize rewrites g in place: lines start at their smaller end, rings
// start at their minimum vertex with shells clockwise and holes
// counter-clockwise, and collection members are sorted in descending order.
func (g *geometry) normalize() {
	switch g.kind {
	case engine.LineString:
		n := len(g.coords)
		for i := 0; i < n/2; i++ {
			j := n - 1 - i
			if c := g.coords[i].compare(g.coords[j]); c != 0 {
				if c > 0 {
					slices.Reverse(g.coords)
				}
				return
			}
		}
	case engine.LinearRing:
		normalizeRing(g.coords, true)
	case engine.Polygon:
		for i, r := range g.parts {
			normalizeRing(r.coords, i == 0)
		}
		holes := g.holes()
		slices.SortFunc(holes, func(a, b *geometry) int { return b.compare(a) })
	case engine.Point:
	default:
		for _, p := range g.parts {
			p.normalize()
		}
		slices.SortFunc(g.parts, func(a, b *geometry) int { return b.compare(a) })
	}
}

func normalizeRing(ring []coord, clockwise bool) {
	n := len(ring)
	if n < 4 {
		return
	}
	// The closing vertex is rebuilt after rotation.
	open := ring[:n-1]
	minIdx := 0
	for i := range open {
		if open[i].compare(open[minIdx]) < 0 {
			minIdx = i
		}
	}
	rotated := append(slices.Clone(open[minIdx:]), open[:minIdx]...)
	copy(open, rotated)
	ring[n-1] = ring[0]
	if (orb.Ring(lineOf(ring)).Orientation() == orb.CW) != clockwise {
		slices.Reverse(ring)
	}
}
