package planar

import (
	"math"
	"slices"

	"github.com/paulmach/orb"
	orbplanar "github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
	"github.com/peterstace/simplefeatures/geom"

	"github.com/hupe1980/geovec/engine"
)

func dist(a, b coord) float64 {
	return orbplanar.Distance(xy(a), xy(b))
}

func lineLength(cs []coord) float64 {
	return orbplanar.Length(lineOf(cs))
}

func area(g *geometry) float64 {
	return orbplanar.Area(toOrb(g))
}

func length(g *geometry) float64 {
	return orbplanar.Length(toOrb(g))
}

// centroid weights by the highest dimension present, so a collection of a
// polygon and a point has the polygon's centroid.
func centroid(g *geometry) (coord, bool) {
	if g.isEmpty() {
		return coord{}, false
	}
	pts, lines, polys := g.components()
	var o orb.Geometry
	switch {
	case len(polys) > 0:
		mp := make(orb.MultiPolygon, 0, len(polys))
		for _, p := range polys {
			mp = append(mp, polygonOf(p))
		}
		o = mp
	case len(lines) > 0:
		mls := make(orb.MultiLineString, 0, len(lines))
		for _, l := range lines {
			mls = append(mls, lineOf(l.coords))
		}
		o = mls
	default:
		mp := make(orb.MultiPoint, 0, len(pts))
		for _, p := range pts {
			mp = append(mp, xy(p))
		}
		o = mp
	}
	c, _ := orbplanar.CentroidArea(o)
	return coord{x: c[0], y: c[1]}, true
}

func uniqueCoords(cs []coord) []coord {
	out := make([]coord, 0, len(cs))
	for _, c := range cs {
		if !slices.ContainsFunc(out, c.equals2D) {
			out = append(out, c)
		}
	}
	return out
}

// keepZ maps the vertices kept by a simplifier back onto src so that Z
// values survive.
func keepZ(src []coord, kept orb.LineString) []coord {
	out := make([]coord, 0, len(kept))
	j := 0
	for _, p := range kept {
		for j < len(src) && (src[j].x != p[0] || src[j].y != p[1]) {
			j++
		}
		if j == len(src) {
			break
		}
		out = append(out, src[j])
		j++
	}
	return out
}

func simplifyRing(cs []coord, dp *simplify.DouglasPeuckerSimplifier) []coord {
	kept := keepZ(cs, orb.LineString(dp.Ring(orb.Ring(lineOf(cs)))))
	if len(kept) < 4 {
		return nil
	}
	kept[len(kept)-1] = kept[0]
	return kept
}

// simplifyGeometry runs Douglas-Peucker over every line and ring of g.
// Rings that collapse are dropped; a collapsed shell empties its polygon.
func simplifyGeometry(g *geometry, dp *simplify.DouglasPeuckerSimplifier) *geometry {
	switch g.kind {
	case engine.LineString:
		out := g.clone()
		if len(g.coords) > 2 {
			out.coords = keepZ(g.coords, dp.LineString(lineOf(g.coords)))
		}
		return out
	case engine.LinearRing:
		out := g.clone()
		out.coords = simplifyRing(g.coords, dp)
		return out
	case engine.Polygon:
		out := &geometry{kind: engine.Polygon, dims: g.dims, srid: g.srid}
		for i, r := range g.parts {
			cs := simplifyRing(r.coords, dp)
			if cs == nil {
				if i == 0 {
					return out
				}
				continue
			}
			out.parts = append(out.parts, &geometry{kind: engine.LinearRing, dims: r.dims, coords: cs})
		}
		return out
	case engine.Point, engine.MultiPoint:
		return g.clone()
	default:
		out := &geometry{kind: g.kind, dims: g.dims, srid: g.srid}
		for _, p := range g.parts {
			s := simplifyGeometry(p, dp)
			if g.kind == engine.MultiPolygon && s.isEmpty() {
				continue
			}
			out.parts = append(out.parts, s)
		}
		return out
	}
}

// preserveSimplify simplifies component by component and keeps the original
// of any component whose simplified form collapses or becomes invalid.
func preserveSimplify(g *geometry, dp *simplify.DouglasPeuckerSimplifier) (*geometry, error) {
	switch g.kind {
	case engine.Point, engine.MultiPoint:
		return g.clone(), nil
	case engine.LineString, engine.LinearRing:
		s := simplifyGeometry(g, dp)
		if s.isEmpty() {
			return g.clone(), nil
		}
		before, err := isSimple(g)
		if err != nil {
			return nil, err
		}
		after, err := isSimple(s)
		if err != nil {
			return nil, err
		}
		if before && !after {
			return g.clone(), nil
		}
		return s, nil
	case engine.Polygon:
		s := simplifyGeometry(g, dp)
		if s.isEmpty() || len(s.parts) != len(g.parts) {
			return g.clone(), nil
		}
		msg, err := validate(s)
		if err != nil {
			return nil, err
		}
		if msg != "" {
			return g.clone(), nil
		}
		return s, nil
	default:
		out := &geometry{kind: g.kind, dims: g.dims, srid: g.srid}
		for _, p := range g.parts {
			s, err := preserveSimplify(p, dp)
			if err != nil {
				return nil, err
			}
			out.parts = append(out.parts, s)
		}
		return out, nil
	}
}

// isSimple asks simplefeatures about points and lines. Polygonal and mixed
// geometries are simple when each of their rings or members is.
func isSimple(g *geometry) (bool, error) {
	switch g.kind {
	case engine.Polygon, engine.MultiPolygon, engine.GeometryCollection:
		for _, p := range g.parts {
			ok, err := isSimple(p)
			if err != nil || !ok {
				return ok, err
			}
		}
		return true, nil
	}
	s, err := toSF(g)
	if err != nil {
		return false, err
	}
	ok, _ := s.IsSimple()
	return ok, nil
}

// validate returns an empty reason for valid geometries, otherwise a
// message naming the first problem found. Ring shape is checked here;
// ring interaction and nesting are left to simplefeatures.
func validate(g *geometry) (string, error) {
	for _, c := range g.allCoords() {
		if math.IsNaN(c.x) || math.IsNaN(c.y) || math.IsInf(c.x, 0) || math.IsInf(c.y, 0) {
			return fmtLocation("Invalid Coordinate", c), nil
		}
	}
	var (
		msg string
		err error
	)
	g.walk(func(x *geometry) {
		if msg != "" || err != nil || len(x.coords) == 0 {
			return
		}
		switch x.kind {
		case engine.LineString:
			if len(uniqueCoords(x.coords)) < 2 {
				msg = fmtLocation("Too few points in geometry component", x.coords[0])
			}
		case engine.LinearRing:
			msg, err = validateRing(x.coords)
		}
	})
	if msg != "" || err != nil {
		return msg, err
	}
	s, err := toSF(g)
	if err != nil {
		return "", err
	}
	if err := s.Validate(); err != nil {
		return err.Error(), nil
	}
	return "", nil
}

func validateRing(cs []coord) (string, error) {
	if len(uniqueCoords(cs)) < 3 {
		return fmtLocation("Too few points in geometry component", cs[0]), nil
	}
	if !cs[0].equals2D(cs[len(cs)-1]) {
		return fmtLocation("Ring not closed", cs[0]), nil
	}
	ok, err := isSimple(&geometry{kind: engine.LineString, dims: 2, coords: cs})
	if err != nil {
		return "", err
	}
	if !ok {
		return fmtLocation("Ring Self-intersection", cs[0]), nil
	}
	if orb.Ring(lineOf(cs)).Orientation() == 0 {
		return fmtLocation("Ring has zero area", cs[0]), nil
	}
	return "", nil
}

// hausdorff is the discrete Hausdorff distance: the largest distance from
// a vertex of either geometry to the other geometry.
func hausdorff(a, b *geometry) (float64, error) {
	if a.isEmpty() || b.isEmpty() {
		return 0, nil
	}
	sa, sb, err := toSF2(a, b)
	if err != nil {
		return 0, err
	}
	var d float64
	for _, pair := range []struct {
		from   *geometry
		target geom.Geometry
	}{{a, sb}, {b, sa}} {
		for _, c := range pair.from.allCoords() {
			p, err := toSF(pointAt(xy(c)))
			if err != nil {
				return 0, err
			}
			v, _ := geom.Distance(p, pair.target)
			d = math.Max(d, v)
		}
	}
	return d, nil
}

// closestOnSegment returns the fraction along ab of the point closest to p.
func closestOnSegment(p, a, b coord) float64 {
	dx, dy := b.x-a.x, b.y-a.y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return 0
	}
	t := ((p.x-a.x)*dx + (p.y-a.y)*dy) / l2
	return math.Max(0, math.Min(1, t))
}

func lerp(a, b coord, t float64) coord {
	return coord{
		x: a.x + t*(b.x-a.x),
		y: a.y + t*(b.y-a.y),
		z: a.z + t*(b.z-a.z),
	}
}

// interpolate returns the point at distance d along a linear geometry.
// Negative distances are measured from the end.
func interpolate(g *geometry, d float64) coord {
	cs := g.coords
	total := lineLength(cs)
	if d < 0 {
		d += total
	}
	d = math.Max(0, math.Min(total, d))
	var acc float64
	for i := 1; i < len(cs); i++ {
		l := dist(cs[i-1], cs[i])
		if acc+l >= d && l > 0 {
			return lerp(cs[i-1], cs[i], (d-acc)/l)
		}
		acc += l
	}
	return cs[len(cs)-1]
}

// project returns the distance along the lines to the point closest to p.
func project(lines []*geometry, p coord) float64 {
	best, at, acc := math.Inf(1), 0.0, 0.0
	for _, l := range lines {
		cs := l.coords
		for i := 1; i < len(cs); i++ {
			t := closestOnSegment(p, cs[i-1], cs[i])
			seg := dist(cs[i-1], cs[i])
			if d := dist(p, lerp(cs[i-1], cs[i], t)); d < best {
				best, at = d, acc+t*seg
			}
			acc += seg
		}
	}
	return at
}

// snap moves every vertex of g onto the nearest target vertex within
// tolerance and drops the repeated points this creates.
func snap(g *geometry, targets []coord, tolerance float64) *geometry {
	out := g.clone()
	out.walk(func(x *geometry) {
		for i, c := range x.coords {
			best := math.Inf(1)
			for _, t := range targets {
				if d := dist(c, t); d <= tolerance && d < best {
					best = d
					x.coords[i] = coord{x: t.x, y: t.y, z: c.z}
				}
			}
		}
		deduped := slices.CompactFunc(slices.Clone(x.coords), func(a, b coord) bool { return a.equals2D(b) })
		switch {
		case x.kind == engine.LineString && len(deduped) >= 2:
			x.coords = deduped
		case x.kind == engine.LinearRing && len(deduped) >= 4:
			x.coords = deduped
		}
	})
	return out
}

// lineMerge joins lines end to end through nodes of degree two.
func lineMerge(g *geometry) *geometry {
	_, lines, _ := g.components()
	var chains [][]coord
	degree := make(map[orb.Point]int)
	for _, l := range lines {
		if len(l.coords) < 2 {
			continue
		}
		chains = append(chains, slices.Clone(l.coords))
		degree[xy(l.coords[0])]++
		degree[xy(l.coords[len(l.coords)-1])]++
	}

	for merged := true; merged; {
		merged = false
	search:
		for i := range chains {
			for j := range chains {
				if i == j {
					continue
				}
				if joined, ok := join(chains[i], chains[j], degree); ok {
					chains[i] = joined
					chains = slices.Delete(chains, j, j+1)
					merged = true
					break search
				}
			}
		}
	}

	switch len(chains) {
	case 0:
		return newGeometry(engine.GeometryCollection, g.dims)
	case 1:
		return &geometry{kind: engine.LineString, dims: g.dims, coords: chains[0]}
	}
	out := newGeometry(engine.MultiLineString, g.dims)
	for _, c := range chains {
		out.parts = append(out.parts, &geometry{kind: engine.LineString, dims: g.dims, coords: c})
	}
	return out
}

// join links b onto either end of a when they meet at a node of degree two.
func join(a, b []coord, degree map[orb.Point]int) ([]coord, bool) {
	if out, ok := joinAtEnd(a, b, degree); ok {
		return out, true
	}
	r := slices.Clone(a)
	slices.Reverse(r)
	return joinAtEnd(r, b, degree)
}

func joinAtEnd(a, b []coord, degree map[orb.Point]int) ([]coord, bool) {
	end := a[len(a)-1]
	if degree[xy(end)] != 2 || a[0].equals2D(end) {
		return nil, false
	}
	switch {
	case b[0].equals2D(end):
		return append(slices.Clone(a), b[1:]...), true
	case b[len(b)-1].equals2D(end):
		r := slices.Clone(b)
		slices.Reverse(r)
		return append(slices.Clone(a), r[1:]...), true
	}
	return nil, false
}

func isLineal(g *geometry) bool {
	switch g.kind {
	case engine.LineString, engine.LinearRing, engine.MultiLineString:
		return true
	}
	return false
}

// sharedPaths splits the common linework of two lineal geometries into the
// pieces that run the same way along both and the pieces that run opposite
// ways. Pieces are oriented along a.
func sharedPaths(a, b *geometry) (*geometry, error) {
	sa, sb, err := toSF2(a, b)
	if err != nil {
		return nil, err
	}
	common, err := geom.Intersection(sa, sb)
	if err != nil {
		return nil, err
	}
	shared, err := fromSF(common)
	if err != nil {
		return nil, err
	}

	_, aLines, _ := a.components()
	_, bLines, _ := b.components()
	_, pieces, _ := shared.components()
	forward := newGeometry(engine.MultiLineString, 2)
	backward := newGeometry(engine.MultiLineString, 2)
	for _, p := range pieces {
		if len(p.coords) < 2 {
			continue
		}
		cs := slices.Clone(p.coords)
		first, last := cs[0], cs[len(cs)-1]
		da := project(aLines, last) - project(aLines, first)
		db := project(bLines, last) - project(bLines, first)
		if da < 0 {
			slices.Reverse(cs)
			db = -db
		}
		piece := &geometry{kind: engine.LineString, dims: 2, coords: cs}
		if db >= 0 {
			forward.parts = append(forward.parts, piece)
		} else {
			backward.parts = append(backward.parts, piece)
		}
	}
	return &geometry{kind: engine.GeometryCollection, dims: 2, parts: []*geometry{forward, backward}}, nil
}

// disc approximates a circle by a regular polygon with 4*quadsegs sides,
// running clockwise from (x+r, y).
func disc(c coord, r float64, quadsegs int) *geometry {
	n := 4 * quadsegs
	ring := make([]coord, 0, n+1)
	for i := 0; i < n; i++ {
		a := -2 * math.Pi * float64(i) / float64(n)
		ring = append(ring, coord{x: c.x + r*math.Cos(a), y: c.y + r*math.Sin(a)})
	}
	ring = append(ring, ring[0])
	shell := &geometry{kind: engine.LinearRing, dims: 2, coords: ring}
	return &geometry{kind: engine.Polygon, dims: 2, parts: []*geometry{shell}}
}

// capsule is the rectangle swept by segment ab at distance r. Zero-length
// segments have none.
func capsule(a, b coord, r float64) *geometry {
	l := dist(a, b)
	if l == 0 {
		return nil
	}
	nx, ny := -(b.y-a.y)/l*r, (b.x-a.x)/l*r
	ring := []coord{
		{x: a.x + nx, y: a.y + ny},
		{x: a.x - nx, y: a.y - ny},
		{x: b.x - nx, y: b.y - ny},
		{x: b.x + nx, y: b.y + ny},
		{x: a.x + nx, y: a.y + ny},
	}
	shell := &geometry{kind: engine.LinearRing, dims: 2, coords: ring}
	return &geometry{kind: engine.Polygon, dims: 2, parts: []*geometry{shell}}
}

// sweep returns the discs around every vertex and the capsules along every
// segment of g's points, lines and rings.
func sweep(g *geometry, r float64, quadsegs int) []*geometry {
	var out []*geometry
	g.walk(func(x *geometry) {
		for _, c := range uniqueCoords(x.coords) {
			out = append(out, disc(c, r, quadsegs))
		}
		for i := 1; i < len(x.coords); i++ {
			if c := capsule(x.coords[i-1], x.coords[i], r); c != nil {
				out = append(out, c)
			}
		}
	})
	return out
}

// unionAll folds the pieces together with pairwise unions. The pieces
// overlap, so they never form a valid MultiPolygon on their own.
func unionAll(pieces []*geometry) (geom.Geometry, error) {
	var acc geom.Geometry
	for i, p := range pieces {
		s, err := toSF(p)
		if err != nil {
			return geom.Geometry{}, err
		}
		if i == 0 {
			acc = s
			continue
		}
		if acc, err = geom.Union(acc, s); err != nil {
			return geom.Geometry{}, err
		}
	}
	return acc, nil
}

// buffer grows g by width. Polygons shrink for negative widths; points and
// lines have an empty buffer unless width is positive.
func buffer(g *geometry, width float64, quadsegs int) (*geometry, error) {
	_, _, polys := g.components()
	areal := len(polys) > 0
	if g.isEmpty() || (width <= 0 && !areal) {
		return newGeometry(engine.Polygon, 2), nil
	}
	if quadsegs < 1 {
		quadsegs = 1
	}

	var (
		out geom.Geometry
		err error
	)
	switch {
	case width == 0:
		out, err = unionAll(polys)
	case width > 0:
		out, err = unionAll(append(sweep(g, width, quadsegs), polys...))
	default:
		var base, edge geom.Geometry
		if base, err = unionAll(polys); err != nil {
			return nil, err
		}
		var rings []*geometry
		for _, p := range polys {
			rings = append(rings, sweep(p, -width, quadsegs)...)
		}
		if edge, err = unionAll(rings); err != nil {
			return nil, err
		}
		out, err = geom.Difference(base, edge)
	}
	if err != nil {
		return nil, err
	}
	res, err := fromSF(out)
	if err != nil {
		return nil, err
	}
	if res.isEmpty() {
		return newGeometry(engine.Polygon, 2), nil
	}
	return res, nil
}
