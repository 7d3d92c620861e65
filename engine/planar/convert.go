package planar

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/peterstace/simplefeatures/geom"

	"github.com/hupe1980/geovec/engine"
)

// Geometry algorithms run on two libraries: orb for measures and
// simplification, simplefeatures for DE-9IM relations, overlays and
// validity. Both see the 2D projection of the model; Z does not survive a
// round trip.

func xy(c coord) orb.Point { return orb.Point{c.x, c.y} }

func lineOf(cs []coord) orb.LineString {
	ls := make(orb.LineString, 0, len(cs))
	for _, c := range cs {
		ls = append(ls, xy(c))
	}
	return ls
}

func coordsOf(ls orb.LineString) []coord {
	if len(ls) == 0 {
		return nil
	}
	cs := make([]coord, len(ls))
	for i, p := range ls {
		cs[i] = coord{x: p[0], y: p[1]}
	}
	return cs
}

func polygonOf(g *geometry) orb.Polygon {
	p := make(orb.Polygon, 0, len(g.parts))
	if g.isEmpty() {
		return p
	}
	for _, r := range g.parts {
		p = append(p, orb.Ring(lineOf(r.coords)))
	}
	return p
}

// toOrb converts g to orb. WKB has no empty point and no ring type, so an
// empty Point becomes an empty MultiPoint and a LinearRing a LineString.
func toOrb(g *geometry) orb.Geometry {
	switch g.kind {
	case engine.Point:
		if g.isEmpty() {
			return orb.MultiPoint{}
		}
		return xy(g.coords[0])
	case engine.LineString, engine.LinearRing:
		return lineOf(g.coords)
	case engine.Polygon:
		return polygonOf(g)
	case engine.MultiPoint:
		mp := make(orb.MultiPoint, 0, len(g.parts))
		for _, p := range g.parts {
			if !p.isEmpty() {
				mp = append(mp, xy(p.coords[0]))
			}
		}
		return mp
	case engine.MultiLineString:
		mls := make(orb.MultiLineString, 0, len(g.parts))
		for _, p := range g.parts {
			mls = append(mls, lineOf(p.coords))
		}
		return mls
	case engine.MultiPolygon:
		mp := make(orb.MultiPolygon, 0, len(g.parts))
		for _, p := range g.parts {
			if !p.isEmpty() {
				mp = append(mp, polygonOf(p))
			}
		}
		return mp
	default:
		c := make(orb.Collection, 0, len(g.parts))
		for _, p := range g.parts {
			c = append(c, toOrb(p))
		}
		return c
	}
}

func pointAt(p orb.Point) *geometry {
	return &geometry{kind: engine.Point, dims: 2, coords: []coord{{x: p[0], y: p[1]}}}
}

func ringAt(r orb.Ring) *geometry {
	return &geometry{kind: engine.LinearRing, dims: 2, coords: coordsOf(orb.LineString(r))}
}

func polygonAt(p orb.Polygon) *geometry {
	g := newGeometry(engine.Polygon, 2)
	for _, r := range p {
		g.parts = append(g.parts, ringAt(r))
	}
	return g
}

// fromOrb converts an orb geometry into a 2D model geometry.
func fromOrb(o orb.Geometry) *geometry {
	switch v := o.(type) {
	case orb.Point:
		if math.IsNaN(v[0]) && math.IsNaN(v[1]) {
			return newGeometry(engine.Point, 2)
		}
		return pointAt(v)
	case orb.MultiPoint:
		g := newGeometry(engine.MultiPoint, 2)
		for _, p := range v {
			g.parts = append(g.parts, pointAt(p))
		}
		return g
	case orb.LineString:
		return &geometry{kind: engine.LineString, dims: 2, coords: coordsOf(v)}
	case orb.Ring:
		return ringAt(v)
	case orb.Polygon:
		return polygonAt(v)
	case orb.MultiLineString:
		g := newGeometry(engine.MultiLineString, 2)
		for _, ls := range v {
			g.parts = append(g.parts, &geometry{kind: engine.LineString, dims: 2, coords: coordsOf(ls)})
		}
		return g
	case orb.MultiPolygon:
		g := newGeometry(engine.MultiPolygon, 2)
		for _, p := range v {
			g.parts = append(g.parts, polygonAt(p))
		}
		return g
	case orb.Collection:
		g := newGeometry(engine.GeometryCollection, 2)
		for _, m := range v {
			g.parts = append(g.parts, fromOrb(m))
		}
		return g
	case orb.Bound:
		return polygonAt(v.ToPolygon())
	}
	return newGeometry(engine.GeometryCollection, 2)
}

// toSF hands g to simplefeatures. Construction skips validation so that
// invalid input still reaches the relation and overlay code, the way GEOS
// accepts it; IsValid runs the checks explicitly.
func toSF(g *geometry) (geom.Geometry, error) {
	b, err := wkb.Marshal(toOrb(g))
	if err != nil {
		return geom.Geometry{}, err
	}
	return geom.UnmarshalWKB(b, geom.NoValidate{})
}

func fromSF(s geom.Geometry) (*geometry, error) {
	o, err := wkb.Unmarshal(s.AsBinary())
	if err != nil {
		return nil, err
	}
	return fromOrb(o), nil
}

func toSF2(a, b *geometry) (geom.Geometry, geom.Geometry, error) {
	x, err := toSF(a)
	if err != nil {
		return geom.Geometry{}, geom.Geometry{}, err
	}
	y, err := toSF(b)
	if err != nil {
		return geom.Geometry{}, geom.Geometry{}, err
	}
	return x, y, nil
}
