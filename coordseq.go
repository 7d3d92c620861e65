package geovec

import (
	"fmt"

	"github.com/hupe1980/geovec/engine"
	"github.com/hupe1980/geovec/internal/resource"
)

const ordinateBytes = 8

// CoordSeq is an engine coordinate sequence being filled. It is consumed by
// Point, LineString or LinearRing, or discarded with Release.
type CoordSeq struct {
	ctx  *Context
	ptr  engine.CoordSeq
	size int
	dims int
	res  *resource.Reservation
}

// NewCoordSeq allocates a sequence of size points with dims ordinates each.
func (c *Context) NewCoordSeq(size, dims int) (*CoordSeq, error) {
	if size < 0 || dims < 1 {
		return nil, fmt.Errorf("%w: invalid sequence size %dx%d", ErrAllocationFailed, size, dims)
	}
	res, err := c.resources.Reserve(int64(size) * int64(dims) * ordinateBytes)
	if err != nil {
		return nil, translateError(err)
	}
	ptr := c.eng.CoordSeqCreate(size, dims)
	if ptr == 0 {
		res.Release()
		return nil, ErrAllocationFailed
	}
	return &CoordSeq{ctx: c, ptr: ptr, size: size, dims: dims, res: res}, nil
}

// Size returns the number of points.
func (s *CoordSeq) Size() int { return s.size }

// Dims returns the number of ordinates per point.
func (s *CoordSeq) Dims() int { return s.dims }

// Set writes ordinate dim of point i. If the engine rejects the write the
// sequence is released before the error is returned.
func (s *CoordSeq) Set(i, dim int, v float64) error {
	if s.ptr == 0 {
		return ErrSequenceReleased
	}
	if s.ctx.eng.CoordSeqSetOrdinate(s.ptr, i, dim, v) == 0 {
		s.Release()
		return ErrEngineOperationFailed
	}
	return nil
}

// Release destroys the sequence if it has not been consumed. It is safe to
// call more than once.
func (s *CoordSeq) Release() {
	if s == nil {
		return
	}
	if s.ptr != 0 {
		s.ctx.eng.CoordSeqDestroy(s.ptr)
		s.ptr = 0
	}
	s.res.Release()
}

// Point builds a Point from the sequence.
func (s *CoordSeq) Point() (*Geometry, error) {
	return s.finish(engine.Engine.CreatePoint)
}

// LineString builds a LineString from the sequence.
func (s *CoordSeq) LineString() (*Geometry, error) {
	return s.finish(engine.Engine.CreateLineString)
}

// LinearRing builds a LinearRing from the sequence. The sequence must
// already be closed.
func (s *CoordSeq) LinearRing() (*Geometry, error) {
	return s.finish(engine.Engine.CreateLinearRing)
}

func (s *CoordSeq) finish(build func(engine.Engine, engine.CoordSeq) engine.Geom) (*Geometry, error) {
	if s.ptr == 0 {
		return nil, ErrSequenceReleased
	}
	ptr := s.ptr
	s.ptr = 0
	s.res.Release()
	g := build(s.ctx.eng, ptr)
	if g == 0 {
		return nil, ErrEngineOperationFailed
	}
	return s.ctx.NewGeometry(g)
}

// NeedsClosure reports whether the first and last of n points differ in
// any of their dims ordinates. at returns ordinate d of point i. An empty
// point list needs no closure.
func NeedsClosure(n, dims int, at func(i, d int) float64) bool {
	if n == 0 {
		return false
	}
	for d := 0; d < dims; d++ {
		if at(0, d) != at(n-1, d) {
			return true
		}
	}
	return false
}

// SeqKind selects the geometry built from a coordinate sequence.
type SeqKind uint8

const (
	SeqPoint SeqKind = iota
	SeqLineString
	SeqLinearRing
)

func (k SeqKind) String() string {
	switch k {
	case SeqPoint:
		return "point"
	case SeqLineString:
		return "linestring"
	case SeqLinearRing:
		return "linearring"
	default:
		return "unknown"
	}
}

// BuildGeometry runs the whole sequence protocol: allocate, fill n points of
// dims ordinates from at, close rings whose first and last points differ by
// appending a copy of the first, and build. On failure nothing stays
// allocated.
func (c *Context) BuildGeometry(kind SeqKind, n, dims int, at func(i, d int) float64) (*Geometry, error) {
	size := n
	if kind == SeqLinearRing && NeedsClosure(n, dims, at) {
		size++
	}

	s, err := c.NewCoordSeq(size, dims)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for d := 0; d < dims; d++ {
			if err := s.Set(i, d, at(i, d)); err != nil {
				return nil, err
			}
		}
	}
	if size > n {
		for d := 0; d < dims; d++ {
			if err := s.Set(n, d, at(0, d)); err != nil {
				return nil, err
			}
		}
	}

	switch kind {
	case SeqPoint:
		return s.Point()
	case SeqLineString:
		return s.LineString()
	case SeqLinearRing:
		return s.LinearRing()
	default:
		s.Release()
		return nil, fmt.Errorf("%w: sequence kind %d", ErrInvalidArgument, kind)
	}
}

func rowsAt(points [][]float64) (n, dims int, at func(i, d int) float64, err error) {
	if len(points) == 0 {
		return 0, 2, nil, nil
	}
	dims = len(points[0])
	for i, p := range points {
		if len(p) != dims {
			return 0, 0, nil, fmt.Errorf("%w: point %d has %d ordinates, want %d", ErrInvalidArgument, i, len(p), dims)
		}
	}
	return len(points), dims, func(i, d int) float64 { return points[i][d] }, nil
}

// NewPoint builds a Point from its ordinates. Without ordinates the point
// is empty.
func (c *Context) NewPoint(coords ...float64) (*Geometry, error) {
	if len(coords) == 0 {
		return c.BuildGeometry(SeqPoint, 0, 2, nil)
	}
	return c.BuildGeometry(SeqPoint, 1, len(coords), func(_, d int) float64 { return coords[d] })
}

// NewLineString builds a LineString from points of equal dimension.
func (c *Context) NewLineString(points [][]float64) (*Geometry, error) {
	n, dims, at, err := rowsAt(points)
	if err != nil {
		return nil, err
	}
	return c.BuildGeometry(SeqLineString, n, dims, at)
}

// NewLinearRing builds a LinearRing, closing it if needed.
func (c *Context) NewLinearRing(points [][]float64) (*Geometry, error) {
	n, dims, at, err := rowsAt(points)
	if err != nil {
		return nil, err
	}
	return c.BuildGeometry(SeqLinearRing, n, dims, at)
}

// NewPolygon builds a Polygon from clones of a shell ring and hole rings.
// The inputs stay owned by the caller.
func (c *Context) NewPolygon(shell *Geometry, holes ...*Geometry) (*Geometry, error) {
	clones := make([]engine.Geom, 0, 1+len(holes))
	discard := func() {
		for _, p := range clones {
			c.eng.Destroy(p)
		}
	}

	for _, r := range append([]*Geometry{shell}, holes...) {
		g, err := c.AsGeometry(r)
		if err != nil {
			discard()
			return nil, err
		}
		p := c.eng.Clone(g.ptr)
		if p == 0 {
			discard()
			return nil, ErrEngineOperationFailed
		}
		clones = append(clones, p)
	}

	// CreatePolygon owns the clones from here on, also on failure.
	poly := c.eng.CreatePolygon(clones[0], clones[1:])
	if poly == 0 {
		return nil, ErrEngineOperationFailed
	}
	return c.NewGeometry(poly)
}
