package ufunc

import (
	"github.com/hupe1980/geovec"
	"github.com/hupe1980/geovec/array"
	"github.com/hupe1980/geovec/engine"
)

// UnaryTransform maps a geometry to a new geometry, e.g. envelope.
type UnaryTransform struct {
	base
	fn func(engine.Engine, engine.Geom) engine.Geom
}

func newUnaryTransform(name string, fn func(engine.Engine, engine.Geom) engine.Geom) *UnaryTransform {
	return &UnaryTransform{base: base{name: name, kind: KindUnaryTransform, types: "O->O"}, fn: fn}
}

// Call returns a new geometry for every element of g. On failure every
// geometry created by the call is released.
func (u *UnaryTransform) Call(ctx *geovec.Context, g any) (*array.Array[*geovec.Geometry], error) {
	return u.Into(ctx, nil, g)
}

// Into writes into out, releasing the geometries it replaces. On failure
// the positions already written keep their new geometries.
func (u *UnaryTransform) Into(ctx *geovec.Context, out *array.Array[*geovec.Geometry], g any) (*array.Array[*geovec.Geometry], error) {
	in := geometryOperand(g)
	return execute(ctx, &u.base, out, layouts(in.layout), func(call *geovec.Call, _ *array.Plan, it *array.Iter, dst **geovec.Geometry) error {
		a, err := ctx.AsGeometry(in.at(it, 0))
		if err != nil {
			return err
		}
		return store(call, ctx, dst, u.fn(ctx.Engine(), a.Ptr()))
	})
}

func (u *UnaryTransform) Apply(ctx *geovec.Context, args ...any) (any, error) {
	if err := u.checkArity(args); err != nil {
		return nil, err
	}
	return u.Call(ctx, args[0])
}

// IndexedTransform extracts a sub-geometry by index, e.g. get_point.
type IndexedTransform struct {
	base
	fn func(engine.Engine, engine.Geom, int) engine.Geom
}

func newIndexedTransform(name string, fn func(engine.Engine, engine.Geom, int) engine.Geom) *IndexedTransform {
	return &IndexedTransform{base: base{name: name, kind: KindIndexedTransform, types: "Oi->O"}, fn: fn}
}

func (u *IndexedTransform) Call(ctx *geovec.Context, g, index any) (*array.Array[*geovec.Geometry], error) {
	return u.Into(ctx, nil, g, index)
}

func (u *IndexedTransform) Into(ctx *geovec.Context, out *array.Array[*geovec.Geometry], g, index any) (*array.Array[*geovec.Geometry], error) {
	idx, err := intOperand(index)
	if err != nil {
		return nil, u.fail(err)
	}
	in := geometryOperand(g)
	return execute(ctx, &u.base, out, layouts(in.layout, idx.layout), func(call *geovec.Call, _ *array.Plan, it *array.Iter, dst **geovec.Geometry) error {
		a, err := ctx.AsGeometry(in.at(it, 0))
		if err != nil {
			return err
		}
		return store(call, ctx, dst, u.fn(ctx.Engine(), a.Ptr(), idx.at(it, 1)))
	})
}

func (u *IndexedTransform) Apply(ctx *geovec.Context, args ...any) (any, error) {
	if err := u.checkArity(args); err != nil {
		return nil, err
	}
	return u.Call(ctx, args[0], args[1])
}

// ParametricTransform maps a geometry and a float parameter to a geometry,
// e.g. simplify.
type ParametricTransform struct {
	base
	fn func(engine.Engine, engine.Geom, float64) engine.Geom
}

func newParametricTransform(name string, fn func(engine.Engine, engine.Geom, float64) engine.Geom) *ParametricTransform {
	return &ParametricTransform{base: base{name: name, kind: KindParametricTransform, types: "Od->O"}, fn: fn}
}

func (u *ParametricTransform) Call(ctx *geovec.Context, g, param any) (*array.Array[*geovec.Geometry], error) {
	return u.Into(ctx, nil, g, param)
}

func (u *ParametricTransform) Into(ctx *geovec.Context, out *array.Array[*geovec.Geometry], g, param any) (*array.Array[*geovec.Geometry], error) {
	p, err := floatOperand(param)
	if err != nil {
		return nil, u.fail(err)
	}
	in := geometryOperand(g)
	return execute(ctx, &u.base, out, layouts(in.layout, p.layout), func(call *geovec.Call, _ *array.Plan, it *array.Iter, dst **geovec.Geometry) error {
		a, err := ctx.AsGeometry(in.at(it, 0))
		if err != nil {
			return err
		}
		return store(call, ctx, dst, u.fn(ctx.Engine(), a.Ptr(), p.at(it, 1)))
	})
}

func (u *ParametricTransform) Apply(ctx *geovec.Context, args ...any) (any, error) {
	if err := u.checkArity(args); err != nil {
		return nil, err
	}
	return u.Call(ctx, args[0], args[1])
}

// BinaryTransform combines two geometries, e.g. intersection.
type BinaryTransform struct {
	base
	fn func(engine.Engine, engine.Geom, engine.Geom) engine.Geom
}

func newBinaryTransform(name string, fn func(engine.Engine, engine.Geom, engine.Geom) engine.Geom) *BinaryTransform {
	return &BinaryTransform{base: base{name: name, kind: KindBinaryTransform, types: "OO->O"}, fn: fn}
}

func (u *BinaryTransform) Call(ctx *geovec.Context, a, b any) (*array.Array[*geovec.Geometry], error) {
	return u.Into(ctx, nil, a, b)
}

func (u *BinaryTransform) Into(ctx *geovec.Context, out *array.Array[*geovec.Geometry], a, b any) (*array.Array[*geovec.Geometry], error) {
	ina, inb := geometryOperand(a), geometryOperand(b)
	return execute(ctx, &u.base, out, layouts(ina.layout, inb.layout), func(call *geovec.Call, _ *array.Plan, it *array.Iter, dst **geovec.Geometry) error {
		ga, err := ctx.AsGeometry(ina.at(it, 0))
		if err != nil {
			return err
		}
		gb, err := ctx.AsGeometry(inb.at(it, 1))
		if err != nil {
			return err
		}
		return store(call, ctx, dst, u.fn(ctx.Engine(), ga.Ptr(), gb.Ptr()))
	})
}

func (u *BinaryTransform) Apply(ctx *geovec.Context, args ...any) (any, error) {
	if err := u.checkArity(args); err != nil {
		return nil, err
	}
	return u.Call(ctx, args[0], args[1])
}

// BufferTransform buffers a geometry by a width with a number of segments
// per quadrant.
type BufferTransform struct {
	base
	fn func(engine.Engine, engine.Geom, float64, int) engine.Geom
}

func newBufferTransform(name string, fn func(engine.Engine, engine.Geom, float64, int) engine.Geom) *BufferTransform {
	return &BufferTransform{base: base{name: name, kind: KindBuffer, types: "Odi->O"}, fn: fn}
}

func (u *BufferTransform) Call(ctx *geovec.Context, g, width, quadsegs any) (*array.Array[*geovec.Geometry], error) {
	return u.Into(ctx, nil, g, width, quadsegs)
}

func (u *BufferTransform) Into(ctx *geovec.Context, out *array.Array[*geovec.Geometry], g, width, quadsegs any) (*array.Array[*geovec.Geometry], error) {
	w, err := floatOperand(width)
	if err != nil {
		return nil, u.fail(err)
	}
	q, err := intOperand(quadsegs)
	if err != nil {
		return nil, u.fail(err)
	}
	in := geometryOperand(g)
	return execute(ctx, &u.base, out, layouts(in.layout, w.layout, q.layout), func(call *geovec.Call, _ *array.Plan, it *array.Iter, dst **geovec.Geometry) error {
		a, err := ctx.AsGeometry(in.at(it, 0))
		if err != nil {
			return err
		}
		return store(call, ctx, dst, u.fn(ctx.Engine(), a.Ptr(), w.at(it, 1), q.at(it, 2)))
	})
}

func (u *BufferTransform) Apply(ctx *geovec.Context, args ...any) (any, error) {
	if err := u.checkArity(args); err != nil {
		return nil, err
	}
	return u.Call(ctx, args[0], args[1], args[2])
}

// SnapTransform snaps the vertices of a geometry to a reference geometry.
type SnapTransform struct {
	base
	fn func(engine.Engine, engine.Geom, engine.Geom, float64) engine.Geom
}

func newSnapTransform(name string, fn func(engine.Engine, engine.Geom, engine.Geom, float64) engine.Geom) *SnapTransform {
	return &SnapTransform{base: base{name: name, kind: KindSnap, types: "OOd->O"}, fn: fn}
}

func (u *SnapTransform) Call(ctx *geovec.Context, g, reference, tolerance any) (*array.Array[*geovec.Geometry], error) {
	return u.Into(ctx, nil, g, reference, tolerance)
}

func (u *SnapTransform) Into(ctx *geovec.Context, out *array.Array[*geovec.Geometry], g, reference, tolerance any) (*array.Array[*geovec.Geometry], error) {
	tol, err := floatOperand(tolerance)
	if err != nil {
		return nil, u.fail(err)
	}
	ina, inb := geometryOperand(g), geometryOperand(reference)
	return execute(ctx, &u.base, out, layouts(ina.layout, inb.layout, tol.layout), func(call *geovec.Call, _ *array.Plan, it *array.Iter, dst **geovec.Geometry) error {
		ga, err := ctx.AsGeometry(ina.at(it, 0))
		if err != nil {
			return err
		}
		gb, err := ctx.AsGeometry(inb.at(it, 1))
		if err != nil {
			return err
		}
		return store(call, ctx, dst, u.fn(ctx.Engine(), ga.Ptr(), gb.Ptr(), tol.at(it, 2)))
	})
}

func (u *SnapTransform) Apply(ctx *geovec.Context, args ...any) (any, error) {
	if err := u.checkArity(args); err != nil {
		return nil, err
	}
	return u.Call(ctx, args[0], args[1], args[2])
}

// normalize returns a normalized clone of g.
func normalize(e engine.Engine, g engine.Geom) engine.Geom {
	c := e.Clone(g)
	if c == 0 {
		return 0
	}
	if e.Normalize(c) == -1 {
		e.Destroy(c)
		return 0
	}
	return c
}

// withoutHoles builds a polygon from a clone of the ring g.
func withoutHoles(e engine.Engine, g engine.Geom) engine.Geom {
	c := e.Clone(g)
	if c == 0 {
		return 0
	}
	return e.CreatePolygon(c, nil)
}
