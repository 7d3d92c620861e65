package ufunc

import (
	"github.com/hupe1980/geovec"
	"github.com/hupe1980/geovec/array"
)

// sequenceBuilder builds one geometry per loop position from a coordinate
// block whose trailing axes are the core dimensions of the signature.
type sequenceBuilder struct {
	base
	seq geovec.SeqKind
}

func (u *sequenceBuilder) into(ctx *geovec.Context, out *array.Array[*geovec.Geometry], coords any) (*array.Array[*geovec.Geometry], error) {
	c, err := floatOperand(coords)
	if err != nil {
		return nil, u.fail(err)
	}
	return execute(ctx, &u.base, out, layouts(c.layout), func(call *geovec.Call, p *array.Plan, it *array.Iter, dst **geovec.Geometry) error {
		origin := it.Offset(0)
		n, dims := 1, p.CoreSize("d")
		pointStride, dimStride := 0, p.CoreStride(0, 0)
		if u.seq != geovec.SeqPoint {
			n = p.CoreSize("i")
			pointStride, dimStride = p.CoreStride(0, 0), p.CoreStride(0, 1)
		}
		g, err := ctx.BuildGeometry(u.seq, n, dims, func(i, d int) float64 {
			return c.load(origin + i*pointStride + d*dimStride)
		})
		if err != nil {
			return call.Failure(err)
		}
		replace(dst, g)
		return nil
	})
}

// PointBuilder builds points from coordinates of shape (..., d).
type PointBuilder struct{ sequenceBuilder }

// Call builds a Point for every coordinate row.
func (u *PointBuilder) Call(ctx *geovec.Context, coords any) (*array.Array[*geovec.Geometry], error) {
	return u.into(ctx, nil, coords)
}

func (u *PointBuilder) Into(ctx *geovec.Context, out *array.Array[*geovec.Geometry], coords any) (*array.Array[*geovec.Geometry], error) {
	return u.into(ctx, out, coords)
}

func (u *PointBuilder) Apply(ctx *geovec.Context, args ...any) (any, error) {
	if err := u.checkArity(args); err != nil {
		return nil, err
	}
	return u.Call(ctx, args[0])
}

// LineStringBuilder builds linestrings from coordinates of shape (..., i, d).
type LineStringBuilder struct{ sequenceBuilder }

func (u *LineStringBuilder) Call(ctx *geovec.Context, coords any) (*array.Array[*geovec.Geometry], error) {
	return u.into(ctx, nil, coords)
}

func (u *LineStringBuilder) Into(ctx *geovec.Context, out *array.Array[*geovec.Geometry], coords any) (*array.Array[*geovec.Geometry], error) {
	return u.into(ctx, out, coords)
}

func (u *LineStringBuilder) Apply(ctx *geovec.Context, args ...any) (any, error) {
	if err := u.checkArity(args); err != nil {
		return nil, err
	}
	return u.Call(ctx, args[0])
}

// LinearRingBuilder builds rings from coordinates of shape (..., i, d).
// Open rings are closed with a copy of their first point.
type LinearRingBuilder struct{ sequenceBuilder }

func (u *LinearRingBuilder) Call(ctx *geovec.Context, coords any) (*array.Array[*geovec.Geometry], error) {
	return u.into(ctx, nil, coords)
}

func (u *LinearRingBuilder) Into(ctx *geovec.Context, out *array.Array[*geovec.Geometry], coords any) (*array.Array[*geovec.Geometry], error) {
	return u.into(ctx, out, coords)
}

func (u *LinearRingBuilder) Apply(ctx *geovec.Context, args ...any) (any, error) {
	if err := u.checkArity(args); err != nil {
		return nil, err
	}
	return u.Call(ctx, args[0])
}

// PolygonBuilder builds polygons from shell rings and hole rings of shape
// (..., i). Inputs are cloned; the caller keeps ownership of the rings.
type PolygonBuilder struct {
	base
}

func (u *PolygonBuilder) Call(ctx *geovec.Context, shells, holes any) (*array.Array[*geovec.Geometry], error) {
	return u.Into(ctx, nil, shells, holes)
}

func (u *PolygonBuilder) Into(ctx *geovec.Context, out *array.Array[*geovec.Geometry], shells, holes any) (*array.Array[*geovec.Geometry], error) {
	ins, inh := geometryOperand(shells), geometryOperand(holes)
	return execute(ctx, &u.base, out, layouts(ins.layout, inh.layout), func(call *geovec.Call, p *array.Plan, it *array.Iter, dst **geovec.Geometry) error {
		shell, err := ctx.AsGeometry(ins.at(it, 0))
		if err != nil {
			return err
		}
		n, stride, origin := p.CoreSize("i"), p.CoreStride(1, 0), it.Offset(1)
		rings := make([]*geovec.Geometry, n)
		for j := range rings {
			if rings[j], err = ctx.AsGeometry(inh.load(origin + j*stride)); err != nil {
				return err
			}
		}
		g, err := ctx.NewPolygon(shell, rings...)
		if err != nil {
			return call.Failure(err)
		}
		replace(dst, g)
		return nil
	})
}

func (u *PolygonBuilder) Apply(ctx *geovec.Context, args ...any) (any, error) {
	if err := u.checkArity(args); err != nil {
		return nil, err
	}
	return u.Call(ctx, args[0], args[1])
}
