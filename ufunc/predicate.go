package ufunc

import (
	"github.com/hupe1980/geovec"
	"github.com/hupe1980/geovec/array"
	"github.com/hupe1980/geovec/engine"
)

// truth maps a tri-state engine result to a bool; Exception fails the call.
func truth(call *geovec.Call, r int8, dst *bool) error {
	switch r {
	case engine.False:
		*dst = false
	case engine.True:
		*dst = true
	default:
		return call.Failure(geovec.ErrEngineOperationFailed)
	}
	return nil
}

// UnaryPredicate tests one geometry, e.g. is_empty.
type UnaryPredicate struct {
	base
	fn func(engine.Engine, engine.Geom) int8
}

func newUnaryPredicate(name string, fn func(engine.Engine, engine.Geom) int8) *UnaryPredicate {
	return &UnaryPredicate{base: base{name: name, kind: KindUnaryPredicate, types: "O->?"}, fn: fn}
}

// Call evaluates the predicate for every element of g.
func (u *UnaryPredicate) Call(ctx *geovec.Context, g any) (*array.Array[bool], error) {
	return u.Into(ctx, nil, g)
}

// Into writes the results into out. A nil out allocates a new array.
func (u *UnaryPredicate) Into(ctx *geovec.Context, out *array.Array[bool], g any) (*array.Array[bool], error) {
	in := geometryOperand(g)
	return execute(ctx, &u.base, out, layouts(in.layout), func(call *geovec.Call, _ *array.Plan, it *array.Iter, dst *bool) error {
		a, err := ctx.AsGeometry(in.at(it, 0))
		if err != nil {
			return err
		}
		return truth(call, u.fn(ctx.Engine(), a.Ptr()), dst)
	})
}

func (u *UnaryPredicate) Apply(ctx *geovec.Context, args ...any) (any, error) {
	if err := u.checkArity(args); err != nil {
		return nil, err
	}
	return u.Call(ctx, args[0])
}

// BinaryPredicate tests a pair of geometries, e.g. intersects.
type BinaryPredicate struct {
	base
	fn func(engine.Engine, engine.Geom, engine.Geom) int8
}

func newBinaryPredicate(name string, fn func(engine.Engine, engine.Geom, engine.Geom) int8) *BinaryPredicate {
	return &BinaryPredicate{base: base{name: name, kind: KindBinaryPredicate, types: "OO->?"}, fn: fn}
}

// Call evaluates the predicate over the broadcast of a and b.
func (u *BinaryPredicate) Call(ctx *geovec.Context, a, b any) (*array.Array[bool], error) {
	return u.Into(ctx, nil, a, b)
}

func (u *BinaryPredicate) Into(ctx *geovec.Context, out *array.Array[bool], a, b any) (*array.Array[bool], error) {
	ina, inb := geometryOperand(a), geometryOperand(b)
	return execute(ctx, &u.base, out, layouts(ina.layout, inb.layout), func(call *geovec.Call, _ *array.Plan, it *array.Iter, dst *bool) error {
		ga, err := ctx.AsGeometry(ina.at(it, 0))
		if err != nil {
			return err
		}
		gb, err := ctx.AsGeometry(inb.at(it, 1))
		if err != nil {
			return err
		}
		return truth(call, u.fn(ctx.Engine(), ga.Ptr(), gb.Ptr()), dst)
	})
}

func (u *BinaryPredicate) Apply(ctx *geovec.Context, args ...any) (any, error) {
	if err := u.checkArity(args); err != nil {
		return nil, err
	}
	return u.Call(ctx, args[0], args[1])
}

// TolerancePredicate tests a pair of geometries within a tolerance, e.g.
// equals_exact.
type TolerancePredicate struct {
	base
	fn func(engine.Engine, engine.Geom, engine.Geom, float64) int8
}

func newTolerancePredicate(name string, fn func(engine.Engine, engine.Geom, engine.Geom, float64) int8) *TolerancePredicate {
	return &TolerancePredicate{base: base{name: name, kind: KindTolerancePredicate, types: "OOd->?"}, fn: fn}
}

func (u *TolerancePredicate) Call(ctx *geovec.Context, a, b, tolerance any) (*array.Array[bool], error) {
	return u.Into(ctx, nil, a, b, tolerance)
}

func (u *TolerancePredicate) Into(ctx *geovec.Context, out *array.Array[bool], a, b, tolerance any) (*array.Array[bool], error) {
	tol, err := floatOperand(tolerance)
	if err != nil {
		return nil, u.fail(err)
	}
	ina, inb := geometryOperand(a), geometryOperand(b)
	return execute(ctx, &u.base, out, layouts(ina.layout, inb.layout, tol.layout), func(call *geovec.Call, _ *array.Plan, it *array.Iter, dst *bool) error {
		ga, err := ctx.AsGeometry(ina.at(it, 0))
		if err != nil {
			return err
		}
		gb, err := ctx.AsGeometry(inb.at(it, 1))
		if err != nil {
			return err
		}
		return truth(call, u.fn(ctx.Engine(), ga.Ptr(), gb.Ptr(), tol.at(it, 2)), dst)
	})
}

func (u *TolerancePredicate) Apply(ctx *geovec.Context, args ...any) (any, error) {
	if err := u.checkArity(args); err != nil {
		return nil, err
	}
	return u.Call(ctx, args[0], args[1], args[2])
}
