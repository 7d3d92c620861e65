package ufunc

import (
	"fmt"
	"math"

	"github.com/hupe1980/geovec"
	"github.com/hupe1980/geovec/array"
	"github.com/hupe1980/geovec/engine"
)

// Measure computes a float64 property of a geometry, e.g. area. The engine
// writes straight into the output slot.
type Measure struct {
	base
	fn func(engine.Engine, engine.Geom, *float64) int
}

func newMeasure(name string, fn func(engine.Engine, engine.Geom, *float64) int) *Measure {
	return &Measure{base: base{name: name, kind: KindMeasure, types: "O->d"}, fn: fn}
}

func (u *Measure) Call(ctx *geovec.Context, g any) (*array.Array[float64], error) {
	return u.Into(ctx, nil, g)
}

func (u *Measure) Into(ctx *geovec.Context, out *array.Array[float64], g any) (*array.Array[float64], error) {
	in := geometryOperand(g)
	return execute(ctx, &u.base, out, layouts(in.layout), func(call *geovec.Call, _ *array.Plan, it *array.Iter, dst *float64) error {
		a, err := ctx.AsGeometry(in.at(it, 0))
		if err != nil {
			return err
		}
		if u.fn(ctx.Engine(), a.Ptr(), dst) == 0 {
			return call.Failure(geovec.ErrEngineOperationFailed)
		}
		return nil
	})
}

func (u *Measure) Apply(ctx *geovec.Context, args ...any) (any, error) {
	if err := u.checkArity(args); err != nil {
		return nil, err
	}
	return u.Call(ctx, args[0])
}

// Code computes a small non-negative code, e.g. geom_type_id.
type Code struct {
	base
	fn func(engine.Engine, engine.Geom) int
}

func newCode(name string, fn func(engine.Engine, engine.Geom) int) *Code {
	return &Code{base: base{name: name, kind: KindCode, types: "O->B"}, fn: fn}
}

func (u *Code) Call(ctx *geovec.Context, g any) (*array.Array[uint8], error) {
	return u.Into(ctx, nil, g)
}

func (u *Code) Into(ctx *geovec.Context, out *array.Array[uint8], g any) (*array.Array[uint8], error) {
	in := geometryOperand(g)
	return execute(ctx, &u.base, out, layouts(in.layout), func(call *geovec.Call, _ *array.Plan, it *array.Iter, dst *uint8) error {
		a, err := ctx.AsGeometry(in.at(it, 0))
		if err != nil {
			return err
		}
		r := u.fn(ctx.Engine(), a.Ptr())
		switch {
		case r == -1:
			return call.Failure(geovec.ErrEngineOperationFailed)
		case r < 0 || r > math.MaxUint8:
			return call.Failure(fmt.Errorf("%w: code %d out of range", geovec.ErrEngineOperationFailed, r))
		}
		*dst = uint8(r)
		return nil
	})
}

func (u *Code) Apply(ctx *geovec.Context, args ...any) (any, error) {
	if err := u.checkArity(args); err != nil {
		return nil, err
	}
	return u.Call(ctx, args[0])
}

// Count computes a non-negative count, e.g. get_num_points.
type Count struct {
	base
	fn func(engine.Engine, engine.Geom) int
}

func newCount(name string, fn func(engine.Engine, engine.Geom) int) *Count {
	return &Count{base: base{name: name, kind: KindCount, types: "O->i"}, fn: fn}
}

func (u *Count) Call(ctx *geovec.Context, g any) (*array.Array[int32], error) {
	return u.Into(ctx, nil, g)
}

func (u *Count) Into(ctx *geovec.Context, out *array.Array[int32], g any) (*array.Array[int32], error) {
	in := geometryOperand(g)
	return execute(ctx, &u.base, out, layouts(in.layout), func(call *geovec.Call, _ *array.Plan, it *array.Iter, dst *int32) error {
		a, err := ctx.AsGeometry(in.at(it, 0))
		if err != nil {
			return err
		}
		r := u.fn(ctx.Engine(), a.Ptr())
		switch {
		case r == -1:
			return call.Failure(geovec.ErrEngineOperationFailed)
		case r < 0 || r > math.MaxInt32:
			return call.Failure(fmt.Errorf("%w: count %d out of range", geovec.ErrEngineOperationFailed, r))
		}
		*dst = int32(r)
		return nil
	})
}

func (u *Count) Apply(ctx *geovec.Context, args ...any) (any, error) {
	if err := u.checkArity(args); err != nil {
		return nil, err
	}
	return u.Call(ctx, args[0])
}

// BinaryMeasure computes a float64 property of a pair, e.g. distance.
type BinaryMeasure struct {
	base
	fn func(engine.Engine, engine.Geom, engine.Geom, *float64) int
}

func newBinaryMeasure(name string, fn func(engine.Engine, engine.Geom, engine.Geom, *float64) int) *BinaryMeasure {
	return &BinaryMeasure{base: base{name: name, kind: KindBinaryMeasure, types: "OO->d"}, fn: fn}
}

func (u *BinaryMeasure) Call(ctx *geovec.Context, a, b any) (*array.Array[float64], error) {
	return u.Into(ctx, nil, a, b)
}

func (u *BinaryMeasure) Into(ctx *geovec.Context, out *array.Array[float64], a, b any) (*array.Array[float64], error) {
	ina, inb := geometryOperand(a), geometryOperand(b)
	return execute(ctx, &u.base, out, layouts(ina.layout, inb.layout), func(call *geovec.Call, _ *array.Plan, it *array.Iter, dst *float64) error {
		ga, err := ctx.AsGeometry(ina.at(it, 0))
		if err != nil {
			return err
		}
		gb, err := ctx.AsGeometry(inb.at(it, 1))
		if err != nil {
			return err
		}
		if u.fn(ctx.Engine(), ga.Ptr(), gb.Ptr(), dst) == 0 {
			return call.Failure(geovec.ErrEngineOperationFailed)
		}
		return nil
	})
}

func (u *BinaryMeasure) Apply(ctx *geovec.Context, args ...any) (any, error) {
	if err := u.checkArity(args); err != nil {
		return nil, err
	}
	return u.Call(ctx, args[0], args[1])
}

// Projection returns the distance along a line to the point nearest to a
// point. A result of exactly -1 is the engine's failure sentinel.
type Projection struct {
	base
	fn func(engine.Engine, engine.Geom, engine.Geom) float64
}

func newProjection(name string, fn func(engine.Engine, engine.Geom, engine.Geom) float64) *Projection {
	return &Projection{base: base{name: name, kind: KindProjection, types: "OO->d"}, fn: fn}
}

func (u *Projection) Call(ctx *geovec.Context, line, point any) (*array.Array[float64], error) {
	return u.Into(ctx, nil, line, point)
}

func (u *Projection) Into(ctx *geovec.Context, out *array.Array[float64], line, point any) (*array.Array[float64], error) {
	ina, inb := geometryOperand(line), geometryOperand(point)
	return execute(ctx, &u.base, out, layouts(ina.layout, inb.layout), func(call *geovec.Call, _ *array.Plan, it *array.Iter, dst *float64) error {
		ga, err := ctx.AsGeometry(ina.at(it, 0))
		if err != nil {
			return err
		}
		gb, err := ctx.AsGeometry(inb.at(it, 1))
		if err != nil {
			return err
		}
		r := u.fn(ctx.Engine(), ga.Ptr(), gb.Ptr())
		if r == -1 {
			return call.Failure(geovec.ErrEngineOperationFailed)
		}
		*dst = r
		return nil
	})
}

func (u *Projection) Apply(ctx *geovec.Context, args ...any) (any, error) {
	if err := u.checkArity(args); err != nil {
		return nil, err
	}
	return u.Call(ctx, args[0], args[1])
}
