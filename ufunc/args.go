package ufunc

import (
	"fmt"
	"math"

	"github.com/hupe1980/geovec"
	"github.com/hupe1980/geovec/array"
)

// operand is one promoted argument: a layout plus a typed element reader.
type operand[T any] struct {
	layout array.Layout
	load   func(off int) T
}

func (o operand[T]) at(it *array.Iter, k int) T { return o.load(it.Offset(k)) }

func scalarLayout() array.Layout {
	return array.Layout{Shape: []int{}, Strides: []int{}}
}

func scalar[T any](v T) operand[T] {
	return operand[T]{layout: scalarLayout(), load: func(int) T { return v }}
}

func fromArray[S, T any](a *array.Array[S], conv func(S) T) operand[T] {
	return operand[T]{layout: a.Layout(), load: func(off int) T { return conv(a.Load(off)) }}
}

func identity[T any](v T) T { return v }

func fromSlice[S, T any](s []S, conv func(S) T) operand[T] {
	a, _ := array.FromSlice(s)
	return fromArray(a, conv)
}

func invalidOperand(kind string, v any) error {
	return fmt.Errorf("%w: cannot use %T as %s operand", geovec.ErrInvalidArgument, v, kind)
}

// geometryOperand promotes v to an object operand. Elements are checked
// one by one during the loop, so any value is accepted here.
func geometryOperand(v any) operand[any] {
	switch x := v.(type) {
	case *array.Array[*geovec.Geometry]:
		return fromArray(x, func(g *geovec.Geometry) any { return g })
	case *array.Array[any]:
		return fromArray(x, identity[any])
	case []*geovec.Geometry:
		return fromSlice(x, func(g *geovec.Geometry) any { return g })
	case []any:
		return fromSlice(x, identity[any])
	default:
		return scalar(v)
	}
}

func floatOperand(v any) (operand[float64], error) {
	switch x := v.(type) {
	case float64:
		return scalar(x), nil
	case float32:
		return scalar(float64(x)), nil
	case int:
		return scalar(float64(x)), nil
	case int32:
		return scalar(float64(x)), nil
	case int64:
		return scalar(float64(x)), nil
	case []float64:
		return fromSlice(x, identity[float64]), nil
	case [][]float64:
		a, err := array.FromRows(x)
		if err != nil {
			return operand[float64]{}, geovec.TranslateError(err)
		}
		return fromArray(a, identity[float64]), nil
	case [][][]float64:
		a, err := array.FromBatches(x)
		if err != nil {
			return operand[float64]{}, geovec.TranslateError(err)
		}
		return fromArray(a, identity[float64]), nil
	case *array.Array[float64]:
		return fromArray(x, identity[float64]), nil
	case *array.Array[float32]:
		return fromArray(x, func(f float32) float64 { return float64(f) }), nil
	case *array.Array[int32]:
		return fromArray(x, func(i int32) float64 { return float64(i) }), nil
	case *array.Array[int]:
		return fromArray(x, func(i int) float64 { return float64(i) }), nil
	default:
		return operand[float64]{}, invalidOperand("float64", v)
	}
}

func integral(f float64) bool {
	return f == math.Trunc(f) && f >= math.MinInt32 && f <= math.MaxInt32
}

func fitsInt32[T int | int64](i T) bool {
	return i >= math.MinInt32 && i <= math.MaxInt32
}

func outOfRange(v any) error {
	return fmt.Errorf("%w: %v does not fit in int32", geovec.ErrInvalidArgument, v)
}

func intOperand(v any) (operand[int], error) {
	switch x := v.(type) {
	case int:
		if !fitsInt32(x) {
			return operand[int]{}, outOfRange(x)
		}
		return scalar(x), nil
	case int32:
		return scalar(int(x)), nil
	case int64:
		if !fitsInt32(x) {
			return operand[int]{}, outOfRange(x)
		}
		return scalar(int(x)), nil
	case float64:
		if !integral(x) {
			return operand[int]{}, invalidOperand("int32", v)
		}
		return scalar(int(x)), nil
	case []int:
		a, _ := array.FromSlice(x)
		return intOperand(a)
	case []int32:
		return fromSlice(x, func(i int32) int { return int(i) }), nil
	case *array.Array[int32]:
		return fromArray(x, func(i int32) int { return int(i) }), nil
	case *array.Array[int]:
		for _, i := range x.Values() {
			if !fitsInt32(i) {
				return operand[int]{}, outOfRange(i)
			}
		}
		return fromArray(x, identity[int]), nil
	case *array.Array[float64]:
		for _, f := range x.Values() {
			if !integral(f) {
				return operand[int]{}, fmt.Errorf("%w: %v is not an integer", geovec.ErrInvalidArgument, f)
			}
		}
		return fromArray(x, func(f float64) int { return int(f) }), nil
	case []float64:
		a, _ := array.FromSlice(x)
		return intOperand(a)
	default:
		return operand[int]{}, invalidOperand("int32", v)
	}
}
