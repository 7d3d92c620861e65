package ufunc

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hupe1980/geovec"
	"github.com/hupe1980/geovec/array"
	"github.com/hupe1980/geovec/engine"
)

// Kind identifies a dispatch template.
type Kind uint8

const (
	KindUnaryPredicate Kind = iota
	KindBinaryPredicate
	KindUnaryTransform
	KindIndexedTransform
	KindParametricTransform
	KindBinaryTransform
	KindMeasure
	KindCode
	KindCount
	KindBinaryMeasure
	KindProjection
	KindBuffer
	KindSnap
	KindTolerancePredicate
	KindPoints
	KindLineStrings
	KindLinearRings
	KindPolygonsWithHoles
)

var kindNames = [...]string{
	KindUnaryPredicate:      "unary_predicate",
	KindBinaryPredicate:     "binary_predicate",
	KindUnaryTransform:      "unary_transform",
	KindIndexedTransform:    "indexed_transform",
	KindParametricTransform: "parametric_transform",
	KindBinaryTransform:     "binary_transform",
	KindMeasure:             "measure",
	KindCode:                "code",
	KindCount:               "count",
	KindBinaryMeasure:       "binary_measure",
	KindProjection:          "projection",
	KindBuffer:              "buffer",
	KindSnap:                "snap",
	KindTolerancePredicate:  "tolerance_predicate",
	KindPoints:              "points",
	KindLineStrings:         "linestrings",
	KindLinearRings:         "linearrings",
	KindPolygonsWithHoles:   "polygons_with_holes",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind returns the Kind with the given name.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kind %q", geovec.ErrInvalidArgument, s)
}

// Ufunc is a registered elementwise operation.
type Ufunc interface {
	// Name is the registry name, e.g. "area".
	Name() string
	Kind() Kind
	// NIn is the number of inputs.
	NIn() int
	// Types describes operand and result types, e.g. "Od->O". Codes: O
	// geometry, ? bool, B uint8, i int32, d float64.
	Types() string
	// Signature is the generalized signature, or "" for elementwise ufuncs.
	Signature() string
	// Apply calls the ufunc with untyped arguments and returns the typed
	// result array.
	Apply(ctx *geovec.Context, args ...any) (any, error)
}

type base struct {
	name  string
	kind  Kind
	types string
	sig   *array.Signature
}

func (b *base) Name() string  { return b.name }
func (b *base) Kind() Kind    { return b.kind }
func (b *base) Types() string { return b.types }

func (b *base) NIn() int {
	in, _, _ := strings.Cut(b.types, "->")
	return len(in)
}

func (b *base) Signature() string {
	if b.sig == nil {
		return ""
	}
	return b.sig.String()
}

func (b *base) String() string { return b.name }

func (b *base) checkArity(args []any) error {
	if len(args) != b.NIn() {
		return &geovec.DispatchError{
			Op:    b.name,
			Index: -1,
			Err:   fmt.Errorf("%w: takes %d arguments, got %d", geovec.ErrInvalidArgument, b.NIn(), len(args)),
		}
	}
	return nil
}

func (b *base) fail(err error) error {
	return &geovec.DispatchError{Op: b.name, Index: -1, Err: err}
}

var registry = map[string]Ufunc{}

func register[U Ufunc](u U) U {
	if _, dup := registry[u.Name()]; dup {
		panic("ufunc: duplicate registration of " + u.Name())
	}
	registry[u.Name()] = u
	return u
}

// Lookup returns the ufunc registered under name.
func Lookup(name string) (Ufunc, bool) {
	u, ok := registry[name]
	return u, ok
}

// Names returns the registered names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns the registered ufuncs sorted by name.
func All() []Ufunc {
	out := make([]Ufunc, 0, len(registry))
	for _, name := range Names() {
		out = append(out, registry[name])
	}
	return out
}

// kernel computes one output position.
type kernel[O any] func(call *geovec.Call, p *array.Plan, it *array.Iter, dst *O) error

// execute plans the broadcast over inputs and runs k at every position.
// With a nil out a fresh output is allocated, and geometries written to it
// are released if the call fails.
func execute[O any](ctx *geovec.Context, b *base, out *array.Array[O], inputs []array.Layout, k kernel[O]) (*array.Array[O], error) {
	if ctx == nil {
		return nil, b.fail(geovec.ErrNoContext)
	}
	call, err := ctx.Begin(b.name)
	if err != nil {
		return nil, b.fail(err)
	}

	plan, err := array.NewPlan(b.sig, inputs...)
	if err != nil {
		err = b.fail(geovec.TranslateError(err))
		call.End(0, err)
		return nil, err
	}

	fresh := out == nil
	if fresh {
		out = array.New[O](plan.OutputShape(0)...)
	}
	ko, err := plan.AddOutput(0, out.Layout())
	if err != nil {
		err = b.fail(geovec.TranslateError(err))
		call.End(0, err)
		return nil, err
	}

	it := plan.Iter()
	for it.Next() {
		if err := k(call, plan, it, out.Ref(it.Offset(ko))); err != nil {
			if fresh {
				discard(out)
			}
			err = &geovec.DispatchError{Op: b.name, Index: it.Index(), Err: err}
			call.End(plan.Size(), err)
			return nil, err
		}
	}

	call.End(plan.Size(), nil)
	return out, nil
}

// discard releases every geometry stored in a geometry output.
func discard[O any](out *array.Array[O]) {
	geoms, ok := any(out).(*array.Array[*geovec.Geometry])
	if !ok {
		return
	}
	for _, g := range geoms.Values() {
		g.Release()
	}
}

// store wraps ptr and puts it into dst, releasing the previous occupant.
func store(call *geovec.Call, ctx *geovec.Context, dst **geovec.Geometry, ptr engine.Geom) error {
	if ptr == 0 {
		return call.Failure(geovec.ErrEngineOperationFailed)
	}
	g, err := ctx.NewGeometry(ptr)
	if err != nil {
		return call.Failure(err)
	}
	(*dst).Release()
	*dst = g
	return nil
}

// replace puts an already wrapped geometry into dst.
func replace(dst **geovec.Geometry, g *geovec.Geometry) {
	(*dst).Release()
	*dst = g
}

func layouts(ops ...array.Layout) []array.Layout { return ops }
