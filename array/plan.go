package array

import (
	"fmt"
	"slices"
)

// Plan is the iteration plan for one ufunc call: the broadcast loop shape,
// each operand's strides over that loop, and the resolved core dimensions.
type Plan struct {
	sig   *Signature
	shape []int
	// loop[k] are operand k's strides over the loop dimensions.
	loop    [][]int
	offsets []int
	// core[k] are operand k's strides over its own core dimensions.
	core  [][]int
	sizes map[string]int
}

// NewPlan plans a call over the given input layouts. A nil signature means
// every operand is elementwise.
func NewPlan(sig *Signature, inputs ...Layout) (*Plan, error) {
	if sig != nil && len(sig.Inputs) != len(inputs) {
		return nil, fmt.Errorf("%w: signature %s takes %d inputs, got %d",
			ErrCoreDimension, sig, len(sig.Inputs), len(inputs))
	}
	p := &Plan{sig: sig, sizes: make(map[string]int)}

	loopShapes := make([][]int, len(inputs))
	for k, in := range inputs {
		var dims []string
		if sig != nil {
			dims = sig.Inputs[k]
		}
		n := len(in.Shape) - len(dims)
		if n < 0 {
			return nil, fmt.Errorf("%w: operand %d has %d dimensions, signature %s needs at least %d",
				ErrCoreDimension, k, len(in.Shape), sig, len(dims))
		}
		for i, name := range dims {
			size := in.Shape[n+i]
			if prev, ok := p.sizes[name]; ok && prev != size {
				return nil, fmt.Errorf("%w: dimension %q is %d in operand %d but %d earlier",
					ErrCoreDimension, name, size, k, prev)
			}
			p.sizes[name] = size
		}
		loopShapes[k] = in.Shape[:n]
	}

	shape, err := BroadcastShapes(loopShapes...)
	if err != nil {
		return nil, err
	}
	p.shape = shape

	for k, in := range inputs {
		n := len(loopShapes[k])
		strides, err := broadcastStrides(in.Shape[:n], in.Strides[:n], shape)
		if err != nil {
			return nil, err
		}
		p.loop = append(p.loop, strides)
		p.core = append(p.core, slices.Clone(in.Strides[n:]))
		p.offsets = append(p.offsets, in.Offset)
	}
	return p, nil
}

// Shape returns the loop shape.
func (p *Plan) Shape() []int { return slices.Clone(p.shape) }

// Size returns the number of loop positions.
func (p *Plan) Size() int { return product(p.shape) }

// CoreSize returns the size of the named core dimension, or -1.
func (p *Plan) CoreSize(name string) int {
	if n, ok := p.sizes[name]; ok {
		return n
	}
	return -1
}

// CoreStride returns operand k's stride along its axis-th core dimension.
func (p *Plan) CoreStride(k, axis int) int { return p.core[k][axis] }

// OutputShape returns the shape an output operand must have: the loop shape
// followed by the output's resolved core dimensions.
func (p *Plan) OutputShape(out int) []int {
	shape := slices.Clone(p.shape)
	if p.sig != nil && out < len(p.sig.Outputs) {
		for _, name := range p.sig.Outputs[out] {
			shape = append(shape, p.sizes[name])
		}
	}
	return shape
}

// AddOutput binds an output layout to the plan and returns its operand
// index. The layout must have exactly OutputShape(out); outputs are never
// broadcast.
func (p *Plan) AddOutput(out int, l Layout) (int, error) {
	want := p.OutputShape(out)
	if !slices.Equal(l.Shape, want) {
		return 0, fmt.Errorf("%w: output has shape %v, want %v", ErrShapeMismatch, l.Shape, want)
	}
	n := len(p.shape)
	p.loop = append(p.loop, slices.Clone(l.Strides[:n]))
	p.core = append(p.core, slices.Clone(l.Strides[n:]))
	p.offsets = append(p.offsets, l.Offset)
	return len(p.loop) - 1, nil
}

// Iter returns an iterator over the loop positions of every bound operand.
func (p *Plan) Iter() *Iter {
	return newIter(p.shape, p.loop, p.offsets)
}

// Iter walks a loop shape in row-major order.
//
//	it := plan.Iter()
//	for it.Next() {
//		x := in.Load(it.Offset(0))
//		out.Store(it.Offset(1), f(x))
//	}
type Iter struct {
	shape   []int
	strides [][]int
	offs    []int
	pos     []int
	size    int
	index   int
	started bool
}

func newIter(shape []int, strides [][]int, offsets []int) *Iter {
	return &Iter{
		shape:   shape,
		strides: strides,
		offs:    slices.Clone(offsets),
		pos:     make([]int, len(shape)),
		size:    product(shape),
	}
}

// Next advances to the next position and reports whether there is one.
func (it *Iter) Next() bool {
	if !it.started {
		it.started = true
		return it.size > 0
	}
	it.index++
	if it.index >= it.size {
		return false
	}
	for d := len(it.shape) - 1; d >= 0; d-- {
		it.pos[d]++
		for k := range it.offs {
			it.offs[k] += it.strides[k][d]
		}
		if it.pos[d] < it.shape[d] {
			break
		}
		for k := range it.offs {
			it.offs[k] -= it.strides[k][d] * it.shape[d]
		}
		it.pos[d] = 0
	}
	return true
}

// Offset returns operand k's storage offset at the current position.
func (it *Iter) Offset(k int) int { return it.offs[k] }

// Index returns the row-major index of the current position.
func (it *Iter) Index() int { return it.index }

// Pos returns a copy of the current multi-index.
func (it *Iter) Pos() []int { return slices.Clone(it.pos) }
