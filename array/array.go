package array

import (
	"fmt"
	"slices"
)

// Layout describes how a logical index maps onto backing storage.
// Strides are in elements, not bytes.
type Layout struct {
	Shape   []int
	Strides []int
	Offset  int
}

// Array is a strided N-dimensional view over a backing slice.
type Array[T any] struct {
	data    []T
	shape   []int
	strides []int
	offset  int
}

func contiguousStrides(shape []int) []int {
	strides := make([]int, len(shape))
	s := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = s
		s *= shape[i]
	}
	return strides
}

func product(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

func checkShape(shape []int) error {
	for _, d := range shape {
		if d < 0 {
			return fmt.Errorf("%w: negative dimension in %v", ErrShapeMismatch, shape)
		}
	}
	return nil
}

// New returns a zero-filled contiguous array. With no dimensions it returns
// a 0-d array holding one element.
func New[T any](shape ...int) *Array[T] {
	if err := checkShape(shape); err != nil {
		panic(err)
	}
	return &Array[T]{
		data:    make([]T, product(shape)),
		shape:   slices.Clone(shape),
		strides: contiguousStrides(shape),
	}
}

// Full returns a contiguous array with every element set to v.
func Full[T any](v T, shape ...int) *Array[T] {
	a := New[T](shape...)
	for i := range a.data {
		a.data[i] = v
	}
	return a
}

// FromSlice wraps data (without copying) as an array of the given shape.
// Without a shape the array is 1-D.
func FromSlice[T any](data []T, shape ...int) (*Array[T], error) {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	if err := checkShape(shape); err != nil {
		return nil, err
	}
	if product(shape) != len(data) {
		return nil, fmt.Errorf("%w: %d elements cannot fill shape %v", ErrShapeMismatch, len(data), shape)
	}
	return &Array[T]{
		data:    data,
		shape:   slices.Clone(shape),
		strides: contiguousStrides(shape),
	}, nil
}

// Of returns a 1-D array holding a copy of values.
func Of[T any](values ...T) *Array[T] {
	a, _ := FromSlice(slices.Clone(values))
	if a.data == nil {
		a.data = []T{}
	}
	return a
}

// Scalar returns a 0-d array holding v.
func Scalar[T any](v T) *Array[T] {
	return &Array[T]{data: []T{v}, shape: []int{}, strides: []int{}}
}

// FromRows builds a 2-D float64 array from equally long rows.
func FromRows(rows [][]float64) (*Array[float64], error) {
	if len(rows) == 0 {
		return New[float64](0, 0), nil
	}
	width := len(rows[0])
	data := make([]float64, 0, len(rows)*width)
	for i, r := range rows {
		if len(r) != width {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrShapeMismatch, i, len(r), width)
		}
		data = append(data, r...)
	}
	return FromSlice(data, len(rows), width)
}

// FromBatches builds a 3-D float64 array from equally shaped batches of
// rows, such as a set of rings with the same vertex count.
func FromBatches(batches [][][]float64) (*Array[float64], error) {
	if len(batches) == 0 {
		return New[float64](0, 0, 0), nil
	}
	first, err := FromRows(batches[0])
	if err != nil {
		return nil, err
	}
	shape := first.Shape()
	data := make([]float64, 0, len(batches)*first.Size())
	for i, b := range batches {
		rows, err := FromRows(b)
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", i, err)
		}
		if !slices.Equal(rows.Shape(), shape) {
			return nil, fmt.Errorf("%w: batch %d has shape %v, want %v", ErrShapeMismatch, i, rows.Shape(), shape)
		}
		data = append(data, rows.Values()...)
	}
	return FromSlice(data, len(batches), shape[0], shape[1])
}

// Shape returns a copy of the array's dimensions.
func (a *Array[T]) Shape() []int { return slices.Clone(a.shape) }

// Ndim returns the number of dimensions.
func (a *Array[T]) Ndim() int { return len(a.shape) }

// Size returns the number of logical elements.
func (a *Array[T]) Size() int { return product(a.shape) }

// Layout returns the array's storage layout.
func (a *Array[T]) Layout() Layout {
	return Layout{
		Shape:   slices.Clone(a.shape),
		Strides: slices.Clone(a.strides),
		Offset:  a.offset,
	}
}

func (a *Array[T]) index(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("array: %d indices for %d-d array", len(idx), len(a.shape)))
	}
	off := a.offset
	for i, v := range idx {
		if v < 0 || v >= a.shape[i] {
			panic(fmt.Sprintf("array: index %d out of range for axis %d with size %d", v, i, a.shape[i]))
		}
		off += v * a.strides[i]
	}
	return off
}

// At returns the element at idx. It panics if idx is out of range.
func (a *Array[T]) At(idx ...int) T { return a.data[a.index(idx)] }

// Set stores v at idx. It panics if idx is out of range.
func (a *Array[T]) Set(v T, idx ...int) { a.data[a.index(idx)] = v }

// Load returns the element at storage offset off.
func (a *Array[T]) Load(off int) T { return a.data[off] }

// Store writes v at storage offset off.
func (a *Array[T]) Store(off int, v T) { a.data[off] = v }

// Ref returns a pointer to the element at storage offset off.
func (a *Array[T]) Ref(off int) *T { return &a.data[off] }

// Values returns the logical elements in row-major order.
func (a *Array[T]) Values() []T {
	out := make([]T, 0, a.Size())
	it := newIter(a.shape, [][]int{a.strides}, []int{a.offset})
	for it.Next() {
		out = append(out, a.data[it.Offset(0)])
	}
	return out
}

func (a *Array[T]) contiguous() bool {
	return slices.Equal(a.strides, contiguousStrides(a.shape))
}

// Reshape returns an array with the same elements and a new shape. The
// result shares storage when a is contiguous and is a copy otherwise.
func (a *Array[T]) Reshape(shape ...int) (*Array[T], error) {
	if err := checkShape(shape); err != nil {
		return nil, err
	}
	if product(shape) != a.Size() {
		return nil, fmt.Errorf("%w: cannot reshape %v into %v", ErrShapeMismatch, a.shape, shape)
	}
	if a.contiguous() {
		return &Array[T]{
			data:    a.data[a.offset : a.offset+a.Size()],
			shape:   slices.Clone(shape),
			strides: contiguousStrides(shape),
		}, nil
	}
	return FromSlice(a.Values(), shape...)
}

// BroadcastTo returns a read-only view of a with the given shape. Broadcast
// dimensions get a zero stride.
func (a *Array[T]) BroadcastTo(shape ...int) (*Array[T], error) {
	strides, err := broadcastStrides(a.shape, a.strides, shape)
	if err != nil {
		return nil, err
	}
	return &Array[T]{
		data:    a.data,
		shape:   slices.Clone(shape),
		strides: strides,
		offset:  a.offset,
	}, nil
}

// String formats the array's shape and elements.
func (a *Array[T]) String() string {
	return fmt.Sprintf("array%v%v", a.shape, a.Values())
}
