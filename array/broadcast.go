package array

import "fmt"

// BroadcastShapes returns the shape that all shapes broadcast to. Shapes are
// aligned on their trailing dimensions; a dimension of size 1 (or a missing
// one) stretches to match the other operands.
func BroadcastShapes(shapes ...[]int) ([]int, error) {
	ndim := 0
	for _, s := range shapes {
		ndim = max(ndim, len(s))
	}
	out := make([]int, ndim)
	for i := range out {
		out[i] = 1
	}
	for _, s := range shapes {
		for i, d := range s {
			j := ndim - len(s) + i
			switch {
			case d == out[j]:
			case out[j] == 1:
				out[j] = d
			case d == 1:
			default:
				return nil, fmt.Errorf("%w: operands could not be broadcast together with shapes %s",
					ErrShapeMismatch, formatShapes(shapes))
			}
		}
	}
	return out, nil
}

// broadcastStrides returns the strides that view (shape, strides) as target.
func broadcastStrides(shape, strides, target []int) ([]int, error) {
	if len(shape) > len(target) {
		return nil, fmt.Errorf("%w: cannot broadcast %v to %v", ErrShapeMismatch, shape, target)
	}
	out := make([]int, len(target))
	lead := len(target) - len(shape)
	for i, d := range shape {
		switch d {
		case target[lead+i]:
			out[lead+i] = strides[i]
		case 1:
			out[lead+i] = 0
		default:
			return nil, fmt.Errorf("%w: cannot broadcast %v to %v", ErrShapeMismatch, shape, target)
		}
	}
	return out, nil
}

func formatShapes(shapes [][]int) string {
	s := ""
	for i, sh := range shapes {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprint(sh)
	}
	return s
}
