package array

import "errors"

var (
	// ErrShapeMismatch is returned when shapes cannot be broadcast together,
	// when data does not fill a shape, or when an output has the wrong shape.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrCoreDimension is returned when an operand lacks the core dimensions
	// of its signature or core sizes disagree between operands.
	ErrCoreDimension = errors.New("core dimension mismatch")

	// ErrInvalidSignature is returned by ParseSignature.
	ErrInvalidSignature = errors.New("invalid signature")
)
