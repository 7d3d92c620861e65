package geovec

import (
	"errors"
	"fmt"

	"github.com/hupe1980/geovec/array"
	"github.com/hupe1980/geovec/internal/resource"
)

var (
	// ErrInitializationFailed is returned when a new geometry's type id or
	// Z flag cannot be read from the engine. The engine pointer is destroyed.
	ErrInitializationFailed = errors.New("geometry initialization failed")

	// ErrInvalidArgument is returned for arguments that cannot be converted
	// or do not fit together (raw pointers, shapes, signatures).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTypeError is returned when an operand that must be a geometry is not.
	ErrTypeError = errors.New("operand is not a geometry")

	// ErrEmptyGeometry is returned when a released or null geometry handle
	// is used.
	ErrEmptyGeometry = errors.New("geometry handle is empty")

	// ErrEngineOperationFailed is returned when an engine call reports failure.
	ErrEngineOperationFailed = errors.New("engine operation failed")

	// ErrAllocationFailed is returned when a coordinate sequence cannot be
	// allocated.
	ErrAllocationFailed = errors.New("allocation failed")

	// ErrEngine is the error class registered with the engine's error
	// handler. Every *EngineError raised through the handler matches it.
	ErrEngine = errors.New("geometry engine error")

	// ErrContextActive is returned by Init while another Context is active.
	ErrContextActive = errors.New("engine context already active")

	// ErrNoContext is returned by Active when no Context is active.
	ErrNoContext = errors.New("no active engine context")

	// ErrContextClosed is returned when a closed Context is used.
	ErrContextClosed = errors.New("engine context closed")

	// ErrSequenceReleased is returned when a coordinate sequence is used after
	// it was released or consumed by a build.
	ErrSequenceReleased = errors.New("coordinate sequence released")
)

// EngineError carries a message reported by the engine's error handler.
//
// It matches ErrEngineOperationFailed and its Class with errors.Is.
type EngineError struct {
	Class   error
	Message string
}

func (e *EngineError) Error() string {
	class := e.Class
	if class == nil {
		class = ErrEngineOperationFailed
	}
	if e.Message == "" {
		return class.Error()
	}
	return fmt.Sprintf("%v: %s", class, e.Message)
}

func (e *EngineError) Unwrap() []error {
	if e.Class == nil {
		return []error{ErrEngineOperationFailed}
	}
	return []error{ErrEngineOperationFailed, e.Class}
}

// DispatchError reports which ufunc failed and at which output position.
// Index is the row-major position in the output, or -1 if the call failed
// before the loop started.
//
// The underlying error can be accessed via errors.Unwrap.
type DispatchError struct {
	Op    string
	Index int
	Err   error
}

func (e *DispatchError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: element %d: %v", e.Op, e.Index, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// Notice is a non-fatal diagnostic reported by the engine.
type Notice struct {
	// ContextID identifies the Context that received the notice.
	ContextID string
	// Op is the ufunc being dispatched, or empty outside a dispatch.
	Op      string
	Message string
}

func (n Notice) String() string {
	if n.Op == "" {
		return n.Message
	}
	return n.Op + ": " + n.Message
}

// TranslateError maps errors of the array runtime and the resource
// controller onto the public error taxonomy. Other errors are returned
// unchanged.
func TranslateError(err error) error {
	return translateError(err)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, array.ErrShapeMismatch) ||
		errors.Is(err, array.ErrCoreDimension) ||
		errors.Is(err, array.ErrInvalidSignature) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	if errors.Is(err, resource.ErrMemoryLimitExceeded) {
		return fmt.Errorf("%w: %w", ErrAllocationFailed, err)
	}

	return err
}
