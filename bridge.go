package geovec

import (
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/geovec/engine"
)

type bridgeState uint8

const (
	stateIdle bridgeState = iota
	stateErrorRaised
)

// bridge turns engine handler callbacks into Go errors. It is reset at the
// start of every dispatch; the first failure sentinel of the call consumes
// the raised state.
type bridge struct {
	state   bridgeState
	pending *EngineError
	op      string
}

func (b *bridge) reset(op string) {
	b.state = stateIdle
	b.pending = nil
	b.op = op
}

// raise records an engine error. A later message replaces an earlier one.
func (b *bridge) raise(message string, userdata any) {
	class, _ := userdata.(error)
	if class == nil {
		class = ErrEngine
	}
	b.state = stateErrorRaised
	b.pending = &EngineError{Class: class, Message: message}
}

func (b *bridge) take() *EngineError {
	if b.state != stateErrorRaised {
		return nil
	}
	e := b.pending
	b.state = stateIdle
	b.pending = nil
	return e
}

// graveyard holds pointers of geometries that became unreachable. Cleanups
// run on a runtime goroutine and must not call the engine, so they only
// push here; the dispatching goroutine destroys the pointers.
type graveyard struct {
	mu    sync.Mutex
	geoms []engine.Geom
}

func (g *graveyard) push(p engine.Geom) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.geoms = append(g.geoms, p)
}

func (g *graveyard) drain() []engine.Geom {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := g.geoms
	g.geoms = nil
	return out
}

// Call is one dispatch against a Context. It is created by Begin and
// finished by End.
type Call struct {
	ctx   *Context
	op    string
	start time.Time
}

// Begin starts a dispatch of op: unreachable geometries are destroyed and
// the error bridge is reset.
func (c *Context) Begin(op string) (*Call, error) {
	if c.closed.Load() {
		return nil, ErrContextClosed
	}
	c.Collect()
	c.bridge.reset(op)
	return &Call{ctx: c, op: op, start: time.Now()}, nil
}

// Op returns the name of the dispatched operation.
func (call *Call) Op() string { return call.op }

// Failure consumes the bridge state and returns the error for a failed
// engine call. A pending engine message takes precedence over a generic
// ErrEngineOperationFailed cause and is joined to any other cause.
func (call *Call) Failure(cause error) error {
	pending := call.ctx.bridge.take()
	switch {
	case pending == nil && cause == nil:
		return ErrEngineOperationFailed
	case pending == nil:
		return cause
	case cause == nil || cause == ErrEngineOperationFailed:
		return pending
	default:
		return fmt.Errorf("%w: %w", cause, pending)
	}
}

// End records metrics and logs for the call. elements is the number of
// output positions and err the call's result.
func (call *Call) End(elements int, err error) {
	d := time.Since(call.start)
	call.ctx.metrics.RecordDispatch(call.op, elements, d, err)
	call.ctx.logger.LogDispatch(call.op, elements, d, err)
	call.ctx.bridge.reset("")
}
