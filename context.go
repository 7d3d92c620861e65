package geovec

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/hupe1980/geovec/engine"
	"github.com/hupe1980/geovec/internal/resource"
)

// active is the process-wide engine context slot.
var active atomic.Pointer[Context]

// Context is an initialized engine session. At most one Context is active
// per process.
//
// A Context must not be used by two goroutines at once; geometries created
// through it may be garbage collected from any goroutine.
type Context struct {
	id        uuid.UUID
	eng       engine.Engine
	logger    *Logger
	metrics   MetricsCollector
	resources *resource.Controller
	onNotice  func(Notice)

	bridge    bridge
	graveyard graveyard
	closed    atomic.Bool
}

// Init activates a Context over e and registers the error and notice
// handlers. It fails with ErrContextActive if a Context is already active.
func Init(e engine.Engine, optFns ...Option) (*Context, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: nil engine", ErrInvalidArgument)
	}

	o := applyOptions(optFns)
	id := uuid.New()
	c := &Context{
		id:        id,
		eng:       e,
		logger:    o.logger.WithContextID(id.String()),
		metrics:   o.metricsCollector,
		resources: resource.NewController(resource.Config{MemoryLimitBytes: o.memoryLimit}),
		onNotice:  o.noticeHandler,
	}

	if !active.CompareAndSwap(nil, c) {
		return nil, ErrContextActive
	}

	e.SetErrorHandler(c.handleError, ErrEngine)
	e.SetNoticeHandler(c.handleNotice, nil)

	c.logger.LogInit(fmt.Sprintf("%T", e))
	return c, nil
}

// Active returns the active Context.
func Active() (*Context, error) {
	c := active.Load()
	if c == nil {
		return nil, ErrNoContext
	}
	return c, nil
}

// Close destroys pending unreachable geometries, finishes the engine
// session and frees the process-wide slot. Geometries still alive become
// unusable.
func (c *Context) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrContextClosed
	}

	n := c.collect()
	c.eng.Finish()
	active.CompareAndSwap(c, nil)

	c.logger.LogClose(n)
	return nil
}

// ID returns the context id used in logs and notices.
func (c *Context) ID() string { return c.id.String() }

// Engine returns the engine session.
func (c *Context) Engine() engine.Engine { return c.eng }

// Logger returns the context's logger.
func (c *Context) Logger() *Logger { return c.logger }

// Closed reports whether Close has been called.
func (c *Context) Closed() bool { return c.closed.Load() }

// MemoryUsage returns the bytes held by coordinate sequences being filled.
func (c *Context) MemoryUsage() int64 { return c.resources.MemoryUsage() }

// Collect destroys the pointers of geometries that were garbage collected
// without being released and returns how many it destroyed. Begin calls it
// at the start of every dispatch.
func (c *Context) Collect() int {
	if c.closed.Load() {
		return 0
	}
	return c.collect()
}

func (c *Context) collect() int {
	dead := c.graveyard.drain()
	for _, p := range dead {
		c.eng.Destroy(p)
		c.metrics.RecordHandle(HandleCollected)
	}
	c.logger.LogCollected(len(dead))
	return len(dead)
}

func (c *Context) handleError(message string, userdata any) {
	c.bridge.raise(message, userdata)
}

func (c *Context) handleNotice(message string, _ any) {
	n := Notice{ContextID: c.id.String(), Op: c.bridge.op, Message: message}
	c.logger.LogNotice(n)
	c.metrics.RecordNotice(n.Op)
	if c.onNotice != nil {
		c.onNotice(n)
	}
}
