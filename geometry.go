package geovec

import (
	"fmt"
	"runtime"

	"github.com/hupe1980/geovec/engine"
)

// Geometry owns one engine geometry pointer.
//
// The type id and Z flag are read once at construction. Release destroys
// the pointer exactly once; a Geometry that is garbage collected without
// being released hands its pointer back to its Context, which destroys it
// on the next dispatch. A released Geometry is empty, and every operation
// on it fails with ErrEmptyGeometry.
type Geometry struct {
	ctx     *Context
	ptr     engine.Geom
	typeID  engine.TypeID
	hasZ    bool
	cleanup runtime.Cleanup
}

type orphan struct {
	ctx *Context
	ptr engine.Geom
}

func bury(o orphan) {
	if !o.ctx.closed.Load() {
		o.ctx.graveyard.push(o.ptr)
	}
}

// NewGeometry takes ownership of ptr. A null pointer fails with
// ErrEngineOperationFailed. If the type id is outside 0..255 or the Z flag
// is not 0 or 1, ptr is destroyed and ErrInitializationFailed returned.
func (c *Context) NewGeometry(ptr engine.Geom) (*Geometry, error) {
	if ptr == 0 {
		return nil, ErrEngineOperationFailed
	}

	c.bridge.reset(c.bridge.op)
	typ := c.eng.TypeID(ptr)
	if typ < 0 || typ > 255 {
		return nil, c.rejectPtr(ptr, fmt.Sprintf("type id %d", typ))
	}
	z := c.eng.HasZ(ptr)
	if z != engine.False && z != engine.True {
		return nil, c.rejectPtr(ptr, fmt.Sprintf("has_z returned %d", z))
	}

	g := &Geometry{
		ctx:    c,
		ptr:    ptr,
		typeID: engine.TypeID(typ),
		hasZ:   z == engine.True,
	}
	g.cleanup = runtime.AddCleanup(g, bury, orphan{ctx: c, ptr: ptr})
	c.metrics.RecordHandle(HandleCreated)
	return g, nil
}

// rejectPtr destroys a pointer whose metadata could not be read, carrying
// the engine message if one was raised.
func (c *Context) rejectPtr(ptr engine.Geom, what string) error {
	e := c.bridge.take()
	c.eng.Destroy(ptr)
	if e != nil {
		return fmt.Errorf("%w: %s: %w", ErrInitializationFailed, what, e)
	}
	return fmt.Errorf("%w: %s", ErrInitializationFailed, what)
}

// GeometryFromRaw wraps a clone of a pointer owned by someone else. raw
// may be an engine.Geom, uintptr, int, int64 or uint64. The caller's
// pointer is never adopted.
func (c *Context) GeometryFromRaw(raw any) (*Geometry, error) {
	var ptr engine.Geom
	switch v := raw.(type) {
	case engine.Geom:
		ptr = v
	case uintptr:
		ptr = engine.Geom(v)
	case int:
		ptr = engine.Geom(v)
	case int64:
		ptr = engine.Geom(v)
	case uint64:
		ptr = engine.Geom(v)
	default:
		return nil, fmt.Errorf("%w: cannot use %T as a geometry pointer", ErrInvalidArgument, raw)
	}
	if ptr == 0 {
		return nil, fmt.Errorf("%w: null geometry pointer", ErrInvalidArgument)
	}

	c.bridge.reset("")
	clone := c.eng.Clone(ptr)
	if clone == 0 {
		if e := c.bridge.take(); e != nil {
			return nil, fmt.Errorf("%w: clone failed: %w", ErrInvalidArgument, e)
		}
		return nil, fmt.Errorf("%w: clone failed", ErrInvalidArgument)
	}
	return c.NewGeometry(clone)
}

// AsGeometry returns v as a usable Geometry of c. Values that are not a
// *Geometry fail with ErrTypeError; released or nil handles fail with
// ErrEmptyGeometry.
func (c *Context) AsGeometry(v any) (*Geometry, error) {
	g, ok := v.(*Geometry)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrTypeError, v)
	}
	if !g.IsUsable() {
		return nil, ErrEmptyGeometry
	}
	if g.ctx != c {
		return nil, fmt.Errorf("%w: geometry belongs to another context", ErrInvalidArgument)
	}
	return g, nil
}

// IsUsable reports whether g holds a live pointer.
func (g *Geometry) IsUsable() bool {
	return g != nil && g.ptr != 0 && !g.ctx.closed.Load()
}

// Release destroys the pointer. Later calls, and calls on nil, do nothing.
func (g *Geometry) Release() {
	if g == nil || g.ptr == 0 {
		return
	}
	g.cleanup.Stop()
	if !g.ctx.closed.Load() {
		g.ctx.eng.Destroy(g.ptr)
		g.ctx.metrics.RecordHandle(HandleReleased)
	}
	g.ptr = 0
}

// Ptr returns the engine pointer, or 0 once released. The pointer stays
// owned by g.
func (g *Geometry) Ptr() engine.Geom {
	if g == nil {
		return 0
	}
	return g.ptr
}

// TypeID returns the geometry type recorded at construction.
func (g *Geometry) TypeID() engine.TypeID { return g.typeID }

// HasZ reports whether the geometry has Z coordinates.
func (g *Geometry) HasZ() bool { return g.hasZ }

// Context returns the owning Context.
func (g *Geometry) Context() *Context { return g.ctx }

func (g *Geometry) String() string {
	if !g.IsUsable() {
		return "<Geometry empty>"
	}
	if g.hasZ {
		return fmt.Sprintf("<Geometry %s Z>", g.typeID)
	}
	return fmt.Sprintf("<Geometry %s>", g.typeID)
}
