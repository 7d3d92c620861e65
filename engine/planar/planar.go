package planar

import (
	"fmt"
	"math"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/geovec/engine"
)

var _ engine.Engine = (*Engine)(nil)

type sequence struct {
	dims   int
	coords []coord
}

// Stats counts handle-table activity.
type Stats struct {
	GeometriesCreated   uint64
	GeometriesDestroyed uint64
	SequencesCreated    uint64
	SequencesDestroyed  uint64
	// UnknownDestroys counts Destroy and CoordSeqDestroy calls with a
	// pointer that is not live, i.e. double frees.
	UnknownDestroys uint64
}

// Engine is the pure Go engine.
//
// The handle table is guarded by a mutex so that Live and Stats may be read
// from any goroutine; the geometry operations themselves follow the
// engine.Engine contract and expect a single caller.
type Engine struct {
	mu       sync.Mutex
	next     uint32
	geoms    map[uint32]*geometry
	seqs     map[uint32]*sequence
	live     *roaring.Bitmap
	liveSeqs *roaring.Bitmap
	faults   map[string]int
	stats    Stats
	finished bool

	onError    engine.MessageHandler
	errorData  any
	onNotice   engine.MessageHandler
	noticeData any
}

// New returns a planar engine session.
func New() *Engine {
	return &Engine{
		geoms:    make(map[uint32]*geometry),
		seqs:     make(map[uint32]*sequence),
		live:     roaring.New(),
		liveSeqs: roaring.New(),
		faults:   make(map[string]int),
	}
}

// SetErrorHandler implements engine.Engine.
func (e *Engine) SetErrorHandler(h engine.MessageHandler, userdata any) {
	e.onError, e.errorData = h, userdata
}

// SetNoticeHandler implements engine.Engine.
func (e *Engine) SetNoticeHandler(h engine.MessageHandler, userdata any) {
	e.onNotice, e.noticeData = h, userdata
}

// Finish implements engine.Engine. Every live geometry and sequence is
// dropped.
func (e *Engine) Finish() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.finished = true
	clear(e.geoms)
	clear(e.seqs)
	e.live.Clear()
	e.liveSeqs.Clear()
}

// Live returns the number of geometries that have not been destroyed.
func (e *Engine) Live() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return int(e.live.GetCardinality())
}

// LiveSequences returns the number of coordinate sequences that have been
// neither destroyed nor consumed by a builder.
func (e *Engine) LiveSequences() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return int(e.liveSeqs.GetCardinality())
}

// LiveIDs returns the ids of the live geometries in ascending order.
func (e *Engine) LiveIDs() []uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.live.ToArray()
}

// Stats returns a snapshot of the handle-table counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.stats
}

// InjectFault makes method fail once after it has succeeded `after` more
// times. method is the engine.Engine method name, e.g. "Centroid".
func (e *Engine) InjectFault(method string, after int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.faults[method] = after
}

func (e *Engine) tripped(method string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, ok := e.faults[method]
	if !ok {
		return false
	}
	if n > 0 {
		e.faults[method] = n - 1
		return false
	}
	delete(e.faults, method)
	return true
}

func (e *Engine) raise(format string, args ...any) {
	if e.onError != nil {
		e.onError(fmt.Sprintf(format, args...), e.errorData)
	}
}

func (e *Engine) notice(format string, args ...any) {
	if e.onNotice != nil {
		e.onNotice(fmt.Sprintf(format, args...), e.noticeData)
	}
}

func fmtLocation(msg string, c coord) string {
	return fmt.Sprintf("%s[%v %v]", msg, c.x, c.y)
}

func (e *Engine) put(g *geometry) engine.Geom {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.next++
	id := e.next
	e.geoms[id] = g
	e.live.Add(id)
	e.stats.GeometriesCreated++
	return engine.Geom(id)
}

// enter checks the fault table and the session state for method.
func (e *Engine) enter(method string) bool {
	if e.tripped(method) {
		e.raise("%s: injected fault", method)
		return false
	}
	e.mu.Lock()
	finished := e.finished
	e.mu.Unlock()
	if finished {
		e.raise("%s: engine session finished", method)
		return false
	}
	return true
}

func (e *Engine) get(method string, g engine.Geom) (*geometry, bool) {
	if g == 0 {
		e.raise("%s: null geometry", method)
		return nil, false
	}
	e.mu.Lock()
	x, ok := e.geoms[uint32(g)]
	e.mu.Unlock()
	if !ok {
		e.raise("%s: unknown geometry %#x", method, uintptr(g))
		return nil, false
	}
	return x, true
}

// lookup resolves one operand of method.
func (e *Engine) lookup(method string, g engine.Geom) (*geometry, bool) {
	if !e.enter(method) {
		return nil, false
	}
	return e.get(method, g)
}

// lookup2 resolves both operands of a binary method.
func (e *Engine) lookup2(method string, a, b engine.Geom) (*geometry, *geometry, bool) {
	if !e.enter(method) {
		return nil, nil, false
	}
	x, ok := e.get(method, a)
	if !ok {
		return nil, nil, false
	}
	y, ok := e.get(method, b)
	if !ok {
		return nil, nil, false
	}
	return x, y, true
}

// take removes a geometry from the table and returns it.
func (e *Engine) take(g engine.Geom) (*geometry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	x, ok := e.geoms[uint32(g)]
	if !ok {
		return nil, false
	}
	delete(e.geoms, uint32(g))
	e.live.Remove(uint32(g))
	e.stats.GeometriesDestroyed++
	return x, true
}

// fail reports an error returned by the geometry library the way GEOS
// reports a failed overlay.
func (e *Engine) fail(method string, err error) {
	e.raise("TopologyException: %s: %v", method, err)
}

// Clone implements engine.Engine.
func (e *Engine) Clone(g engine.Geom) engine.Geom {
	x, ok := e.lookup("Clone", g)
	if !ok {
		return 0
	}
	return e.put(x.clone())
}

// Destroy implements engine.Engine.
func (e *Engine) Destroy(g engine.Geom) {
	if g == 0 {
		return
	}
	if _, ok := e.take(g); !ok {
		e.mu.Lock()
		e.stats.UnknownDestroys++
		e.mu.Unlock()
	}
}

// TypeID implements engine.Engine.
func (e *Engine) TypeID(g engine.Geom) int {
	x, ok := e.lookup("TypeID", g)
	if !ok {
		return -1
	}
	return int(x.kind)
}

// HasZ implements engine.Engine.
func (e *Engine) HasZ(g engine.Geom) int8 {
	x, ok := e.lookup("HasZ", g)
	if !ok {
		return engine.Exception
	}
	if x.isEmpty() {
		return engine.False
	}
	return boolean(x.dims == 3)
}

// CoordSeqCreate implements engine.Engine. dims must be 2 or 3.
func (e *Engine) CoordSeqCreate(size, dims int) engine.CoordSeq {
	if !e.enter("CoordSeqCreate") {
		return 0
	}
	if size < 0 {
		e.raise("CoordSeqCreate: negative size %d", size)
		return 0
	}
	if dims < 2 || dims > 3 {
		e.raise("CoordSeqCreate: unsupported dimension %d", dims)
		return 0
	}
	s := &sequence{dims: dims, coords: make([]coord, size)}
	if dims == 2 {
		for i := range s.coords {
			s.coords[i].z = math.NaN()
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.next++
	id := e.next
	e.seqs[id] = s
	e.liveSeqs.Add(id)
	e.stats.SequencesCreated++
	return engine.CoordSeq(id)
}

// CoordSeqSetOrdinate implements engine.Engine.
func (e *Engine) CoordSeqSetOrdinate(s engine.CoordSeq, idx, dim int, v float64) int {
	if !e.enter("CoordSeqSetOrdinate") {
		return 0
	}
	e.mu.Lock()
	seq, ok := e.seqs[uint32(s)]
	e.mu.Unlock()
	if !ok {
		e.raise("CoordSeqSetOrdinate: unknown sequence %#x", uintptr(s))
		return 0
	}
	if idx < 0 || idx >= len(seq.coords) {
		e.raise("CoordSeqSetOrdinate: index %d out of range [0, %d)", idx, len(seq.coords))
		return 0
	}
	switch dim {
	case 0:
		seq.coords[idx].x = v
	case 1:
		seq.coords[idx].y = v
	case 2:
		if seq.dims < 3 {
			e.raise("CoordSeqSetOrdinate: dimension %d out of range for %dD sequence", dim, seq.dims)
			return 0
		}
		seq.coords[idx].z = v
	default:
		e.raise("CoordSeqSetOrdinate: dimension %d out of range for %dD sequence", dim, seq.dims)
		return 0
	}
	return 1
}

// CoordSeqDestroy implements engine.Engine.
func (e *Engine) CoordSeqDestroy(s engine.CoordSeq) {
	if s == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.seqs[uint32(s)]; !ok {
		e.stats.UnknownDestroys++
		return
	}
	delete(e.seqs, uint32(s))
	e.liveSeqs.Remove(uint32(s))
	e.stats.SequencesDestroyed++
}

// consume removes a sequence from the table on behalf of a builder.
func (e *Engine) consume(method string, s engine.CoordSeq) (*sequence, bool) {
	if !e.enter(method) {
		e.CoordSeqDestroy(s)
		return nil, false
	}
	e.mu.Lock()
	seq, ok := e.seqs[uint32(s)]
	if ok {
		delete(e.seqs, uint32(s))
		e.liveSeqs.Remove(uint32(s))
		e.stats.SequencesDestroyed++
	}
	e.mu.Unlock()
	if !ok {
		e.raise("%s: unknown sequence %#x", method, uintptr(s))
		return nil, false
	}
	return seq, true
}

// CreatePoint implements engine.Engine.
func (e *Engine) CreatePoint(s engine.CoordSeq) engine.Geom {
	seq, ok := e.consume("CreatePoint", s)
	if !ok {
		return 0
	}
	if len(seq.coords) > 1 {
		e.raise("IllegalArgumentException: Point coordinate list must contain a single element")
		return 0
	}
	return e.put(&geometry{kind: engine.Point, dims: seq.dims, coords: seq.coords})
}

// CreateLineString implements engine.Engine.
func (e *Engine) CreateLineString(s engine.CoordSeq) engine.Geom {
	seq, ok := e.consume("CreateLineString", s)
	if !ok {
		return 0
	}
	if len(seq.coords) == 1 {
		e.raise("IllegalArgumentException: point array must contain 0 or >1 elements")
		return 0
	}
	return e.put(&geometry{kind: engine.LineString, dims: seq.dims, coords: seq.coords})
}

// CreateLinearRing implements engine.Engine.
func (e *Engine) CreateLinearRing(s engine.CoordSeq) engine.Geom {
	seq, ok := e.consume("CreateLinearRing", s)
	if !ok {
		return 0
	}
	n := len(seq.coords)
	if n > 0 && n < 4 {
		e.raise("IllegalArgumentException: Invalid number of points in LinearRing found %d - must be 0 or >= 4", n)
		return 0
	}
	if n > 0 && !seq.coords[0].equals2D(seq.coords[n-1]) {
		e.raise("IllegalArgumentException: Points of LinearRing do not form a closed linestring")
		return 0
	}
	return e.put(&geometry{kind: engine.LinearRing, dims: seq.dims, coords: seq.coords})
}

// CreatePolygon implements engine.Engine. shell and holes are consumed.
func (e *Engine) CreatePolygon(shell engine.Geom, holes []engine.Geom) engine.Geom {
	destroyAll := func() {
		e.Destroy(shell)
		for _, h := range holes {
			e.Destroy(h)
		}
	}
	if !e.enter("CreatePolygon") {
		destroyAll()
		return 0
	}
	rings := make([]*geometry, 0, 1+len(holes))
	for i, g := range append([]engine.Geom{shell}, holes...) {
		x, ok := e.get("CreatePolygon", g)
		if !ok {
			destroyAll()
			return 0
		}
		if x.kind != engine.LinearRing {
			if i == 0 {
				e.raise("IllegalArgumentException: shell is not a LinearRing")
			} else {
				e.raise("IllegalArgumentException: hole %d is not a LinearRing", i-1)
			}
			destroyAll()
			return 0
		}
		rings = append(rings, x)
	}
	if rings[0].isEmpty() && len(rings) > 1 {
		e.raise("IllegalArgumentException: shell is empty but holes are not")
		destroyAll()
		return 0
	}
	dims := rings[0].dims
	for _, g := range append([]engine.Geom{shell}, holes...) {
		e.take(g)
	}
	poly := &geometry{kind: engine.Polygon, dims: dims}
	if !rings[0].isEmpty() {
		poly.parts = rings
	}
	return e.put(poly)
}

func boolean(b bool) int8 {
	if b {
		return engine.True
	}
	return engine.False
}
