package testutil

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geovec"
	"github.com/hupe1980/geovec/array"
	"github.com/hupe1980/geovec/engine/planar"
)

// RNG draws reproducible coordinates from a fixed seed. It is safe for
// concurrent use.
type RNG struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewRNG returns an RNG seeded with seed.
func NewRNG(seed int64) *RNG {
	return &RNG{rand: rand.New(rand.NewSource(seed))}
}

// Points generates num points of dims ordinates in [-scale, scale).
// Uses a single backing array for efficiency.
func (r *RNG) Points(num, dims int, scale float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dims)
	points := make([][]float64, num)
	for i := range num {
		p := data[i*dims : (i+1)*dims]
		for j := range p {
			p[j] = (r.rand.Float64()*2 - 1) * scale
		}
		points[i] = p
	}
	return points
}

// Ring generates an open, counter-clockwise ring of n vertices around
// (cx, cy). Radii vary in [radius/2, radius) so rings are star-shaped and
// never self-intersect.
func (r *RNG) Ring(n int, cx, cy, radius float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	ring := make([][]float64, n)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / float64(n)
		d := radius * (0.5 + r.rand.Float64()/2)
		ring[i] = []float64{cx + d*math.Cos(a), cy + d*math.Sin(a)}
	}
	return ring
}

// NewContext initializes a Context over a fresh planar engine and closes
// it when the test ends.
func NewContext(tb testing.TB, opts ...geovec.Option) (*geovec.Context, *planar.Engine) {
	tb.Helper()

	e := planar.New()
	ctx, err := geovec.Init(e, opts...)
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = ctx.Close() })
	return ctx, e
}

// AssertLive asserts that the engine holds exactly want geometries.
func AssertLive(tb testing.TB, e *planar.Engine, want int, msgAndArgs ...any) bool {
	tb.Helper()
	return assert.Equal(tb, want, e.Live(), msgAndArgs...)
}

// Release releases every geometry of a.
func Release(a *array.Array[*geovec.Geometry]) {
	if a == nil {
		return
	}
	for _, g := range a.Values() {
		g.Release()
	}
}
