//go:build geos && cgo

package geos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geovec/engine"
)

func newEngine(t *testing.T) (*Engine, *[]string) {
	t.Helper()
	e, err := New()
	require.NoError(t, err)
	t.Cleanup(e.Finish)

	var errs []string
	e.SetErrorHandler(func(msg string, _ any) { errs = append(errs, msg) }, nil)
	return e, &errs
}

func point(t *testing.T, e *Engine, x, y float64) engine.Geom {
	t.Helper()
	s := e.CoordSeqCreate(1, 2)
	require.NotZero(t, s)
	require.Equal(t, 1, e.CoordSeqSetOrdinate(s, 0, 0, x))
	require.Equal(t, 1, e.CoordSeqSetOrdinate(s, 0, 1, y))
	g := e.CreatePoint(s)
	require.NotZero(t, g)
	return g
}

func TestPointMeasures(t *testing.T) {
	e, _ := newEngine(t)

	a, b := point(t, e, 0, 0), point(t, e, 3, 4)
	defer e.Destroy(a)
	defer e.Destroy(b)

	var d float64
	require.Equal(t, 1, e.Distance(a, b, &d))
	assert.InDelta(t, 5.0, d, 1e-12)
	assert.Equal(t, int(engine.Point), e.TypeID(a))
	assert.Equal(t, engine.False, e.HasZ(a))
	assert.Equal(t, engine.False, e.Equals(a, b))
}

func TestErrorHandler(t *testing.T) {
	e, errs := newEngine(t)

	s := e.CoordSeqCreate(1, 2)
	line := e.CreateLineString(s)
	assert.Zero(t, line)
	assert.NotEmpty(t, *errs)
}

func TestBorrowedResultsAreCloned(t *testing.T) {
	e, _ := newEngine(t)

	s := e.CoordSeqCreate(4, 2)
	for i, c := range [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 0}} {
		e.CoordSeqSetOrdinate(s, i, 0, c[0])
		e.CoordSeqSetOrdinate(s, i, 1, c[1])
	}
	shell := e.CreateLinearRing(s)
	poly := e.CreatePolygon(shell, nil)
	require.NotZero(t, poly)

	ring := e.ExteriorRing(poly)
	require.NotZero(t, ring)
	e.Destroy(poly)
	assert.Equal(t, 4, e.NumPoints(ring), "ring outlives its parent")
	e.Destroy(ring)
}
