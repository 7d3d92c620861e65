package geovec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geovec/engine"
)

func TestNeedsClosure(t *testing.T) {
	tests := []struct {
		name   string
		points [][]float64
		want   bool
	}{
		{"open", [][]float64{{0, 0}, {1, 0}, {1, 1}}, true},
		{"closed", [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 0}}, false},
		{"differs in z", [][]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 0, 1}}, true},
		{"single point", [][]float64{{5, 5}}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dims := 2
			if len(tt.points) > 0 {
				dims = len(tt.points[0])
			}
			at := func(i, d int) float64 { return tt.points[i][d] }
			assert.Equal(t, tt.want, NeedsClosure(len(tt.points), dims, at))
		})
	}
}

func TestLinearRingClosure(t *testing.T) {
	ctx, e := newTestContext(t)

	open, err := ctx.NewLinearRing([][]float64{{0, 0}, {1, 0}, {1, 1}})
	require.NoError(t, err)
	assert.Equal(t, 4, e.NumPoints(open.Ptr()), "one point appended")

	closed, err := ctx.NewLinearRing([][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 0}})
	require.NoError(t, err)
	assert.Equal(t, 4, e.NumPoints(closed.Ptr()), "closed input unchanged")

	empty, err := ctx.NewLinearRing(nil)
	require.NoError(t, err)
	assert.Equal(t, engine.True, e.IsEmpty(empty.Ptr()))
}

func TestCoordSeqSetFailureReleases(t *testing.T) {
	ctx, e := newTestContext(t, WithMemoryLimit(1024))

	s, err := ctx.NewCoordSeq(2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(32), ctx.MemoryUsage())
	assert.Equal(t, 2, s.Size())
	assert.Equal(t, 2, s.Dims())

	err = s.Set(5, 0, 1)
	assert.ErrorIs(t, err, ErrEngineOperationFailed)
	assert.Zero(t, e.LiveSequences())
	assert.Zero(t, ctx.MemoryUsage())

	assert.ErrorIs(t, s.Set(0, 0, 1), ErrSequenceReleased)
	_, err = s.Point()
	assert.ErrorIs(t, err, ErrSequenceReleased)
	s.Release()
}

func TestCoordSeqConsumedByBuild(t *testing.T) {
	ctx, e := newTestContext(t)

	s, err := ctx.NewCoordSeq(1, 2)
	require.NoError(t, err)
	require.NoError(t, s.Set(0, 0, 1))
	require.NoError(t, s.Set(0, 1, 2))

	g, err := s.Point()
	require.NoError(t, err)
	assert.Equal(t, engine.Point, g.TypeID())

	_, err = s.LineString()
	assert.ErrorIs(t, err, ErrSequenceReleased)
	s.Release()
	assert.Zero(t, e.LiveSequences())
	assert.Equal(t, 1, e.Live())
}

func TestCoordSeqMemoryLimit(t *testing.T) {
	ctx, e := newTestContext(t, WithMemoryLimit(64))

	_, err := ctx.NewCoordSeq(5, 2)
	assert.ErrorIs(t, err, ErrAllocationFailed)
	assert.Zero(t, e.LiveSequences())

	_, err = ctx.NewCoordSeq(-1, 2)
	assert.ErrorIs(t, err, ErrAllocationFailed)

	_, err = ctx.NewCoordSeq(1, 7)
	assert.ErrorIs(t, err, ErrAllocationFailed)
	assert.Zero(t, ctx.MemoryUsage())
}

func TestBuildGeometryFailureLeavesNothing(t *testing.T) {
	ctx, e := newTestContext(t)

	e.InjectFault("CoordSeqSetOrdinate", 3)
	_, err := ctx.NewLineString([][]float64{{0, 0}, {1, 1}, {2, 2}})
	assert.ErrorIs(t, err, ErrEngineOperationFailed)
	assert.Zero(t, e.LiveSequences())
	assert.Zero(t, e.Live())

	_, err = ctx.NewLineString([][]float64{{0, 0}})
	assert.ErrorIs(t, err, ErrEngineOperationFailed)
	assert.Zero(t, e.LiveSequences())

	_, err = ctx.NewLineString([][]float64{{0, 0}, {1}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewPolygon(t *testing.T) {
	ctx, e := newTestContext(t)

	shell, err := ctx.NewLinearRing([][]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	require.NoError(t, err)
	hole, err := ctx.NewLinearRing([][]float64{{2, 2}, {4, 2}, {4, 4}, {2, 4}})
	require.NoError(t, err)

	poly, err := ctx.NewPolygon(shell, hole)
	require.NoError(t, err)
	assert.Equal(t, engine.Polygon, poly.TypeID())
	assert.Equal(t, 1, e.NumInteriorRings(poly.Ptr()))
	assert.True(t, shell.IsUsable(), "inputs stay owned by the caller")
	assert.Equal(t, 3, e.Live())

	t.Run("empty hole releases clones", func(t *testing.T) {
		released, err := ctx.NewLinearRing([][]float64{{0, 0}, {1, 0}, {1, 1}})
		require.NoError(t, err)
		released.Release()

		_, err = ctx.NewPolygon(shell, hole, released)
		assert.ErrorIs(t, err, ErrEmptyGeometry)
		assert.Equal(t, 3, e.Live())
	})

	t.Run("engine rejection consumes clones", func(t *testing.T) {
		line, err := ctx.NewLineString([][]float64{{0, 0}, {1, 1}})
		require.NoError(t, err)

		_, err = ctx.NewPolygon(line, hole)
		assert.ErrorIs(t, err, ErrEngineOperationFailed)
		assert.Equal(t, 4, e.Live())
	})
}
