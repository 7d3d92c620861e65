package geovec

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geovec/engine"
)

func TestNewGeometryMetadata(t *testing.T) {
	ctx, e := newTestContext(t)

	tests := []struct {
		name  string
		build func() (*Geometry, error)
		typ   engine.TypeID
		hasZ  bool
	}{
		{"point", func() (*Geometry, error) { return ctx.NewPoint(1, 2) }, engine.Point, false},
		{"point z", func() (*Geometry, error) { return ctx.NewPoint(1, 2, 3) }, engine.Point, true},
		{"empty point", func() (*Geometry, error) { return ctx.NewPoint() }, engine.Point, false},
		{"linestring", func() (*Geometry, error) {
			return ctx.NewLineString([][]float64{{0, 0}, {1, 1}})
		}, engine.LineString, false},
		{"linearring", func() (*Geometry, error) {
			return ctx.NewLinearRing([][]float64{{0, 0}, {1, 0}, {1, 1}})
		}, engine.LinearRing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := tt.build()
			require.NoError(t, err)
			defer g.Release()

			assert.Equal(t, tt.typ, g.TypeID())
			assert.Equal(t, tt.hasZ, g.HasZ())
			assert.Equal(t, int(g.TypeID()), e.TypeID(g.Ptr()))
			assert.Equal(t, boolInt8(g.HasZ()), e.HasZ(g.Ptr()))
			assert.Same(t, ctx, g.Context())
		})
	}
}

func boolInt8(b bool) int8 {
	if b {
		return engine.True
	}
	return engine.False
}

func TestNewGeometryNull(t *testing.T) {
	ctx, _ := newTestContext(t)

	_, err := ctx.NewGeometry(0)
	assert.ErrorIs(t, err, ErrEngineOperationFailed)
}

func TestNewGeometryInitFailure(t *testing.T) {
	ctx, e := newTestContext(t)

	p, err := ctx.NewPoint(0, 0)
	require.NoError(t, err)
	raw := e.Clone(p.Ptr())
	require.Equal(t, 2, e.Live())

	e.InjectFault("HasZ", 0)
	_, err = ctx.NewGeometry(raw)
	assert.ErrorIs(t, err, ErrInitializationFailed)
	assert.Equal(t, 1, e.Live(), "pointer is destroyed when construction fails")
}

func TestNewGeometryInitFailureMessage(t *testing.T) {
	tests := []struct {
		name   string
		method string
		want   string
	}{
		{"type id", "TypeID", "TypeID: injected fault"},
		{"has z", "HasZ", "HasZ: injected fault"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, e := newTestContext(t)

			p, err := ctx.NewPoint(0, 0)
			require.NoError(t, err)
			raw := e.Clone(p.Ptr())

			e.InjectFault(tt.method, 0)
			_, err = ctx.NewGeometry(raw)
			require.ErrorIs(t, err, ErrInitializationFailed)
			assert.Contains(t, err.Error(), tt.want)

			var ee *EngineError
			assert.ErrorAs(t, err, &ee)
			assert.Equal(t, 1, e.Live())

			// the message is consumed, not left for the next call
			q, err := ctx.NewPoint(1, 1)
			require.NoError(t, err)
			q.Release()
		})
	}
}

func TestReleaseIdempotent(t *testing.T) {
	ctx, e := newTestContext(t)

	g, err := ctx.NewPoint(1, 1)
	require.NoError(t, err)
	assert.True(t, g.IsUsable())

	g.Release()
	assert.False(t, g.IsUsable())
	assert.Zero(t, g.Ptr())
	assert.Zero(t, e.Live())

	g.Release()
	assert.Zero(t, e.Stats().UnknownDestroys, "second release does not reach the engine")

	var nilGeom *Geometry
	nilGeom.Release()
	assert.False(t, nilGeom.IsUsable())
	assert.Equal(t, "<Geometry empty>", g.String())
}

func TestGeometryFromRaw(t *testing.T) {
	ctx, e := newTestContext(t)

	src, err := ctx.NewPoint(3, 4)
	require.NoError(t, err)

	for _, raw := range []any{src.Ptr(), uintptr(src.Ptr()), int(src.Ptr()), int64(src.Ptr()), uint64(src.Ptr())} {
		g, err := ctx.GeometryFromRaw(raw)
		require.NoError(t, err)
		assert.NotEqual(t, src.Ptr(), g.Ptr(), "raw pointers are cloned")
		assert.Equal(t, engine.True, e.EqualsExact(src.Ptr(), g.Ptr(), 0))
		g.Release()
	}

	_, err = ctx.GeometryFromRaw("0x1")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ctx.GeometryFromRaw(uintptr(0))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ctx.GeometryFromRaw(uintptr(999999))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, err, ErrEngine)

	assert.Equal(t, 1, e.Live())
}

func TestAsGeometry(t *testing.T) {
	ctx, _ := newTestContext(t)

	g, err := ctx.NewPoint(0, 0)
	require.NoError(t, err)

	got, err := ctx.AsGeometry(g)
	require.NoError(t, err)
	assert.Same(t, g, got)

	_, err = ctx.AsGeometry(1.5)
	assert.ErrorIs(t, err, ErrTypeError)
	_, err = ctx.AsGeometry(nil)
	assert.ErrorIs(t, err, ErrTypeError)

	var typedNil *Geometry
	_, err = ctx.AsGeometry(typedNil)
	assert.ErrorIs(t, err, ErrEmptyGeometry)

	g.Release()
	_, err = ctx.AsGeometry(g)
	assert.ErrorIs(t, err, ErrEmptyGeometry)
}

func TestGarbageCollectedGeometries(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	ctx, e := newTestContext(t, WithMetricsCollector(metrics))

	func() {
		for i := 0; i < 8; i++ {
			_, err := ctx.NewPoint(float64(i), 0)
			require.NoError(t, err)
		}
	}()
	require.Equal(t, 8, e.Live())

	require.Eventually(t, func() bool {
		runtime.GC()
		ctx.Collect()
		return e.Live() == 0
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, int64(8), metrics.GetStats().HandlesCollected)
	assert.Zero(t, metrics.GetStats().LiveHandles)
}

func TestCloseInvalidatesGeometries(t *testing.T) {
	ctx, _ := newTestContext(t)

	g, err := ctx.NewPoint(0, 0)
	require.NoError(t, err)
	require.NoError(t, ctx.Close())

	assert.False(t, g.IsUsable())
	g.Release()
}
