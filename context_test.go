package geovec

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geovec/engine"
	"github.com/hupe1980/geovec/engine/planar"
)

func newTestContext(t *testing.T, opts ...Option) (*Context, *planar.Engine) {
	t.Helper()

	e := planar.New()
	ctx, err := Init(e, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx, e
}

func TestInitSingleActive(t *testing.T) {
	ctx, _ := newTestContext(t)

	active, err := Active()
	require.NoError(t, err)
	assert.Same(t, ctx, active)

	_, err = Init(planar.New())
	assert.ErrorIs(t, err, ErrContextActive)

	require.NoError(t, ctx.Close())
	assert.ErrorIs(t, ctx.Close(), ErrContextClosed)

	_, err = Active()
	assert.ErrorIs(t, err, ErrNoContext)

	next, err := Init(planar.New())
	require.NoError(t, err)
	assert.NotEqual(t, ctx.ID(), next.ID())
	require.NoError(t, next.Close())
}

func TestInitNilEngine(t *testing.T) {
	_, err := Init(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Active()
	assert.ErrorIs(t, err, ErrNoContext)
}

func TestBeginAfterClose(t *testing.T) {
	ctx, _ := newTestContext(t)
	require.NoError(t, ctx.Close())

	_, err := ctx.Begin("area")
	assert.ErrorIs(t, err, ErrContextClosed)
	assert.True(t, ctx.Closed())
}

func TestErrorBridge(t *testing.T) {
	ctx, e := newTestContext(t)

	call, err := ctx.Begin("get_x")
	require.NoError(t, err)

	var out float64
	require.Zero(t, e.X(0, &out))

	err = call.Failure(ErrEngineOperationFailed)
	var ee *EngineError
	require.ErrorAs(t, err, &ee)
	assert.ErrorIs(t, err, ErrEngineOperationFailed)
	assert.ErrorIs(t, err, ErrEngine)
	assert.Contains(t, ee.Message, "null geometry")

	// The raised state is consumed.
	assert.Same(t, ErrEmptyGeometry, call.Failure(ErrEmptyGeometry))
	assert.Same(t, ErrEngineOperationFailed, call.Failure(nil))
	call.End(1, err)
}

func TestErrorBridgeJoinsCause(t *testing.T) {
	ctx, e := newTestContext(t)

	call, err := ctx.Begin("envelope")
	require.NoError(t, err)
	e.TypeID(0)

	err = call.Failure(ErrInitializationFailed)
	assert.ErrorIs(t, err, ErrInitializationFailed)
	assert.ErrorIs(t, err, ErrEngine)
	call.End(0, err)
}

func TestBeginResetsBridge(t *testing.T) {
	ctx, e := newTestContext(t)

	e.TypeID(0) // raised outside any call

	call, err := ctx.Begin("area")
	require.NoError(t, err)
	assert.Same(t, ErrEngineOperationFailed, call.Failure(nil))
	call.End(0, nil)
}

func TestNotices(t *testing.T) {
	var got []Notice
	var logs bytes.Buffer
	metrics := &BasicMetricsCollector{}

	ctx, _ := newTestContext(t,
		WithNoticeHandler(func(n Notice) { got = append(got, n) }),
		WithLogger(NewLogger(slog.NewTextHandler(&logs, nil))),
		WithMetricsCollector(metrics),
	)

	shell, err := ctx.NewLinearRing([][]float64{{0, 0}, {1, 1}, {1, 0}, {0, 1}, {0, 0}})
	require.NoError(t, err)
	bowtie, err := ctx.NewPolygon(shell)
	require.NoError(t, err)

	call, err := ctx.Begin("is_valid")
	require.NoError(t, err)
	assert.Equal(t, engine.False, ctx.Engine().IsValid(bowtie.Ptr()))
	call.End(1, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "is_valid", got[0].Op)
	assert.Equal(t, ctx.ID(), got[0].ContextID)
	assert.Contains(t, got[0].Message, "Self-intersection")
	assert.Contains(t, logs.String(), "engine notice")
	assert.Equal(t, int64(1), metrics.GetStats().NoticeCount)
	assert.Equal(t, int64(1), metrics.GetStats().DispatchCount)
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, TranslateError(nil))

	plain := errors.New("plain")
	assert.Same(t, plain, TranslateError(plain))
}
