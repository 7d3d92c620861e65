package resource

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	require.NoError(t, c.AcquireMemory(50))
	assert.Equal(t, int64(50), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(40))
	assert.Equal(t, int64(90), c.MemoryUsage())

	// Over the limit: nothing is acquired.
	err := c.AcquireMemory(20)
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)
	assert.Equal(t, int64(90), c.MemoryUsage())

	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(20))
	assert.Equal(t, int64(60), c.MemoryUsage())
	assert.Equal(t, int64(90), c.PeakMemoryUsage())
	assert.Equal(t, int64(100), c.MemoryLimit())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireMemory(1000))
	assert.Equal(t, int64(1000), c.MemoryUsage())

	c.ReleaseMemory(500)
	assert.Equal(t, int64(500), c.MemoryUsage())
	assert.Zero(t, c.MemoryLimit())
}

func TestController_NilSafe(t *testing.T) {
	var c *Controller

	require.NoError(t, c.AcquireMemory(1<<40))
	c.ReleaseMemory(1 << 40)
	assert.Zero(t, c.MemoryUsage())

	r, err := c.Reserve(10)
	require.NoError(t, err)
	r.Release()
}

func TestReservation(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 64})

	r, err := c.Reserve(48)
	require.NoError(t, err)
	assert.Equal(t, int64(48), r.Bytes())

	_, err = c.Reserve(32)
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)

	r.Release()
	r.Release()
	assert.Zero(t, c.MemoryUsage())
	assert.Zero(t, r.Bytes())

	_, err = c.Reserve(64)
	require.NoError(t, err)
}

func TestController_ConcurrentReservations(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 1 << 20})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r, err := c.Reserve(1024)
				if err == nil {
					r.Release()
				}
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, c.MemoryUsage())
	assert.LessOrEqual(t, c.PeakMemoryUsage(), int64(16*1024))
}
