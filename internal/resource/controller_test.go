package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilControllerIsNoop(t *testing.T) {
	var c *Controller

	assert.True(t, c.TryAcquireMemory(1<<30))
	c.ReleaseMemory(1 << 30)
	assert.Equal(t, int64(0), c.MemoryUsage())
	assert.NoError(t, c.AcquireUpload(context.Background()))
	c.ReleaseUpload()
	assert.True(t, c.TryAcquireIO(1<<30))
	assert.NoError(t, c.AcquireIO(context.Background(), 1<<30))
}

func TestMemoryLimit(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	assert.True(t, c.TryAcquireMemory(60))
	assert.True(t, c.TryAcquireMemory(40))
	assert.False(t, c.TryAcquireMemory(1))
	assert.Equal(t, int64(100), c.MemoryUsage())

	c.ReleaseMemory(40)
	assert.True(t, c.TryAcquireMemory(30))
	assert.Equal(t, int64(90), c.MemoryUsage())
}

func TestUploadSlots(t *testing.T) {
	c := NewController(Config{MaxUploadWorkers: 1})

	require.NoError(t, c.AcquireUpload(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.AcquireUpload(ctx), "second slot should block until timeout")

	c.ReleaseUpload()
	require.NoError(t, c.AcquireUpload(context.Background()))
	c.ReleaseUpload()
}

func TestIOLimiter(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1024})

	assert.True(t, c.TryAcquireIO(1024))
	assert.False(t, c.TryAcquireIO(1024), "bucket drained")
}
