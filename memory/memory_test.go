package memory

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocAligned(t *testing.T) {
	sizes := []int{1, 10, 63, 64, 65, 100, 1024}

	for _, size := range sizes {
		buf := AllocAligned(size)
		assert.Len(t, buf, size)

		addr := uintptr(unsafe.Pointer(&buf[0]))
		assert.Equal(t, uintptr(0), addr%Alignment, "Address %d should be aligned to %d for size %d", addr, Alignment, size)
	}

	assert.Nil(t, AllocAligned(0))
	assert.Nil(t, AllocAligned(-1))
}

func TestBuffer(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	buf := NewBuffer(data)

	assert.Equal(t, 4, buf.Len())
	assert.Equal(t, data, buf.Bytes())
	// Bytes aliases, never copies.
	assert.Equal(t, unsafe.Pointer(unsafe.SliceData(data)), unsafe.Pointer(unsafe.SliceData(buf.Bytes())))
}

func TestNewAlignedBuffer(t *testing.T) {
	buf := NewAlignedBuffer(128)
	require.Equal(t, 128, buf.Len())

	addr := uintptr(unsafe.Pointer(&buf.Bytes()[0]))
	assert.Equal(t, uintptr(0), addr%Alignment)
}

func TestNewBitmap(t *testing.T) {
	buf := NewBuffer([]byte{0b00000101})

	bm, err := NewBitmap(buf, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, bm.Len())
	assert.True(t, bm.IsSet(0))
	assert.False(t, bm.IsSet(1))
	assert.True(t, bm.IsSet(2))
	assert.Equal(t, 2, bm.SetCount(0, 8))
	assert.Same(t, buf, bm.Buffer())

	_, err = NewBitmap(buf, 9)
	assert.Error(t, err)
	_, err = NewBitmap(buf, -1)
	assert.Error(t, err)
}

func TestBitmapBuilder(t *testing.T) {
	var b BitmapBuilder
	for _, valid := range []bool{true, false, true, true, false} {
		b.Append(valid)
	}

	assert.Equal(t, 5, b.Len())
	assert.Equal(t, 2, b.Nulls())

	bm := b.Finish()
	require.NotNil(t, bm)
	assert.Equal(t, 5, bm.Len())
	assert.True(t, bm.IsSet(0))
	assert.False(t, bm.IsSet(1))
	assert.True(t, bm.IsSet(2))
	assert.True(t, bm.IsSet(3))
	assert.False(t, bm.IsSet(4))
	assert.Equal(t, 3, bm.SetCount(0, 5))
}

func TestBitmapBuilderNoNulls(t *testing.T) {
	var b BitmapBuilder
	for i := 0; i < 10; i++ {
		b.Append(true)
	}

	// All-valid chunks carry no bitmap at all.
	assert.Nil(t, b.Finish())
}

func TestBitmapBuilderCrossesByteBoundary(t *testing.T) {
	var b BitmapBuilder
	for i := 0; i < 20; i++ {
		b.Append(i != 13)
	}

	bm := b.Finish()
	require.NotNil(t, bm)
	assert.Equal(t, 20, bm.Len())
	assert.False(t, bm.IsSet(13))
	assert.Equal(t, 19, bm.SetCount(0, 20))
}
