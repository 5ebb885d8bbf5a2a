package array

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colgo/dtype"
	"github.com/hupe1980/colgo/internal/unsafecast"
	"github.com/hupe1980/colgo/memory"
)

func TestNewChunkValidatesBounds(t *testing.T) {
	buf := memory.NewBuffer(make([]byte, 32)) // 4 x int64

	c, err := NewChunk(dtype.Int64, buf, nil, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())

	c, err = NewChunk(dtype.Int64, buf, nil, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Offset())

	_, err = NewChunk(dtype.Int64, buf, nil, 2, 3)
	assert.Error(t, err)
	_, err = NewChunk(dtype.Int64, buf, nil, -1, 2)
	assert.Error(t, err)
	_, err = NewChunk(dtype.Boolean, buf, nil, 0, 4)
	assert.Error(t, err)
}

func TestNewChunkValidatesBitmapCoverage(t *testing.T) {
	buf := memory.NewBuffer(make([]byte, 32))

	bm, err := memory.NewBitmap(memory.NewBuffer([]byte{0xFF}), 4)
	require.NoError(t, err)

	_, err = NewChunk(dtype.Int64, buf, bm, 0, 4)
	assert.NoError(t, err)

	// Bitmap covers 4 elements but the window needs offset+length = 6.
	_, err = NewChunk(dtype.Int64, buf, bm, 2, 4)
	assert.Error(t, err)
}

func TestChunkValues(t *testing.T) {
	b := NewBuilder[int64]()
	b.AppendValues(10, -20, 30)
	c := b.NewChunk()

	assert.Equal(t, dtype.Int64, c.Type())
	assert.Equal(t, []int64{10, -20, 30}, Values[int64](c))
	assert.Equal(t, int64(-20), Value[int64](c, 1))
	assert.Equal(t, 0, c.Nulls())
	assert.Nil(t, c.Validity())
}

func TestChunkNulls(t *testing.T) {
	b := NewBuilder[float32]()
	b.Append(1.5)
	b.AppendNull()
	b.Append(3.5)
	c := b.NewChunk()

	require.NotNil(t, c.Validity())
	assert.Equal(t, 1, c.Nulls())
	assert.False(t, c.IsNull(0))
	assert.True(t, c.IsNull(1))
	assert.False(t, c.IsNull(2))
	// A null slot still holds its stored bit pattern.
	assert.Equal(t, float32(0), Value[float32](c, 1))
}

func TestChunkOffsetWindow(t *testing.T) {
	vals := []int32{0, 1, 2, 3, 4, 5}
	buf := memory.NewBuffer(unsafecast.Bytes(vals))

	c, err := NewChunk(dtype.Int32, buf, nil, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int32{2, 3, 4}, Values[int32](c))
}

func TestReinterpretSharesEverything(t *testing.T) {
	b := NewBuilder[float64]()
	b.Append(1.5)
	b.AppendNull()
	c := b.NewChunk()

	view := c.Reinterpret(dtype.Uint64)

	assert.Equal(t, dtype.Uint64, view.Type())
	assert.Equal(t, c.Len(), view.Len())
	assert.Equal(t, c.Offset(), view.Offset())
	assert.Same(t, c.Buffer(), view.Buffer())
	assert.Same(t, c.Validity(), view.Validity())
	assert.Equal(t, math.Float64bits(1.5), Value[uint64](view, 0))
}

func TestReinterpretWidthMismatchPanics(t *testing.T) {
	c := FromSlice([]float64{1, 2})

	assert.PanicsWithValue(t,
		"array: cannot reinterpret float64 (width 8) as uint32 (width 4)",
		func() { c.Reinterpret(dtype.Uint32) })
}

func TestValuesWidthMismatchPanics(t *testing.T) {
	c := FromSlice([]int64{1})
	assert.Panics(t, func() { Values[int32](c) })
}

func TestBuilderWithType(t *testing.T) {
	b, err := NewBuilderWithType[int32](dtype.Date32)
	require.NoError(t, err)
	b.AppendValues(19000, 19001)
	c := b.NewChunk()

	assert.Equal(t, dtype.Date32, c.Type())
	assert.Equal(t, []int32{19000, 19001}, Values[int32](c))

	_, err = NewBuilderWithType[int32](dtype.Date64)
	assert.Error(t, err)
}

func TestFromSliceAliases(t *testing.T) {
	vals := []uint64{1, 2, 3}
	c := FromSlice(vals)

	vals[0] = 99
	assert.Equal(t, uint64(99), Value[uint64](c, 0))
}

func TestEmptyChunk(t *testing.T) {
	b := NewBuilder[int64]()
	c := b.NewChunk()

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, Values[int64](c))
}
