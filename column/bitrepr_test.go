package column

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colgo/array"
	"github.com/hupe1980/colgo/dtype"
)

func float32Chunk(t *testing.T, vals []float32, nulls ...int) *array.Chunk {
	t.Helper()
	b := array.NewBuilder[float32]()
	for i, v := range vals {
		if containsInt(nulls, i) {
			b.AppendNull()
		} else {
			b.Append(v)
		}
	}
	return b.NewChunk()
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func TestWideBitPatternStructure(t *testing.T) {
	b1 := array.NewBuilder[float64]()
	b1.AppendValues(1.0, 2.0, 3.0)
	b2 := array.NewBuilder[float64]()
	b2.Append(4.0)
	b2.AppendNull()

	src, err := FromChunks("x", b1.NewChunk(), b2.NewChunk())
	require.NoError(t, err)

	out := ToWideBitPattern(src)

	assert.Equal(t, "x", out.Name())
	assert.Equal(t, dtype.Uint64, out.Type())
	require.Equal(t, src.NumChunks(), out.NumChunks())
	for i := 0; i < src.NumChunks(); i++ {
		assert.Equal(t, src.Chunk(i).Len(), out.Chunk(i).Len(), "chunk %d length", i)
		assert.Equal(t, src.Chunk(i).Offset(), out.Chunk(i).Offset(), "chunk %d offset", i)
	}
}

func TestWideBitPatternAliasesStorage(t *testing.T) {
	b := array.NewBuilder[int64]()
	b.Append(-7)
	b.AppendNull()
	src, err := FromChunks("ids", b.NewChunk())
	require.NoError(t, err)

	out := ToWideBitPattern(src)

	// Identity, not value equality: the view shares the source's storage.
	assert.Same(t, src.Chunk(0).Buffer(), out.Chunk(0).Buffer())
	assert.Same(t, src.Chunk(0).Validity(), out.Chunk(0).Validity())
}

func TestWideBitPatternPreservesBits(t *testing.T) {
	vals := []float64{1.5, -0.0, math.NaN(), math.Inf(-1), math.MaxFloat64}
	src, err := FromChunks("f", array.FromSlice(vals))
	require.NoError(t, err)

	out := ToWideBitPattern(src)

	for i, v := range vals {
		assert.Equal(t, math.Float64bits(v), array.Value[uint64](out.Chunk(0), i), "index %d", i)
	}
	// Negative zero and NaN payloads survive bit-for-bit.
	assert.Equal(t, uint64(1)<<63, array.Value[uint64](out.Chunk(0), 1))
}

func TestNarrowBitPatternScenario(t *testing.T) {
	// Column "x", float32, two chunks of lengths [3, 2], second chunk with
	// one null at local index 1.
	c1 := float32Chunk(t, []float32{1, 2, 3})
	c2 := float32Chunk(t, []float32{4, 0}, 1)

	src, err := FromChunks("x", c1, c2)
	require.NoError(t, err)

	out := ToNarrowBitPattern(src)

	assert.Equal(t, "x", out.Name())
	assert.Equal(t, dtype.Uint32, out.Type())
	require.Equal(t, 2, out.NumChunks())
	assert.Equal(t, 3, out.Chunk(0).Len())
	assert.Equal(t, 2, out.Chunk(1).Len())

	assert.False(t, out.Chunk(1).IsNull(0))
	assert.True(t, out.Chunk(1).IsNull(1))
	assert.Nil(t, out.Chunk(0).Validity())

	// The null slot's raw bits are whatever the buffer stores there.
	assert.Equal(t, math.Float32bits(4), array.Value[uint32](out.Chunk(1), 0))
	assert.Equal(t, uint32(0), array.Value[uint32](out.Chunk(1), 1))
}

func TestNarrowBitPatternTemporal(t *testing.T) {
	b, err := array.NewBuilderWithType[int32](dtype.Date32)
	require.NoError(t, err)
	b.AppendValues(19000, -1)

	src, err := FromChunks("d", b.NewChunk())
	require.NoError(t, err)

	out := ToNarrowBitPattern(src)
	assert.Equal(t, dtype.Uint32, out.Type())
	assert.Equal(t, uint32(19000), array.Value[uint32](out.Chunk(0), 0))
	assert.Equal(t, uint32(math.MaxUint32), array.Value[uint32](out.Chunk(0), 1))
}

func TestBitPatternEmptyColumn(t *testing.T) {
	src, err := New("empty", dtype.Float64)
	require.NoError(t, err)

	out := ToWideBitPattern(src)
	assert.Equal(t, dtype.Uint64, out.Type())
	assert.Equal(t, 0, out.NumChunks())
	assert.Equal(t, 0, out.Len())
}

func TestWidthGating(t *testing.T) {
	wide, err := FromChunks("w", array.FromSlice([]int64{1}))
	require.NoError(t, err)
	narrow, err := FromChunks("n", array.FromSlice([]int32{1}))
	require.NoError(t, err)

	assert.Panics(t, func() { ToWideBitPattern(narrow) })
	assert.Panics(t, func() { ToNarrowBitPattern(wide) })

	// The panic diagnostic names the offending type.
	defer func() {
		r := recover()
		require.NotNil(t, r)
		assert.Contains(t, r.(string), "int32")
	}()
	ToWideBitPattern(narrow)
}

func TestBitPatternDispatch(t *testing.T) {
	wide, err := FromChunks("w", array.FromSlice([]float64{1}))
	require.NoError(t, err)
	narrow, err := FromChunks("n", array.FromSlice([]uint32{1}))
	require.NoError(t, err)
	tiny, err := FromChunks("t", array.FromSlice([]int16{1}))
	require.NoError(t, err)

	out, err := BitPattern(wide)
	require.NoError(t, err)
	assert.Equal(t, dtype.Uint64, out.Type())

	out, err = BitPattern(narrow)
	require.NoError(t, err)
	assert.Equal(t, dtype.Uint32, out.Type())

	_, err = BitPattern(tiny)
	var uw *ErrUnsupportedWidth
	require.ErrorAs(t, err, &uw)
	assert.Equal(t, dtype.Int16, uw.Type)
}

func TestBitPatternOfUnsignedIsIdentityShaped(t *testing.T) {
	src, err := FromChunks("u", array.FromSlice([]uint64{42}))
	require.NoError(t, err)

	out := ToWideBitPattern(src)
	assert.Equal(t, dtype.Uint64, out.Type())
	assert.Equal(t, uint64(42), array.Value[uint64](out.Chunk(0), 0))
	assert.Same(t, src.Chunk(0).Buffer(), out.Chunk(0).Buffer())
}
