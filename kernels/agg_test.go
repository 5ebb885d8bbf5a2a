package kernels

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colgo/array"
	"github.com/hupe1980/colgo/column"
)

func TestSum(t *testing.T) {
	b := array.NewBuilder[float64]()
	b.Append(1.5)
	b.AppendNull()
	b.Append(-0.5)
	col, err := column.FromChunks("v", b.NewChunk())
	require.NoError(t, err)

	sum, err := Sum(context.Background(), col)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.Equal(t, 2, Count(col))
}

func TestSumSignedNarrow(t *testing.T) {
	col, err := column.FromChunks("v", array.FromSlice([]int32{-10, 4}))
	require.NoError(t, err)

	sum, err := Sum(context.Background(), col)
	require.NoError(t, err)
	assert.Equal(t, -6.0, sum)
}

func TestMinMax(t *testing.T) {
	col, err := column.FromChunks("v", array.FromSlice([]int64{5, -3, 12}))
	require.NoError(t, err)

	minVal, maxVal, ok, err := MinMax(context.Background(), col)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, -3.0, minVal)
	assert.Equal(t, 12.0, maxVal)
}

func TestMinMaxAllNull(t *testing.T) {
	b := array.NewBuilder[int64]()
	b.AppendNull()
	col, err := column.FromChunks("v", b.NewChunk())
	require.NoError(t, err)

	_, _, ok, err := MinMax(context.Background(), col)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGroupedSum(t *testing.T) {
	keys, err := column.FromChunks("k", array.FromSlice([]int64{1, 2, 1, 2}))
	require.NoError(t, err)
	vals, err := column.FromChunks("v", array.FromSlice([]float64{10, 20, 30, 40}))
	require.NoError(t, err)

	g, err := GroupBy(context.Background(), keys)
	require.NoError(t, err)

	sums, err := GroupedSum(context.Background(), g, vals)
	require.NoError(t, err)
	assert.Equal(t, []float64{40, 60}, sums)
}
