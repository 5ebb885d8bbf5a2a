package colgo

import (
	"context"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colgo/array"
	"github.com/hupe1980/colgo/column"
	"github.com/hupe1980/colgo/dtype"
	"github.com/hupe1980/colgo/kernels"
)

func testTable(t *testing.T) *Table {
	t.Helper()

	ids, err := column.FromChunks("id", array.FromSlice([]int64{3, 1, 2, 1}))
	require.NoError(t, err)
	vals, err := column.FromChunks("value", array.FromSlice([]float64{30, 10, 20, 40}))
	require.NoError(t, err)

	tbl, err := NewTable([]*column.Column{ids, vals})
	require.NoError(t, err)
	return tbl
}

func TestNewTableValidation(t *testing.T) {
	_, err := NewTable(nil)
	assert.ErrorIs(t, err, ErrEmptyTable)

	a, err := column.FromChunks("a", array.FromSlice([]int64{1}))
	require.NoError(t, err)
	b, err := column.FromChunks("a", array.FromSlice([]int64{2}))
	require.NoError(t, err)

	_, err = NewTable([]*column.Column{a, b})
	var dup *ErrDuplicateColumn
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a", dup.Name)

	c, err := column.FromChunks("c", array.FromSlice([]int64{1, 2}))
	require.NoError(t, err)
	_, err = NewTable([]*column.Column{a, c})
	var lm *ErrLengthMismatch
	require.ErrorAs(t, err, &lm)
	assert.Equal(t, "c", lm.Column)
}

func TestTableSchema(t *testing.T) {
	tbl := testTable(t)

	assert.Equal(t, 4, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumCols())
	assert.Equal(t, []Field{
		{Name: "id", Type: dtype.Int64},
		{Name: "value", Type: dtype.Float64},
	}, tbl.Schema())

	_, err := tbl.Column("missing")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestTableSortBy(t *testing.T) {
	tbl := testTable(t)

	idx, err := tbl.SortBy(context.Background(), "id", kernels.SortOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2, 0}, idx)

	_, err = tbl.SortBy(context.Background(), "missing", kernels.SortOptions{})
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestTableGroupBy(t *testing.T) {
	tbl := testTable(t)

	g, err := tbl.GroupBy(context.Background(), "id")
	require.NoError(t, err)
	require.Equal(t, 3, g.NumGroups())

	sums, err := func() ([]float64, error) {
		vals, err := tbl.Column("value")
		if err != nil {
			return nil, err
		}
		return kernels.GroupedSum(context.Background(), g, vals)
	}()
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 50, 20}, sums)
}

func TestTableFilterRows(t *testing.T) {
	tbl := testTable(t)

	out, err := tbl.FilterRows(context.Background(), roaring.BitmapOf(0, 2))
	require.NoError(t, err)

	assert.Equal(t, 2, out.NumRows())
	ids, err := out.Column("id")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2}, array.Values[int64](ids.Chunk(0)))
}

func TestTableSumOf(t *testing.T) {
	tbl := testTable(t)

	sum, err := tbl.SumOf(context.Background(), "value")
	require.NoError(t, err)
	assert.Equal(t, 100.0, sum)
}
