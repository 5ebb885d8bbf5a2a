package colgo

import (
	"context"
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/colgo/column"
	"github.com/hupe1980/colgo/dtype"
	"github.com/hupe1980/colgo/kernels"
)

// Field describes one column of a table schema.
type Field struct {
	Name string
	Type dtype.Type
}

// Table is an ordered set of named columns of equal length. It is the
// two-dimensional façade over the chunked column containers, comparable to
// a record batch. Tables are immutable; operations return indices,
// groupings, or new tables.
type Table struct {
	cols    []*column.Column
	byName  map[string]int
	rows    int
	metrics MetricsCollector
	logger  *Logger
}

// NewTable assembles a table from columns. Column names must be unique and
// every column must have the same total length.
func NewTable(cols []*column.Column, optFns ...Option) (*Table, error) {
	if len(cols) == 0 {
		return nil, ErrEmptyTable
	}

	opts := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	t := &Table{
		cols:    cols,
		byName:  make(map[string]int, len(cols)),
		rows:    cols[0].Len(),
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}
	for i, c := range cols {
		if _, ok := t.byName[c.Name()]; ok {
			return nil, &ErrDuplicateColumn{Name: c.Name()}
		}
		if c.Len() != t.rows {
			return nil, &ErrLengthMismatch{Column: c.Name(), Rows: c.Len(), Want: t.rows}
		}
		t.byName[c.Name()] = i
	}
	return t, nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Schema returns the table's fields in column order.
func (t *Table) Schema() []Field {
	fields := make([]Field, len(t.cols))
	for i, c := range t.cols {
		fields[i] = Field{Name: c.Name(), Type: c.Type()}
	}
	return fields
}

// Column returns the named column.
func (t *Table) Column(name string) (*column.Column, error) {
	i, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return t.cols[i], nil
}

// SortBy returns the row order that sorts the table by the named column.
func (t *Table) SortBy(ctx context.Context, name string, opts kernels.SortOptions) ([]int, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	idx, err := kernels.SortIndices(ctx, col, opts)
	t.metrics.RecordSort(t.rows, time.Since(start), err)
	t.logger.LogSort(ctx, name, t.rows, time.Since(start), err)
	return idx, err
}

// GroupBy partitions the table's rows by the named key columns.
func (t *Table) GroupBy(ctx context.Context, names ...string) (*kernels.Grouping, error) {
	cols := make([]*column.Column, len(names))
	for i, name := range names {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}

	start := time.Now()
	g, err := kernels.GroupBy(ctx, cols...)
	groups := 0
	if g != nil {
		groups = g.NumGroups()
	}
	t.metrics.RecordGroupBy(t.rows, groups, time.Since(start), err)
	t.logger.LogGroupBy(ctx, names, groups, time.Since(start), err)
	return g, err
}

// FilterRows materializes a new table holding only the selected rows, in
// ascending row order. Every column is gathered through the bit-pattern
// layer.
func (t *Table) FilterRows(ctx context.Context, sel *roaring.Bitmap) (*Table, error) {
	start := time.Now()

	filtered := make([]*column.Column, len(t.cols))
	for i, c := range t.cols {
		out, err := kernels.Filter(ctx, c, sel)
		if err != nil {
			t.metrics.RecordFilter(t.rows, 0, time.Since(start), err)
			return nil, err
		}
		filtered[i] = out
	}

	out, err := NewTable(filtered,
		WithMetricsCollector(t.metrics),
		WithLogger(t.logger))
	t.metrics.RecordFilter(t.rows, int(sel.GetCardinality()), time.Since(start), err)
	return out, err
}

// SumOf returns the sum of the named column's non-null values.
func (t *Table) SumOf(ctx context.Context, name string) (float64, error) {
	col, err := t.Column(name)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	sum, err := kernels.Sum(ctx, col)
	t.metrics.RecordAggregate(time.Since(start), err)
	return sum, err
}
