package kernels

import (
	"context"
	"math"

	"github.com/hupe1980/colgo/column"
	"github.com/hupe1980/colgo/dtype"
)

// decode turns a raw (unnormalized) bit-pattern key back into the logical
// value as a float64. This is the single place an aggregation interprets
// bit content; everything upstream treats values as opaque patterns.
func decode(bits uint64, typ dtype.Type) float64 {
	switch typ {
	case dtype.Float64:
		return math.Float64frombits(bits)
	case dtype.Float32:
		return float64(math.Float32frombits(uint32(bits)))
	case dtype.Int64, dtype.Date64:
		return float64(int64(bits))
	case dtype.Int32, dtype.Date32:
		return float64(int32(uint32(bits)))
	default:
		return float64(bits)
	}
}

// Count returns the number of non-null rows.
func Count(col *column.Column) int {
	return col.Len() - col.Nulls()
}

// Sum returns the sum of all non-null values as a float64. An all-null or
// empty column sums to zero.
func Sum(ctx context.Context, col *column.Column) (float64, error) {
	keys, valid, err := bitKeys(ctx, col, false)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for i, k := range keys {
		if valid[i] {
			sum += decode(k, col.Type())
		}
	}
	return sum, nil
}

// MinMax returns the smallest and largest non-null values. ok is false when
// the column has no non-null rows.
func MinMax(ctx context.Context, col *column.Column) (minVal, maxVal float64, ok bool, err error) {
	keys, valid, err := bitKeys(ctx, col, false)
	if err != nil {
		return 0, 0, false, err
	}

	for i, k := range keys {
		if !valid[i] {
			continue
		}
		v := decode(k, col.Type())
		if !ok {
			minVal, maxVal, ok = v, v, true
			continue
		}
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal, ok, nil
}

// GroupedSum returns the per-group sums of col for an existing grouping.
func GroupedSum(ctx context.Context, g *Grouping, col *column.Column) ([]float64, error) {
	keys, valid, err := bitKeys(ctx, col, false)
	if err != nil {
		return nil, err
	}

	sums := make([]float64, g.NumGroups())
	for gid := 0; gid < g.NumGroups(); gid++ {
		it := g.Group(gid).Iterator()
		for it.HasNext() {
			row := it.Next()
			if valid[row] {
				sums[gid] += decode(keys[row], col.Type())
			}
		}
	}
	return sums, nil
}
