package kernels

import (
	"context"

	"github.com/hupe1980/colgo/column"
)

// SortOptions controls SortIndices.
type SortOptions struct {
	// Descending sorts greatest-first. Equal keys keep their original
	// order either way.
	Descending bool
	// NullsFirst places null rows before all valid rows instead of after.
	NullsFirst bool
}

// SortIndices returns the row indices of col in sorted order without moving
// any values (an argsort). The sort is stable. Keys are derived through the
// bit-pattern conversion and order-preserving normalization, so one radix
// sort serves every 4- and 8-byte logical type.
func SortIndices(ctx context.Context, col *column.Column, opts SortOptions) ([]int, error) {
	keys, valid, err := bitKeys(ctx, col, true)
	if err != nil {
		return nil, err
	}

	validIdx := make([]int, 0, len(keys))
	nullIdx := make([]int, 0)
	for i, ok := range valid {
		if ok {
			validIdx = append(validIdx, i)
		} else {
			nullIdx = append(nullIdx, i)
		}
	}

	if opts.Descending {
		// Complementing the keys reverses the order while radix stability
		// keeps ties in original order.
		for i := range keys {
			keys[i] = ^keys[i]
		}
	}

	// 4-byte types produce zero-extended keys; the high four digit passes
	// would be no-ops for them unless descending complemented the keys.
	passes := 8
	if col.Type().Width() == 4 && !opts.Descending {
		passes = 4
	}
	radixSortIndices(keys, validIdx, passes)

	out := make([]int, 0, len(keys))
	if opts.NullsFirst {
		out = append(out, nullIdx...)
	}
	out = append(out, validIdx...)
	if !opts.NullsFirst {
		out = append(out, nullIdx...)
	}
	return out, nil
}

// radixSortIndices sorts idx by keys[idx[i]] using a least-significant-digit
// radix sort over 8-bit digits. Counting sort per digit is stable, which
// makes the whole sort stable.
func radixSortIndices(keys []uint64, idx []int, passes int) {
	if len(idx) < 2 {
		return
	}

	tmp := make([]int, len(idx))
	var counts [256]int

	for pass := 0; pass < passes; pass++ {
		shift := uint(pass * 8)

		for i := range counts {
			counts[i] = 0
		}
		for _, r := range idx {
			counts[(keys[r]>>shift)&0xFF]++
		}

		// Skip passes where every key shares the same digit.
		if counts[(keys[idx[0]]>>shift)&0xFF] == len(idx) {
			continue
		}

		total := 0
		for i := range counts {
			counts[i], total = total, total+counts[i]
		}
		for _, r := range idx {
			d := (keys[r] >> shift) & 0xFF
			tmp[counts[d]] = r
			counts[d]++
		}
		copy(idx, tmp)
	}
}
