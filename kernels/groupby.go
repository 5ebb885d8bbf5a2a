package kernels

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/colgo/column"
)

// Grouping is the result of GroupBy: one selection bitmap of row ids per
// distinct key, in first-appearance order.
type Grouping struct {
	groups []*roaring.Bitmap
	// firstRow holds the first row index of each group, usable to read
	// back the group's key values from the source columns.
	firstRow []int
}

// NumGroups returns the number of distinct keys.
func (g *Grouping) NumGroups() int { return len(g.groups) }

// Group returns the row-id bitmap of group i. The bitmap must be treated as
// read-only.
func (g *Grouping) Group(i int) *roaring.Bitmap { return g.groups[i] }

// FirstRow returns the first row index belonging to group i.
func (g *Grouping) FirstRow(i int) int { return g.firstRow[i] }

// GroupBy partitions rows by the combined value of the given columns. Keys
// are exact: rows land in the same group iff every key column holds the
// same bit pattern (or is null) at both rows. All columns must have the
// same length.
func GroupBy(ctx context.Context, cols ...*column.Column) (*Grouping, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("kernels: group-by needs at least one key column")
	}

	numRows := cols[0].Len()
	for _, c := range cols[1:] {
		if c.Len() != numRows {
			return nil, fmt.Errorf("kernels: group-by column %q has %d rows, want %d", c.Name(), c.Len(), numRows)
		}
	}

	// Extract the raw bit patterns per column up front; the per-chunk work
	// inside bitKeys runs in parallel.
	keys := make([][]uint64, len(cols))
	valids := make([][]bool, len(cols))
	for i, c := range cols {
		k, v, err := bitKeys(ctx, c, false)
		if err != nil {
			return nil, fmt.Errorf("kernels: group-by column %q: %w", c.Name(), err)
		}
		keys[i], valids[i] = k, v
	}

	// One combined xxhash per row partitions the rows; the hash only
	// nominates a bucket, membership is decided by comparing the actual
	// bit patterns, so hash collisions cannot merge distinct keys.
	rowHash := hashKeys(keys[0], valids[0])
	for i := 1; i < len(cols); i++ {
		for row, h := range hashKeys(keys[i], valids[i]) {
			rowHash[row] = CombineHashes(rowHash[row], h)
		}
	}

	sameKey := func(a, b int) bool {
		for i := range keys {
			if valids[i][a] != valids[i][b] {
				return false
			}
			if valids[i][a] && keys[i][a] != keys[i][b] {
				return false
			}
		}
		return true
	}

	g := &Grouping{}
	buckets := make(map[uint64][]int, 64) // combined hash -> group ids

	for row := 0; row < numRows; row++ {
		gid := -1
		for _, cand := range buckets[rowHash[row]] {
			if sameKey(g.firstRow[cand], row) {
				gid = cand
				break
			}
		}
		if gid < 0 {
			gid = len(g.groups)
			buckets[rowHash[row]] = append(buckets[rowHash[row]], gid)
			g.groups = append(g.groups, roaring.New())
			g.firstRow = append(g.firstRow, row)
		}
		g.groups[gid].Add(uint32(row))
	}

	return g, nil
}
