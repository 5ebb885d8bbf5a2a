package kernels

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/colgo/array"
	"github.com/hupe1980/colgo/column"
	"github.com/hupe1980/colgo/dtype"
)

// Filter materializes a new single-chunk column holding the rows of col
// selected by sel, in ascending row order. Unlike the bit-pattern
// conversions, Filter copies: the gather works on the column's unsigned
// view and the result is relabeled back to the source's logical type, so a
// single pair of gather loops covers every 4- and 8-byte type.
func Filter(ctx context.Context, col *column.Column, sel *roaring.Bitmap) (*column.Column, error) {
	bp, err := column.BitPattern(col)
	if err != nil {
		return nil, err
	}

	numRows := col.Len()
	var gathered *array.Chunk

	switch bp.Type() {
	case dtype.Uint64:
		b := array.NewBuilder[uint64]()
		it := sel.Iterator()
		for it.HasNext() {
			row := int(it.Next())
			if row >= numRows {
				return nil, fmt.Errorf("kernels: filter row %d out of range (%d rows)", row, numRows)
			}
			ci, local, _ := bp.Resolve(row)
			chunk := bp.Chunk(ci)
			if chunk.IsNull(local) {
				b.AppendNull()
			} else {
				b.Append(array.Value[uint64](chunk, local))
			}
		}
		gathered = b.NewChunk()
	case dtype.Uint32:
		b := array.NewBuilder[uint32]()
		it := sel.Iterator()
		for it.HasNext() {
			row := int(it.Next())
			if row >= numRows {
				return nil, fmt.Errorf("kernels: filter row %d out of range (%d rows)", row, numRows)
			}
			ci, local, _ := bp.Resolve(row)
			chunk := bp.Chunk(ci)
			if chunk.IsNull(local) {
				b.AppendNull()
			} else {
				b.Append(array.Value[uint32](chunk, local))
			}
		}
		gathered = b.NewChunk()
	}

	return column.New(col.Name(), col.Type(), gathered.Reinterpret(col.Type()))
}
