// Package colgo provides the numeric core of a columnar data-processing
// engine: typed, chunked array containers over a standard columnar memory
// layout, plus the kernels that operate on them.
//
// # Data structures
//
// The base containers, leaf first:
//
//   - memory.Buffer — immutable, shared, contiguous byte region
//   - memory.Bitmap — optional shared validity bitmap, one bit per element
//   - array.Chunk — one contiguous run of typed elements over a buffer
//   - column.Column — ordered chunks forming one named logical column
//   - colgo.Table — ordered named columns of equal length
//
// # Bit-pattern reinterpretation
//
// The layer everything else builds on is the zero-copy bit-pattern
// conversion in the column package: a column of fixed-width numeric values
// (signed or unsigned integers, floats, temporal scalars) is relabeled as a
// column of unsigned integers of the same bit width without copying a
// single value byte:
//
//	view := column.ToWideBitPattern(col) // width 8 -> uint64 column
//	view := column.ToNarrowBitPattern(col) // width 4 -> uint32 column
//
// Sorting, hashing, grouping, and filtering in the kernels package consume
// these views, so each kernel needs one implementation per bit width rather
// than one per logical type.
//
// # Quick start
//
//	b := array.NewBuilder[float64]()
//	b.AppendValues(3.5, 1.5)
//	b.AppendNull()
//	col, _ := column.FromChunks("x", b.NewChunk())
//
//	tbl, _ := colgo.NewTable([]*column.Column{col})
//	idx, _ := tbl.SortBy(ctx, "x", kernels.SortOptions{})
//
// Persisted column files and their storage backends live in the
// persistence and blobstore packages.
package colgo
