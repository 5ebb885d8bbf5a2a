// Package column provides the chunked column container and the bit-pattern
// reinterpretation layer built on top of it.
//
// A Column is an ordered sequence of chunks forming one named logical
// column; all chunks share the same declared element type. The bit-pattern
// conversions (ToWideBitPattern, ToNarrowBitPattern) relabel a numeric
// column as an unsigned integer column of the same native width without
// copying any value bytes, so comparison- and hash-based kernels need one
// implementation per bit width instead of one per logical type.
package column
