// Package array provides the chunk container: one contiguous run of typed
// elements backed by a shared value buffer and an optional validity bitmap.
//
// A Chunk is a descriptor, not storage. It references a [memory.Buffer]
// through an element offset and logical length and interprets the bytes
// under its declared element type. Chunks are immutable after construction;
// operations that appear to transform a chunk (such as Reinterpret) return
// a new descriptor sharing the same storage.
package array
