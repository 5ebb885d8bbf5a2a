// Package memory provides the storage primitives shared by all columnar
// containers: immutable byte buffers, validity bitmaps, and aligned
// allocation.
//
// Buffers and bitmaps are shared by reference. Once adopted by a chunk they
// must never be mutated; every container built on top of them, including
// zero-copy views produced by bit-pattern reinterpretation, aliases the same
// storage. Lifetime is managed by the Go garbage collector: storage stays
// alive as long as any chunk, column, or derived view references it.
package memory
