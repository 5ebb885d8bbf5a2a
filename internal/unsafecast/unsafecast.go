// Package unsafecast provides zero-copy reinterpretation of slices.
//
// The functions here relabel the element type of existing memory without
// reading, validating, or copying any bytes. Callers are responsible for
// making sure the source memory is correctly sized and aligned for the
// target element type; every call site in this module guards the cast with
// an explicit width check.
package unsafecast

import "unsafe"

// Sizeof returns the size of T in bytes.
func Sizeof[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Slice reinterprets a slice of one element type as a slice of another.
// The length and capacity of the result are scaled by the ratio of the two
// element sizes. The result aliases the input's memory.
func Slice[From, To any](in []From) []To {
	if cap(in) == 0 {
		return nil
	}

	var (
		fromSize = Sizeof[From]()
		toSize   = Sizeof[To]()

		toLen = len(in) * fromSize / toSize
		toCap = cap(in) * fromSize / toSize
	)

	out := (*To)(unsafe.Pointer(unsafe.SliceData(in)))
	return unsafe.Slice(out, toCap)[:toLen]
}

// Bytes reinterprets a slice of any element type as raw bytes.
func Bytes[T any](in []T) []byte {
	return Slice[T, byte](in)
}

// FromBytes reinterprets raw bytes as a slice of T. The byte length must be
// a multiple of T's size; trailing bytes that do not fill a whole element
// are dropped by the length scaling in Slice.
func FromBytes[T any](in []byte) []T {
	return Slice[byte, T](in)
}
