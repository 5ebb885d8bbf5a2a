// Package kernels implements the numeric kernels that consume columns
// through the bit-pattern reinterpretation layer: sorting, hashing,
// grouping, filtering, and aggregation.
//
// Every comparison- or hash-based kernel first derives an unsigned-integer
// view of its input via the width classifier and the matching bit-pattern
// conversion, so kernels are specialized per bit width (4 or 8 bytes), never
// per logical element type. The views alias the source column's storage and
// are never mutated.
//
// Because unsigned bit-pattern order does not match logical order for
// signed integers and floats, order-sensitive kernels normalize the raw
// bit patterns into order-preserving keys (sign-bit flip for signed
// integers, sign-dependent complement for floats) after the conversion.
// NaN keys order above +Inf; null rows are handled outside the key space.
package kernels
