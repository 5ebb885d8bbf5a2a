package column

import (
	"fmt"

	"github.com/hupe1980/colgo/array"
	"github.com/hupe1980/colgo/dtype"
)

// ErrUnsupportedWidth indicates that a column's element type has no
// unsigned bit-pattern representation because its native width is neither
// 4 nor 8 bytes.
type ErrUnsupportedWidth struct {
	Type dtype.Type
}

func (e *ErrUnsupportedWidth) Error() string {
	return fmt.Sprintf("column: no bit-pattern representation for %s (width %d)", e.Type, e.Type.Width())
}

// ToWideBitPattern reinterprets a column of 8-byte elements (64-bit
// integers, floats, or temporal values) as a Uint64 column.
//
// The result has identical chunk topology: the same chunk count and, per
// chunk, the same buffer reference, element offset, logical length, and
// validity bitmap reference as the source. No value byte is read or copied;
// only new chunk and column descriptors are allocated.
//
// The source type's native width must be exactly 8 bytes. Callers select
// this path through the width classifier (dtype.Type.IsWide); violating the
// precondition is a programming-contract failure and panics.
func ToWideBitPattern(c *Column) *Column {
	if !c.typ.IsWide() {
		panic(fmt.Sprintf("column %q: wide bit pattern requires an 8-byte type, got %s (width %d)",
			c.name, c.typ, c.typ.Width()))
	}
	return relabel(c, dtype.Uint64)
}

// ToNarrowBitPattern reinterprets a column of 4-byte elements (32-bit
// integers, floats, or temporal values) as a Uint32 column. It carries the
// same structural guarantees and precondition contract as ToWideBitPattern,
// for native width exactly 4 bytes.
func ToNarrowBitPattern(c *Column) *Column {
	if !c.typ.IsNarrow() {
		panic(fmt.Sprintf("column %q: narrow bit pattern requires a 4-byte type, got %s (width %d)",
			c.name, c.typ, c.typ.Width()))
	}
	return relabel(c, dtype.Uint32)
}

// BitPattern dispatches on the column's native width, returning the wide or
// narrow bit-pattern view, or ErrUnsupportedWidth for any other width. This
// is the entry point for width-generic callers; callers that know the width
// statically use ToWideBitPattern or ToNarrowBitPattern directly.
func BitPattern(c *Column) (*Column, error) {
	switch {
	case c.typ.IsWide():
		return ToWideBitPattern(c), nil
	case c.typ.IsNarrow():
		return ToNarrowBitPattern(c), nil
	default:
		return nil, &ErrUnsupportedWidth{Type: c.typ}
	}
}

// relabel rebuilds the column's chunk descriptors under typ, preserving
// order. Both conversion paths share this helper so they cannot diverge.
func relabel(c *Column, typ dtype.Type) *Column {
	chunks := make([]*array.Chunk, len(c.chunks))
	for i, ch := range c.chunks {
		chunks[i] = ch.Reinterpret(typ)
	}
	return &Column{name: c.name, typ: typ, chunks: chunks}
}
