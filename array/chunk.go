package array

import (
	"fmt"

	"github.com/hupe1980/colgo/dtype"
	"github.com/hupe1980/colgo/internal/unsafecast"
	"github.com/hupe1980/colgo/memory"
)

// Chunk is one contiguous run of typed elements: a reference to a value
// buffer, an optional validity bitmap, a logical length, an element offset
// into the buffer, and a declared element type.
type Chunk struct {
	typ      dtype.Type
	buf      *memory.Buffer
	validity *memory.Bitmap
	offset   int
	length   int
}

// NewChunk builds a chunk descriptor over buf without copying buffer
// contents. The element type must have a fixed native width, the window
// [offset, offset+length) must fit within the buffer's capacity in
// elements, and a non-nil validity bitmap must cover the window.
func NewChunk(typ dtype.Type, buf *memory.Buffer, validity *memory.Bitmap, offset, length int) (*Chunk, error) {
	width := typ.Width()
	if width == 0 {
		return nil, fmt.Errorf("array: type %s has no fixed native width", typ)
	}
	if offset < 0 || length < 0 {
		return nil, fmt.Errorf("array: negative chunk bounds: offset %d, length %d", offset, length)
	}
	if capacity := buf.Len() / width; offset+length > capacity {
		return nil, fmt.Errorf("array: chunk window [%d, %d) exceeds buffer capacity of %d %s elements",
			offset, offset+length, capacity, typ)
	}
	if validity != nil && validity.Len() < offset+length {
		return nil, fmt.Errorf("array: validity bitmap covers %d elements, chunk needs %d", validity.Len(), offset+length)
	}
	return &Chunk{
		typ:      typ,
		buf:      buf,
		validity: validity,
		offset:   offset,
		length:   length,
	}, nil
}

// Type returns the declared element type.
func (c *Chunk) Type() dtype.Type { return c.typ }

// Buffer returns the underlying value buffer.
func (c *Chunk) Buffer() *memory.Buffer { return c.buf }

// Validity returns the validity bitmap reference, or nil when the chunk has
// no nulls.
func (c *Chunk) Validity() *memory.Bitmap { return c.validity }

// Offset returns the element offset into the buffer.
func (c *Chunk) Offset() int { return c.offset }

// Len returns the logical element count.
func (c *Chunk) Len() int { return c.length }

// IsNull reports whether the element at local index i is null. Nullness is
// bitmap-governed: the bytes at a null position are undefined but preserved.
func (c *Chunk) IsNull(i int) bool {
	if c.validity == nil {
		return false
	}
	return !c.validity.IsSet(c.offset + i)
}

// Nulls returns the number of null elements in the chunk.
func (c *Chunk) Nulls() int {
	if c.validity == nil {
		return 0
	}
	return c.length - c.validity.SetCount(c.offset, c.length)
}

// Reinterpret returns a new chunk descriptor viewing the same buffer,
// offset, length, and validity bitmap under typ. No byte is read or copied.
//
// The target type must have the same native width as the chunk's declared
// type; a mismatch is a programming-contract violation and panics.
func (c *Chunk) Reinterpret(typ dtype.Type) *Chunk {
	if typ.Width() != c.typ.Width() {
		panic(fmt.Sprintf("array: cannot reinterpret %s (width %d) as %s (width %d)",
			c.typ, c.typ.Width(), typ, typ.Width()))
	}
	return &Chunk{
		typ:      typ,
		buf:      c.buf,
		validity: c.validity,
		offset:   c.offset,
		length:   c.length,
	}
}

// Values returns the chunk's elements as a typed slice aliasing the
// underlying buffer. T's size must equal the chunk's native width; a
// mismatch panics. The returned slice must be treated as read-only.
func Values[T dtype.Element](c *Chunk) []T {
	if size := unsafecast.Sizeof[T](); size != c.typ.Width() {
		panic(fmt.Sprintf("array: element size %d does not match %s width %d", size, c.typ, c.typ.Width()))
	}
	all := unsafecast.FromBytes[T](c.buf.Bytes())
	return all[c.offset : c.offset+c.length]
}

// Value returns the element at local index i. The value at a null position
// is whatever bit pattern the buffer holds there.
func Value[T dtype.Element](c *Chunk, i int) T {
	return Values[T](c)[i]
}
