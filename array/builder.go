package array

import (
	"fmt"

	"github.com/hupe1980/colgo/dtype"
	"github.com/hupe1980/colgo/internal/unsafecast"
	"github.com/hupe1980/colgo/memory"
)

// NumericBuilder accumulates fixed-width numeric elements and their
// validity into a chunk. The zero value is not usable; construct with
// NewBuilder or NewBuilderWithType.
type NumericBuilder[T dtype.Element] struct {
	typ      dtype.Type
	values   []T
	validity memory.BitmapBuilder
}

// NewBuilder creates a builder whose chunk type is derived from T.
func NewBuilder[T dtype.Element]() *NumericBuilder[T] {
	return &NumericBuilder[T]{typ: dtype.Of[T]()}
}

// NewBuilderWithType creates a builder that tags the resulting chunk with
// typ instead of the type derived from T. Used for temporal types, whose
// storage representation is a plain integer (Date32 over int32, Date64 over
// int64). The widths must match.
func NewBuilderWithType[T dtype.Element](typ dtype.Type) (*NumericBuilder[T], error) {
	if typ.Width() != unsafecast.Sizeof[T]() {
		return nil, fmt.Errorf("array: builder element size %d does not match %s width %d",
			unsafecast.Sizeof[T](), typ, typ.Width())
	}
	return &NumericBuilder[T]{typ: typ}, nil
}

// Append appends a valid element.
func (b *NumericBuilder[T]) Append(v T) {
	b.values = append(b.values, v)
	b.validity.Append(true)
}

// AppendNull appends a null element. The value slot holds a zero bit
// pattern; nullness is tracked only in the validity bitmap.
func (b *NumericBuilder[T]) AppendNull() {
	var zero T
	b.values = append(b.values, zero)
	b.validity.Append(false)
}

// AppendValues appends a run of valid elements.
func (b *NumericBuilder[T]) AppendValues(vs ...T) {
	for _, v := range vs {
		b.Append(v)
	}
}

// Len returns the number of elements appended so far.
func (b *NumericBuilder[T]) Len() int {
	return len(b.values)
}

// NewChunk freezes the accumulated elements into an immutable chunk backed
// by a 64-byte-aligned buffer. The builder must not be reused afterwards.
func (b *NumericBuilder[T]) NewChunk() *Chunk {
	width := b.typ.Width()
	buf := memory.NewAlignedBuffer(len(b.values) * width)
	copy(buf.Bytes(), unsafecast.Bytes(b.values))

	c, err := NewChunk(b.typ, buf, b.validity.Finish(), 0, len(b.values))
	if err != nil {
		// The builder controls every input to NewChunk; failure here is a
		// bug in the builder itself.
		panic(err)
	}
	return c
}

// FromSlice adopts vals as a chunk without nulls and without copying. The
// caller must not modify vals afterwards.
func FromSlice[T dtype.Element](vals []T) *Chunk {
	buf := memory.NewBuffer(unsafecast.Bytes(vals))
	c, err := NewChunk(dtype.Of[T](), buf, nil, 0, len(vals))
	if err != nil {
		panic(err)
	}
	return c
}
