package memory

import (
	"fmt"

	"github.com/hupe1980/colgo/internal/bitutil"
)

// Bitmap is an immutable validity bitmap: one bit per logical element, bit i
// set meaning element i is valid (not null). A Bitmap is shared by reference
// across every chunk and derived view that adopts it and is never mutated
// afterwards.
type Bitmap struct {
	buf  *Buffer
	bits int
}

// NewBitmap wraps buf as a validity bitmap covering bits logical elements.
// The buffer must hold at least BytesForBits(bits) bytes.
func NewBitmap(buf *Buffer, bits int) (*Bitmap, error) {
	if bits < 0 {
		return nil, fmt.Errorf("memory: negative bitmap length %d", bits)
	}
	if need := bitutil.BytesForBits(bits); buf.Len() < need {
		return nil, fmt.Errorf("memory: bitmap buffer too small: %d bytes for %d bits (need %d)", buf.Len(), bits, need)
	}
	return &Bitmap{buf: buf, bits: bits}, nil
}

// Len returns the number of logical elements the bitmap covers.
func (b *Bitmap) Len() int {
	return b.bits
}

// IsSet reports whether element i is valid.
func (b *Bitmap) IsSet(i int) bool {
	return bitutil.IsSet(b.buf.Bytes(), i)
}

// SetCount returns the number of valid elements in [offset, offset+length).
func (b *Bitmap) SetCount(offset, length int) int {
	return bitutil.CountSetBits(b.buf.Bytes(), offset, length)
}

// Buffer returns the underlying buffer holding the packed bits.
func (b *Bitmap) Buffer() *Buffer {
	return b.buf
}

// BitmapBuilder accumulates validity bits for a chunk under construction.
// The zero value is ready to use.
type BitmapBuilder struct {
	data []byte
	bits int
	// nulls tracks whether any false bit was appended; a builder with no
	// nulls can skip materializing a bitmap entirely.
	nulls int
}

// Append records the validity of the next element.
func (b *BitmapBuilder) Append(valid bool) {
	byteIdx := b.bits / 8
	if byteIdx >= len(b.data) {
		b.data = append(b.data, 0)
	}
	if valid {
		bitutil.Set(b.data, b.bits)
	} else {
		b.nulls++
	}
	b.bits++
}

// Len returns the number of bits appended so far.
func (b *BitmapBuilder) Len() int {
	return b.bits
}

// Nulls returns the number of false bits appended so far.
func (b *BitmapBuilder) Nulls() int {
	return b.nulls
}

// Finish freezes the accumulated bits into an immutable Bitmap. It returns
// nil when no null was ever appended, matching the convention that a chunk
// without nulls carries no validity bitmap. The builder must not be reused
// afterwards.
func (b *BitmapBuilder) Finish() *Bitmap {
	if b.nulls == 0 {
		return nil
	}
	return &Bitmap{buf: NewBuffer(b.data), bits: b.bits}
}
