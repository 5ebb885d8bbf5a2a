package memory

// Buffer is an immutable, shared, contiguous byte region holding element
// values. Multiple chunks may reference the same Buffer through sub-ranges;
// none of them may modify it. The byte length is fixed at construction.
type Buffer struct {
	data []byte
}

// NewBuffer adopts data as an immutable buffer. The caller must not modify
// data after handing it over.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// NewAlignedBuffer allocates a zeroed buffer of the given byte size with
// 64-byte alignment. The buffer is mutable only until it is adopted by a
// chunk; builders fill it in place and then treat it as frozen.
func NewAlignedBuffer(size int) *Buffer {
	return &Buffer{data: AllocAligned(size)}
}

// Len returns the byte length of the buffer.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the underlying bytes. The returned slice aliases the
// buffer's storage and must be treated as read-only.
func (b *Buffer) Bytes() []byte {
	return b.data
}
