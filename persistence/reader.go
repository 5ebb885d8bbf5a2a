package persistence

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/colgo/array"
	"github.com/hupe1980/colgo/column"
	"github.com/hupe1980/colgo/dtype"
	"github.com/hupe1980/colgo/internal/conv"
	"github.com/hupe1980/colgo/internal/mmap"
	"github.com/hupe1980/colgo/memory"
)

// cursor walks a column file held in memory, with bounds checking on every
// access since the input is untrusted.
type cursor struct {
	data []byte
	off  int
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if n < 0 || c.off+n > len(c.data) {
		return nil, fmt.Errorf("persistence: truncated file: need %d bytes at offset %d of %d", n, c.off, len(c.data))
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) align() {
	if rem := c.off % pageAlign; rem != 0 {
		c.off += pageAlign - rem
	}
}

// parseColumns decodes the column-file payload in data, which must include
// the header and trailer. Uncompressed value pages alias data directly;
// compressed pages decode into fresh buffers.
func parseColumns(data []byte) ([]*column.Column, error) {
	if len(data) < 68 { // header + trailer
		return nil, fmt.Errorf("persistence: file too small: %d bytes", len(data))
	}

	payload, trailer := data[:len(data)-4], data[len(data)-4:]
	if sum := binary.LittleEndian.Uint32(trailer); sum != ComputeChecksum(payload) {
		return nil, fmt.Errorf("%w: stored 0x%08x", ErrChecksumMismatch, sum)
	}

	c := &cursor{data: payload}

	magic, _ := c.u32()
	if magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, magic)
	}
	version, _ := c.u32()
	if version != Version {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidVersion, version)
	}
	flags, _ := c.bytes(4) // compression + padding
	codec := flags[0]
	if codec > CompressionLZ4 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCompression, codec)
	}
	columnCount, _ := c.u32()
	if _, err := c.bytes(8 + 40); err != nil { // row count + reserved
		return nil, err
	}

	// The count is untrusted; each column record is at least 16 bytes, so a
	// count the remaining payload cannot hold is rejected before it sizes
	// any allocation.
	if remaining := len(payload) - c.off; int64(columnCount)*16 > int64(remaining) {
		return nil, fmt.Errorf("%w: %d columns claimed in %d remaining bytes", ErrCorruptHeader, columnCount, remaining)
	}

	cols := make([]*column.Column, 0, columnCount)
	for i := uint32(0); i < columnCount; i++ {
		col, err := readColumn(c, codec)
		if err != nil {
			return nil, fmt.Errorf("persistence: column %d: %w", i, err)
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func readColumn(c *cursor, codec uint8) (*column.Column, error) {
	nameLen, err := c.u32()
	if err != nil {
		return nil, err
	}
	typRaw, err := c.u32()
	if err != nil {
		return nil, err
	}
	chunkCount, err := c.u32()
	if err != nil {
		return nil, err
	}
	if _, err := c.bytes(4); err != nil { // padding
		return nil, err
	}

	typ := dtype.Type(typRaw)
	if !typ.IsNumeric() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidType, typRaw)
	}

	n, err := conv.Uint32ToInt(nameLen)
	if err != nil {
		return nil, err
	}
	nameBytes, err := c.bytes(n)
	if err != nil {
		return nil, err
	}
	name := string(nameBytes)
	c.align()

	// Same plausibility gate as for the column count; a chunk record is at
	// least its 24-byte header.
	if remaining := len(c.data) - c.off; int64(chunkCount)*24 > int64(remaining) {
		return nil, fmt.Errorf("%w: %d chunks claimed in %d remaining bytes", ErrCorruptHeader, chunkCount, remaining)
	}

	chunks := make([]*array.Chunk, 0, chunkCount)
	for i := uint32(0); i < chunkCount; i++ {
		chunk, err := readChunk(c, typ, codec)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
		chunks = append(chunks, chunk)
	}
	return column.New(name, typ, chunks...)
}

func readChunk(c *cursor, typ dtype.Type, codec uint8) (*array.Chunk, error) {
	var hdr chunkHeader
	var err error
	if hdr.Length, err = c.u32(); err != nil {
		return nil, err
	}
	if hdr.ValueBytes, err = c.u32(); err != nil {
		return nil, err
	}
	if hdr.ValidityBits, err = c.u32(); err != nil {
		return nil, err
	}
	if hdr.ValidityBytes, err = c.u32(); err != nil {
		return nil, err
	}
	if hdr.RawValueBytes, err = c.u32(); err != nil {
		return nil, err
	}
	if _, err = c.bytes(4); err != nil { // padding
		return nil, err
	}

	length, err := conv.Uint32ToInt(hdr.Length)
	if err != nil {
		return nil, err
	}
	width := typ.Width()
	if int(hdr.RawValueBytes) != length*width {
		return nil, fmt.Errorf("value page holds %d bytes, want %d", hdr.RawValueBytes, length*width)
	}

	stored, err := c.bytes(int(hdr.ValueBytes))
	if err != nil {
		return nil, err
	}
	c.align()

	raw, err := decodePage(codec, stored, int(hdr.RawValueBytes))
	if err != nil {
		return nil, err
	}
	buf := memory.NewBuffer(raw)
	if err := validatePageAlignment(raw, width); err != nil {
		// The page cannot be reinterpreted in place; fall back to an
		// aligned copy.
		buf = memory.NewAlignedBuffer(len(raw))
		copy(buf.Bytes(), raw)
	}

	var validity *memory.Bitmap
	vstored, err := c.bytes(int(hdr.ValidityBytes))
	if err != nil {
		return nil, err
	}
	c.align()
	if hdr.ValidityBits > 0 {
		bits, err := conv.Uint32ToInt(hdr.ValidityBits)
		if err != nil {
			return nil, err
		}
		vraw, err := decodePage(codec, vstored, (bits+7)/8)
		if err != nil {
			return nil, err
		}
		validity, err = memory.NewBitmap(memory.NewBuffer(vraw), bits)
		if err != nil {
			return nil, err
		}
	}

	return array.NewChunk(typ, buf, validity, 0, length)
}

// ReadColumns reads a column file from r. Decoded chunk buffers are owned
// by the returned columns.
func ReadColumns(r io.Reader) ([]*column.Column, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseColumns(data)
}

// File is a memory-mapped column file. For uncompressed files the returned
// columns' value buffers alias the mapping directly; they become invalid
// once the file is closed.
type File struct {
	m    *mmap.Mapping
	cols []*column.Column
}

// Open memory-maps the column file at path and decodes its columns.
func Open(path string) (*File, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	_ = m.Advise(mmap.AccessWillNeed)

	cols, err := parseColumns(m.Bytes())
	if err != nil {
		_ = m.Close()
		return nil, err
	}
	return &File{m: m, cols: cols}, nil
}

// Columns returns the decoded columns in file order.
func (f *File) Columns() []*column.Column {
	return f.cols
}

// Close unmaps the file. Columns obtained from an uncompressed file must
// not be used afterwards.
func (f *File) Close() error {
	return f.m.Close()
}
