package persistence

import "errors"

const (
	// MagicNumber identifies colgo column files (ASCII: "CGO1")
	MagicNumber = 0x43474F31
	// Version is the current file format version (v1.0.0)
	Version = 0x00010000

	// Compression codecs
	CompressionNone = 0
	CompressionZstd = 1
	CompressionLZ4  = 2

	// pageAlign is the alignment of every uncompressed value page.
	// Aligning to the widest native element width keeps memory-mapped
	// pages directly reinterpretable as typed slices.
	pageAlign = 8
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrInvalidCompression = errors.New("invalid compression codec")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrCorruptHeader      = errors.New("corrupt header")
	ErrInvalidType        = errors.New("invalid element type")
)

// FileHeader is the 64-byte header at the start of every column file.
// Layout optimized for mmap compatibility and cache alignment.
type FileHeader struct {
	Magic       uint32 // 0x43474F31 ("CGO1")
	Version     uint32 // File format version
	Compression uint8  // 0=None, 1=Zstd, 2=LZ4
	Padding1    [3]byte
	ColumnCount uint32
	RowCount    uint64   // Total rows per column
	Reserved    [40]byte // Future use
}

// columnHeader precedes each column's chunk pages.
type columnHeader struct {
	NameLen    uint32
	Type       uint32 // dtype.Type
	ChunkCount uint32
	Padding    [4]byte
}

// chunkHeader precedes each chunk's pages.
type chunkHeader struct {
	Length        uint32 // Logical element count
	ValueBytes    uint32 // Stored (possibly compressed) value page size
	ValidityBits  uint32 // Validity bitmap coverage in bits; 0 = no bitmap
	ValidityBytes uint32 // Stored (possibly compressed) validity page size
	RawValueBytes uint32 // Uncompressed value page size
	Padding       [4]byte
}
