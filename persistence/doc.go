// Package persistence implements the binary column-file format: a
// little-endian container holding the chunks of one or more columns, with
// per-page compression, CRC32 integrity, and a JSON dataset manifest.
//
// Uncompressed files are laid out so that every value page starts at an
// 8-byte-aligned offset, which lets the reader memory-map a file and hand
// out chunk buffers that alias the mapping directly (zero-copy load).
// Compressed pages are decoded into fresh buffers instead.
package persistence
