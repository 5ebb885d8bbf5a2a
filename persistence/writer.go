package persistence

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/colgo/column"
	"github.com/hupe1980/colgo/internal/bitutil"
	"github.com/hupe1980/colgo/internal/conv"
)

// WriteOptions controls column-file encoding.
type WriteOptions struct {
	// Compression selects the page codec: CompressionNone (default),
	// CompressionZstd, or CompressionLZ4. Only uncompressed files support
	// zero-copy memory-mapped loads.
	Compression uint8
}

var zeroPad [pageAlign]byte

// WriteColumns writes cols into w in column-file format. All columns must
// have the same total length. The file ends with a CRC32 trailer covering
// everything before it.
func WriteColumns(w io.Writer, cols []*column.Column, opts WriteOptions) error {
	if len(cols) == 0 {
		return fmt.Errorf("persistence: no columns to write")
	}
	if opts.Compression > CompressionLZ4 {
		return fmt.Errorf("%w: %d", ErrInvalidCompression, opts.Compression)
	}
	rows := cols[0].Len()
	for _, c := range cols[1:] {
		if c.Len() != rows {
			return fmt.Errorf("persistence: column %q has %d rows, want %d", c.Name(), c.Len(), rows)
		}
	}

	cw := NewChecksumWriter(w)

	header := FileHeader{
		Magic:       MagicNumber,
		Version:     Version,
		Compression: opts.Compression,
		ColumnCount: uint32(len(cols)),
		RowCount:    uint64(rows),
	}
	if err := binary.Write(cw, binary.LittleEndian, &header); err != nil {
		return err
	}

	for _, c := range cols {
		if err := writeColumn(cw, c, opts.Compression); err != nil {
			return fmt.Errorf("persistence: column %q: %w", c.Name(), err)
		}
	}

	// Trailer checksum, excluded from its own computation.
	return binary.Write(w, binary.LittleEndian, cw.Sum())
}

func writeColumn(cw *ChecksumWriter, c *column.Column, codec uint8) error {
	name := []byte(c.Name())
	nameLen, err := conv.IntToUint32(len(name))
	if err != nil {
		return err
	}

	ch := columnHeader{
		NameLen:    nameLen,
		Type:       uint32(c.Type()),
		ChunkCount: uint32(c.NumChunks()),
	}
	if err := binary.Write(cw, binary.LittleEndian, &ch); err != nil {
		return err
	}
	if _, err := cw.Write(name); err != nil {
		return err
	}
	if err := pad(cw); err != nil {
		return err
	}

	width := c.Type().Width()
	for i := 0; i < c.NumChunks(); i++ {
		chunk := c.Chunk(i)

		raw := chunk.Buffer().Bytes()[chunk.Offset()*width : (chunk.Offset()+chunk.Len())*width]
		stored, err := encodePage(codec, raw)
		if err != nil {
			return err
		}

		// Validity bits are rebased to the chunk window so readers can
		// reconstruct the chunk at offset zero.
		var vraw []byte
		validityBits := uint32(0)
		if chunk.Validity() != nil {
			vraw = make([]byte, bitutil.BytesForBits(chunk.Len()))
			for j := 0; j < chunk.Len(); j++ {
				if !chunk.IsNull(j) {
					bitutil.Set(vraw, j)
				}
			}
			validityBits = uint32(chunk.Len())
		}
		var vstored []byte
		if validityBits > 0 {
			vstored, err = encodePage(codec, vraw)
			if err != nil {
				return err
			}
		}

		hdr := chunkHeader{
			Length:        uint32(chunk.Len()),
			ValueBytes:    uint32(len(stored)),
			ValidityBits:  validityBits,
			ValidityBytes: uint32(len(vstored)),
			RawValueBytes: uint32(len(raw)),
		}
		if err := binary.Write(cw, binary.LittleEndian, &hdr); err != nil {
			return err
		}
		if _, err := cw.Write(stored); err != nil {
			return err
		}
		if err := pad(cw); err != nil {
			return err
		}
		if _, err := cw.Write(vstored); err != nil {
			return err
		}
		if err := pad(cw); err != nil {
			return err
		}
	}
	return nil
}

// pad advances the writer to the next page boundary.
func pad(cw *ChecksumWriter) error {
	if rem := int(cw.BytesWritten() % pageAlign); rem != 0 {
		if _, err := cw.Write(zeroPad[:pageAlign-rem]); err != nil {
			return err
		}
	}
	return nil
}

// SaveToFile writes cols to filename atomically: the data goes to a temp
// file in the same directory, is synced, and then renamed over the target.
func SaveToFile(filename string, cols []*column.Column, opts WriteOptions) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	_ = tmp.Chmod(0644)

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := WriteColumns(buf, cols, opts); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	// Success: prevent deferred cleanup from removing the final file.
	tmpName = ""
	return nil
}
