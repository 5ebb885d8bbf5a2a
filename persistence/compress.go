package persistence

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Page codecs. Zstd uses shared encoder/decoder instances (they are
// concurrency-safe via EncodeAll/DecodeAll); LZ4 uses block compression.

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic(fmt.Sprintf("persistence: zstd encoder: %v", err))
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic(fmt.Sprintf("persistence: zstd decoder: %v", err))
	}
}

// encodePage compresses one page with the given codec. For
// CompressionNone the input is returned unchanged.
func encodePage(codec uint8, data []byte) ([]byte, error) {
	switch codec {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, nil), nil
	case CompressionLZ4:
		compressed := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, compressed, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compression failed: %w", err)
		}
		if n == 0 || n >= len(data) {
			// Incompressible block; stored raw. decodePage tells the two
			// cases apart by comparing stored size against raw size.
			return data, nil
		}
		return compressed[:n], nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidCompression, codec)
	}
}

// decodeHintCap bounds the preallocation derived from a page header's raw
// size. The header is untrusted, so the decoder starts from a modest buffer
// and grows to the size the stream actually decodes to.
const decodeHintCap = 1 << 20

// lz4MaxRatio is the maximum expansion an lz4 block can encode, roughly 255
// output bytes per input byte of run-length extension.
const lz4MaxRatio = 255

// decodePage decompresses one page into a buffer of exactly rawSize bytes.
func decodePage(codec uint8, stored []byte, rawSize int) ([]byte, error) {
	switch codec {
	case CompressionNone:
		return stored, nil
	case CompressionZstd:
		out, err := zstdDecoder.DecodeAll(stored, make([]byte, 0, min(rawSize, decodeHintCap)))
		if err != nil {
			return nil, fmt.Errorf("zstd decompression failed: %w", err)
		}
		if len(out) != rawSize {
			return nil, fmt.Errorf("zstd page decoded to %d bytes, want %d", len(out), rawSize)
		}
		return out, nil
	case CompressionLZ4:
		if len(stored) == rawSize {
			// Stored raw because the block was incompressible.
			return stored, nil
		}
		if rawSize > len(stored)*lz4MaxRatio+16 {
			return nil, fmt.Errorf("lz4 page claims %d raw bytes from %d stored", rawSize, len(stored))
		}
		out := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(stored, out)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		if n != rawSize {
			return nil, fmt.Errorf("lz4 page decoded to %d bytes, want %d", n, rawSize)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidCompression, codec)
	}
}
