package kernels

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/colgo/array"
	"github.com/hupe1980/colgo/column"
	"github.com/hupe1980/colgo/dtype"
)

const (
	signMask64 = uint64(1) << 63
	signMask32 = uint32(1) << 31
)

// orderKey64 maps the raw bit pattern of one 8-byte element onto a uint64
// whose unsigned order equals the logical order of the source type. Signed
// integers get their sign bit flipped; floats additionally need the
// magnitude bits complemented for negative values.
func orderKey64(bits uint64, typ dtype.Type) uint64 {
	switch {
	case typ.IsFloat():
		if bits&signMask64 != 0 {
			return ^bits
		}
		return bits | signMask64
	case typ.IsSigned():
		return bits ^ signMask64
	default:
		return bits
	}
}

func orderKey32(bits uint32, typ dtype.Type) uint32 {
	switch {
	case typ.IsFloat():
		if bits&signMask32 != 0 {
			return ^bits
		}
		return bits | signMask32
	case typ.IsSigned():
		return bits ^ signMask32
	default:
		return bits
	}
}

// bitKeys extracts one uint64 per row from the column's bit-pattern view,
// widening 4-byte patterns. When normalize is set the keys are
// order-preserving; otherwise they are the raw bit patterns. valid[i] is
// false for null rows, whose key is meaningless.
//
// Chunks are processed in parallel: each goroutine writes a disjoint region
// of the output, and all source state is immutable during extraction.
func bitKeys(ctx context.Context, col *column.Column, normalize bool) (keys []uint64, valid []bool, err error) {
	bp, err := column.BitPattern(col)
	if err != nil {
		return nil, nil, err
	}

	keys = make([]uint64, col.Len())
	valid = make([]bool, col.Len())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	start := 0
	for i := 0; i < bp.NumChunks(); i++ {
		chunk := bp.Chunk(i)
		base := start
		start += chunk.Len()

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			switch bp.Type() {
			case dtype.Uint64:
				vals := array.Values[uint64](chunk)
				for j, bits := range vals {
					if normalize {
						bits = orderKey64(bits, col.Type())
					}
					keys[base+j] = bits
					valid[base+j] = !chunk.IsNull(j)
				}
			case dtype.Uint32:
				vals := array.Values[uint32](chunk)
				for j, bits := range vals {
					if normalize {
						bits = orderKey32(bits, col.Type())
					}
					keys[base+j] = uint64(bits)
					valid[base+j] = !chunk.IsNull(j)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return keys, valid, nil
}
