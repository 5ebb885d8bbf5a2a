package kernels

import (
	"context"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/hupe1980/colgo/column"
)

// nullHash is the hash assigned to null rows. Any fixed value works as long
// as it is the same for every null, so nulls group together.
const nullHash = 0x9e3779b97f4a7c15

// HashColumn returns one 64-bit hash per row, computed with xxhash over the
// row's raw bit pattern. Rows that are bit-identical hash identically
// regardless of the column's logical type; null rows all receive nullHash.
func HashColumn(ctx context.Context, col *column.Column) ([]uint64, error) {
	keys, valid, err := bitKeys(ctx, col, false)
	if err != nil {
		return nil, err
	}
	return hashKeys(keys, valid), nil
}

func hashKeys(keys []uint64, valid []bool) []uint64 {
	hashes := make([]uint64, len(keys))
	var buf [8]byte
	for i, k := range keys {
		if !valid[i] {
			hashes[i] = nullHash
			continue
		}
		binary.LittleEndian.PutUint64(buf[:], k)
		hashes[i] = xxhash.Sum64(buf[:])
	}
	return hashes
}

// CombineHashes folds b into a, for building multi-column keys. The mixing
// constant and shifts follow the usual hash_combine recipe.
func CombineHashes(a, b uint64) uint64 {
	a ^= b + 0x9e3779b97f4a7c15 + (a << 12) + (a >> 4)
	return a
}
