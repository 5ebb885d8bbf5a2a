package cache

import "context"

// Key identifies one fixed-size block of a named blob. Keys must be
// stable across processes: blobs are immutable, so (path, block) fully
// determines the bytes.
type Key struct {
	// Path names the source blob, e.g. a column-file name.
	Path string
	// Block is the block index within the blob.
	Block uint64
}

// BlockCache is a byte-oriented cache for immutable blocks.
// Returned slices must be treated as read-only.
type BlockCache interface {
	// Get returns a cached block. ok=false if missing.
	Get(ctx context.Context, key Key) (b []byte, ok bool)
	// Set caches a block. Implementations may copy or retain; the caller
	// must treat b as immutable afterwards.
	Set(ctx context.Context, key Key, b []byte)
	// Invalidate removes entries matching the predicate.
	Invalidate(predicate func(key Key) bool)
	// Close releases any resources.
	Close() error
	// Stats returns hit/miss counters.
	Stats() (hits, misses int64)
}
