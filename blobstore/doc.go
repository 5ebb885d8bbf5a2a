// Package blobstore provides storage abstraction for immutable column
// files and dataset manifests.
//
// BlobStore is the interface for reading and writing data blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with mmap-backed reads
//   - MemoryStore: in-memory store for tests
//   - CachingStore: block-level read cache in front of any store
//   - minio.Store: MinIO and S3-compatible object storage
//   - s3.Store: Amazon S3 with range reads and streaming uploads
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom backends. For
// cloud backends, ReadRange enables efficient partial reads; local
// backends can additionally implement Mappable for zero-copy access.
package blobstore
