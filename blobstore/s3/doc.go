// Package s3 provides an S3 implementation of the blobstore.BlobStore
// interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("warehouse/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
// # Features
//
//   - Range reads for efficient partial fetches of column files
//   - Streaming multipart uploads with CRC32C integrity validation
//   - Upload concurrency and IO throughput limits via a shared
//     resource.Controller
//   - DynamoDB-backed commit store for atomic manifest pointer swaps
package s3
