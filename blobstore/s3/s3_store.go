package s3

import (
	"context"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/hupe1980/colgo/blobstore"
	"github.com/hupe1980/colgo/internal/resource"
)

// Options configure the S3 store.
type Options struct {
	// Prefix is prepended to all keys (e.g. "warehouse/").
	Prefix string
	// Region overrides the region from the ambient AWS config.
	Region string
	// Controller bounds upload concurrency and IO throughput. Nil
	// means unlimited.
	Controller *resource.Controller
	// Upload tunes the multipart uploader.
	Upload UploadConfig
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) func(*Options) {
	return func(o *Options) { o.Prefix = prefix }
}

// WithRegion sets the AWS region.
func WithRegion(region string) func(*Options) {
	return func(o *Options) { o.Region = region }
}

// WithController sets the resource controller.
func WithController(rc *resource.Controller) func(*Options) {
	return func(o *Options) { o.Controller = rc }
}

// WithUploadConfig sets the multipart upload tuning.
func WithUploadConfig(cfg UploadConfig) func(*Options) {
	return func(o *Options) { o.Upload = cfg }
}

// Store implements blobstore.BlobStore for Amazon S3.
type Store struct {
	client    Client
	bucket    string
	prefix    string
	rc        *resource.Controller
	uploadCfg UploadConfig
}

// New creates an S3 store using the ambient AWS configuration
// (environment, shared config files, instance metadata).
func New(ctx context.Context, bucket string, optFns ...func(*Options)) (*Store, error) {
	opts := Options{Upload: DefaultUploadConfig()}
	for _, fn := range optFns {
		fn(&opts)
	}

	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	return NewStore(s3.NewFromConfig(cfg), bucket, optFns...), nil
}

// NewStore creates an S3 store with an injected client.
func NewStore(client Client, bucket string, optFns ...func(*Options)) *Store {
	opts := Options{Upload: DefaultUploadConfig()}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Store{
		client:    client,
		bucket:    bucket,
		prefix:    opts.Prefix,
		rc:        opts.Controller,
		uploadCfg: opts.Upload,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open opens a blob for reading.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	return openBlob(ctx, s.client, s.bucket, s.key(name), s.rc)
}

// Create starts a streaming multipart upload. The blob only becomes
// visible once Close returns nil. A configured controller bounds how
// many uploads run at once.
func (s *Store) Create(ctx context.Context, name string) (blobstore.WritableBlob, error) {
	if err := s.rc.AcquireUpload(ctx); err != nil {
		return nil, err
	}
	return newStreamingWritableBlob(ctx, s, s.key(name)), nil
}

// Put writes a blob in a single request with CRC32C validation.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	if err := s.rc.AcquireIO(ctx, len(data)); err != nil {
		return err
	}
	return putWithChecksum(ctx, s.client, s.bucket, s.key(name), data)
}

// Delete removes a blob.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	return err
}

// List returns all blob names with the given prefix, sorted.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	return listObjects(ctx, s.client, s.bucket, s.key(prefix), s.prefix)
}
