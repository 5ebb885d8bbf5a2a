// Package minio implements blobstore.BlobStore for MinIO and other
// S3-compatible object storage.
//
// Column files are written with streaming uploads and read with ranged
// GETs, so neither direction needs the whole file in memory.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store := miniostore.NewStore(client, "datasets", "warehouse/")
package minio
