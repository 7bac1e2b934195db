package geotiff

import (
	"context"
	"fmt"
	"io"

	"gocloud.dev/blob"
)

// BlobReader reads a raster stored in a cloud bucket (S3, GCS, Azure, or the
// in-memory/file drivers) through gocloud.dev/blob, satisfying io.ReadSeeker
// and io.ReaderAt via range reads.
type BlobReader struct {
	remoteReader
	ctx    context.Context
	bucket *blob.Bucket
	key    string
}

// NewBlobReader creates a reader for one blob in a bucket. The blob's
// attributes are fetched up front to learn its size and confirm existence.
func NewBlobReader(ctx context.Context, bucket *blob.Bucket, key string) (*BlobReader, error) {
	attrs, err := bucket.Attributes(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get attributes for key %s: %w", key, err)
	}

	b := &BlobReader{
		ctx:    ctx,
		bucket: bucket,
		key:    key,
	}
	b.remoteReader = remoteReader{size: attrs.Size, fetchAt: b.fetchRange}
	return b, nil
}

func (b *BlobReader) fetchRange(p []byte, off int64) (int, error) {
	reader, err := b.bucket.NewRangeReader(b.ctx, b.key, off, int64(len(p)), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create range reader: %w", err)
	}
	defer reader.Close()

	return io.ReadFull(reader, p)
}
