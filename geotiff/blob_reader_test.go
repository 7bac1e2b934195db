package geotiff

import (
	"context"
	"encoding/binary"
	"testing"

	qt "github.com/frankban/quicktest"
	"gocloud.dev/blob/memblob"
)

func TestBlobReaderDecode(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	data := stripFixture(binary.LittleEndian, 2, 2, []byte{7, 8, 9, 10}).build()
	c.Assert(bucket.WriteAll(ctx, "dem/fixture.tif", data, nil), qt.IsNil)

	r, err := NewBlobReader(ctx, bucket, "dem/fixture.tif")
	c.Assert(err, qt.IsNil)

	tiff, err := Read(r)
	c.Assert(err, qt.IsNil)
	v, err := tiff.ValueAt(0, 1)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, uint64(9))
}

func TestBlobReaderMissingKey(t *testing.T) {
	c := qt.New(t)

	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	_, err := NewBlobReader(context.Background(), bucket, "absent.tif")
	c.Assert(err, qt.ErrorMatches, ".*failed to get attributes.*")
}
