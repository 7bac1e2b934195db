package geotiff

import (
	"bytes"
	"encoding/binary"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp"
)

func TestSingleTileEqualsStrip(t *testing.T) {
	c := qt.New(t)

	pixels := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}

	stripped, err := Read(bytes.NewReader(stripFixture(binary.LittleEndian, 3, 3, pixels).build()))
	c.Assert(err, qt.IsNil)

	// One tile covering the whole image, no overhang.
	tiled, err := Read(bytes.NewReader(tileFixture(binary.LittleEndian, 3, 3, 3, 3, [][]byte{pixels}).build()))
	c.Assert(err, qt.IsNil)

	if diff := cmp.Diff(stripped.Image(), tiled.Image()); diff != "" {
		t.Errorf("tiled raster differs from strip raster (-strip +tile):\n%s", diff)
	}
}

func TestTileRowsAnchorFromBottom(t *testing.T) {
	c := qt.New(t)

	// Four 1x1 tiles over a 2x2 image. The first stored tile row lands at
	// the bottom of the image, so storage order [a b c d] reads back with
	// the rows swapped.
	tiles := [][]byte{{0xa}, {0xb}, {0xc}, {0xd}}
	tiff, err := Read(bytes.NewReader(tileFixture(binary.LittleEndian, 2, 2, 1, 1, tiles).build()))
	c.Assert(err, qt.IsNil)

	img := tiff.Image()
	c.Assert(img[1][0][0], qt.Equals, uint64(0xa))
	c.Assert(img[1][1][0], qt.Equals, uint64(0xb))
	c.Assert(img[0][0][0], qt.Equals, uint64(0xc))
	c.Assert(img[0][1][0], qt.Equals, uint64(0xd))
}

func TestTileOverhangDiscarded(t *testing.T) {
	c := qt.New(t)

	// 3x3 image covered by 2x2 tiles: the right column and one tile row of
	// every edge tile overhang the image and must be consumed but dropped.
	tiles := [][]byte{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	tiff, err := Read(bytes.NewReader(tileFixture(binary.LittleEndian, 3, 3, 2, 2, tiles).build()))
	c.Assert(err, qt.IsNil)

	img := tiff.Image()
	c.Assert(len(img), qt.Equals, 3)
	for y := range img {
		c.Assert(len(img[y]), qt.Equals, 3)
		for x := range img[y] {
			c.Assert(len(img[y][x]), qt.Equals, 1)
		}
	}

	// Expected placement with bottom-anchored tile rows, computed by hand
	// from the storage layout.
	want := [3][3]uint64{
		{9, 10, 13},
		{11, 12, 15},
		{1, 2, 5},
	}
	for y := range want {
		for x := range want[y] {
			c.Assert(img[y][x][0], qt.Equals, want[y][x], qt.Commentf("pixel (%d, %d)", x, y))
		}
	}
}

func TestWideSamples(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		t.Run(orderName(order), func(t *testing.T) {
			c := qt.New(t)

			f := newFixture(order)
			f.raster = f.shorts(0x0102, 0x0304, 0x0506, 0x0708)
			f.addShort(ImageWidth, 2)
			f.addShort(ImageLength, 2)
			f.addShort(BitsPerSample, 16)
			f.addLong(StripOffsets, fixtureRasterOffset)
			f.addLong(StripByteCounts, uint32(len(f.raster)))

			tiff, err := Read(bytes.NewReader(f.build()))
			c.Assert(err, qt.IsNil)

			img := tiff.Image()
			c.Assert(img[0][0][0], qt.Equals, uint64(0x0102))
			c.Assert(img[0][1][0], qt.Equals, uint64(0x0304))
			c.Assert(img[1][0][0], qt.Equals, uint64(0x0506))
			c.Assert(img[1][1][0], qt.Equals, uint64(0x0708))
		})
	}
}

func TestInterleavedSamples(t *testing.T) {
	c := qt.New(t)

	// Two samples per pixel, chunky interleaving.
	f := stripFixture(binary.LittleEndian, 2, 1, []byte{1, 2, 3, 4})
	f.addShort(SamplesPerPixel, 2)

	tiff, err := Read(bytes.NewReader(f.build()))
	c.Assert(err, qt.IsNil)

	img := tiff.Image()
	c.Assert(img[0][0], qt.DeepEquals, []uint64{1, 2})
	c.Assert(img[0][1], qt.DeepEquals, []uint64{3, 4})
}

func TestStripDataExceedingBounds(t *testing.T) {
	c := qt.New(t)

	// Six pixels of data for a four pixel image.
	f := stripFixture(binary.LittleEndian, 2, 2, []byte{1, 2, 3, 4, 5, 6})

	_, err := Read(bytes.NewReader(f.build()))
	c.Assert(err, qt.ErrorMatches, ".*exceeds image bounds.*")
}

func TestDecodeSampleWidths(t *testing.T) {
	c := qt.New(t)

	v, err := decodeSample(binary.BigEndian, []byte{0x01})
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, uint64(1))

	v, err = decodeSample(binary.BigEndian, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, uint64(0x0102030405060708))

	_, err = decodeSample(binary.BigEndian, []byte{1, 2, 3})
	c.Assert(err, qt.ErrorMatches, "unsupported sample width: 3 bytes")
}
