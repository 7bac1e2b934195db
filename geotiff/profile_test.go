package geotiff

import (
	"bytes"
	"encoding/binary"
	"testing"

	qt "github.com/frankban/quicktest"
)

func profileTestTIFF(c *qt.C) *TIFF {
	// 4x4 gradient, value = y*4 + x.
	pixels := make([]byte, 16)
	for i := range pixels {
		pixels[i] = byte(i)
	}
	tiff, err := Read(bytes.NewReader(stripFixture(binary.LittleEndian, 4, 4, pixels).build()))
	c.Assert(err, qt.IsNil)
	return tiff
}

func TestProfileHorizontal(t *testing.T) {
	c := qt.New(t)
	tiff := profileTestTIFF(c)

	got, err := tiff.Profile([][2]int{{0, 1}, {3, 1}})
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, []ProfilePoint{
		{X: 0, Y: 1, Value: 4},
		{X: 1, Y: 1, Value: 5},
		{X: 2, Y: 1, Value: 6},
		{X: 3, Y: 1, Value: 7},
	})
}

func TestProfileSharedWaypoint(t *testing.T) {
	c := qt.New(t)
	tiff := profileTestTIFF(c)

	// The corner pixel (2, 0) ends the first segment and starts the
	// second; it must appear once.
	got, err := tiff.Profile([][2]int{{0, 0}, {2, 0}, {2, 2}})
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, []ProfilePoint{
		{X: 0, Y: 0, Value: 0},
		{X: 1, Y: 0, Value: 1},
		{X: 2, Y: 0, Value: 2},
		{X: 2, Y: 1, Value: 6},
		{X: 2, Y: 2, Value: 10},
	})
}

func TestProfileSkipsOutOfBounds(t *testing.T) {
	c := qt.New(t)
	tiff := profileTestTIFF(c)

	got, err := tiff.Profile([][2]int{{2, 3}, {2, 5}})
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, []ProfilePoint{
		{X: 2, Y: 3, Value: 14},
	})
}

func TestProfileErrors(t *testing.T) {
	c := qt.New(t)
	tiff := profileTestTIFF(c)

	_, err := tiff.Profile([][2]int{{0, 0}})
	c.Assert(err, qt.ErrorMatches, "at least two points.*")

	_, err = tiff.Profile([][2]int{{10, 10}, {12, 12}})
	c.Assert(err, qt.ErrorMatches, "no profile points fall inside.*")
}
