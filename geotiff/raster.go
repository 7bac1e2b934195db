package geotiff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// geometry carries the tag-derived shape of the raster.
type geometry struct {
	imageWidth      int
	imageLength     int
	bytesPerSample  int
	samplesPerPixel int
}

func readGeometry(ifd *IFD) (geometry, error) {
	var g geometry

	width, ok := ifd.firstUint(ImageWidth)
	if !ok {
		return g, errors.New("missing or invalid tag: ImageWidth")
	}
	length, ok := ifd.firstUint(ImageLength)
	if !ok {
		return g, errors.New("missing or invalid tag: ImageLength")
	}
	bits, ok := ifd.firstUint(BitsPerSample)
	if !ok {
		return g, errors.New("missing or invalid tag: BitsPerSample")
	}
	g.imageWidth = int(width)
	g.imageLength = int(length)
	g.bytesPerSample = int(bits / 8)
	if g.bytesPerSample == 0 {
		return g, fmt.Errorf("unsupported bits per sample: %d", bits)
	}

	g.samplesPerPixel = 1
	if spp, ok := ifd.firstUint(SamplesPerPixel); ok && spp > 0 {
		g.samplesPerPixel = int(spp)
	}
	return g, nil
}

// newSampleArray allocates the rows x columns x samples output array.
func (g geometry) newSampleArray() [][][]uint64 {
	img := make([][][]uint64, g.imageLength)
	for y := range img {
		img[y] = make([][]uint64, g.imageWidth)
		for x := range img[y] {
			img[y][x] = make([]uint64, g.samplesPerPixel)
		}
	}
	return img
}

// decodeSample reads one unsigned integer sample from a 1/2/4/8 byte chunk.
// Any other width is a hard failure; samples are always widened to uint64.
func decodeSample(order binary.ByteOrder, chunk []byte) (uint64, error) {
	switch len(chunk) {
	case 1:
		return uint64(chunk[0]), nil
	case 2:
		return uint64(order.Uint16(chunk)), nil
	case 4:
		return uint64(order.Uint32(chunk)), nil
	case 8:
		return order.Uint64(chunk), nil
	default:
		return 0, fmt.Errorf("unsupported sample width: %d bytes", len(chunk))
	}
}

// reconstructRaster picks the storage layout from the tags that are present:
// strips when both StripOffsets and StripByteCounts exist, tiles otherwise.
func reconstructRaster(r io.ReadSeeker, order binary.ByteOrder, ifd *IFD) ([][][]uint64, error) {
	g, err := readGeometry(ifd)
	if err != nil {
		return nil, err
	}

	stripOffsets, haveOffsets := ifd.uintValues(StripOffsets)
	stripCounts, haveCounts := ifd.uintValues(StripByteCounts)
	if haveOffsets && haveCounts {
		return readStripRaster(r, order, g, stripOffsets, stripCounts)
	}
	return readTileRaster(r, order, ifd, g)
}

// readStripRaster walks the strips in storage order, filling the output
// top-to-bottom in row-major, sample-interleaved order.
func readStripRaster(r io.ReadSeeker, order binary.ByteOrder, g geometry, offsets, byteCounts []uint64) ([][][]uint64, error) {
	if len(offsets) != len(byteCounts) {
		return nil, fmt.Errorf("strip offsets/byte counts mismatch: %d vs %d", len(offsets), len(byteCounts))
	}

	img := g.newSampleArray()
	var x, y, z int
	for i, offset := range offsets {
		if _, err := r.Seek(int64(offset), io.SeekStart); err != nil {
			return nil, err
		}
		buf := make([]byte, byteCounts[i])
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("failed to read strip %d: %w", i, err)
		}

		chunks := int(byteCounts[i]) / g.bytesPerSample
		for c := 0; c < chunks; c++ {
			if y >= g.imageLength {
				return nil, errors.New("strip data exceeds image bounds")
			}
			v, err := decodeSample(order, buf[c*g.bytesPerSample:(c+1)*g.bytesPerSample])
			if err != nil {
				return nil, err
			}
			img[y][x][z] = v
			z++
			if z >= g.samplesPerPixel {
				z = 0
				x++
			}
			if x >= g.imageWidth {
				x = 0
				y++
			}
		}
	}
	return img, nil
}

// readTileRaster walks the tile grid in storage order. Tile row 0 is placed
// at the bottom of the image; samples overhanging the right or bottom edge
// are consumed but discarded, still advancing the per-tile cursor.
func readTileRaster(r io.ReadSeeker, order binary.ByteOrder, ifd *IFD, g geometry) ([][][]uint64, error) {
	tileWidth, ok := ifd.firstUint(TileWidth)
	if !ok {
		return nil, errors.New("missing or invalid tag: TileWidth")
	}
	tileLength, ok := ifd.firstUint(TileLength)
	if !ok {
		return nil, errors.New("missing or invalid tag: TileLength")
	}
	offsets, ok := ifd.uintValues(TileOffsets)
	if !ok {
		return nil, errors.New("missing or invalid tag: TileOffsets")
	}
	byteCounts, ok := ifd.uintValues(TileByteCounts)
	if !ok {
		return nil, errors.New("missing or invalid tag: TileByteCounts")
	}
	if len(offsets) != len(byteCounts) {
		return nil, fmt.Errorf("tile offsets/byte counts mismatch: %d vs %d", len(offsets), len(byteCounts))
	}

	tw, tl := int(tileWidth), int(tileLength)
	if tw == 0 || tl == 0 {
		return nil, fmt.Errorf("invalid tile dimensions: %dx%d", tw, tl)
	}
	tilesAcross := (g.imageWidth + tw - 1) / tw
	tilesDown := (g.imageLength + tl - 1) / tl

	img := g.newSampleArray()
	for n, offset := range offsets {
		tileCol := n % tilesAcross
		tileRow := n / tilesAcross
		if tileRow >= tilesDown {
			return nil, fmt.Errorf("tile index %d outside the %dx%d tile grid", n, tilesAcross, tilesDown)
		}

		startX := tileCol * tw
		endX := (tileCol + 1) * tw
		// Tile rows are anchored from the bottom of the tile grid.
		maxY := tilesDown * tl
		startY := maxY - (tileRow+1)*tl

		if _, err := r.Seek(int64(offset), io.SeekStart); err != nil {
			return nil, err
		}
		buf := make([]byte, byteCounts[n])
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("failed to read tile %d: %w", n, err)
		}

		x, y, z := startX, startY, 0
		chunks := int(byteCounts[n]) / g.bytesPerSample
		for c := 0; c < chunks; c++ {
			inBounds := x < g.imageWidth && y < g.imageLength
			if inBounds {
				v, err := decodeSample(order, buf[c*g.bytesPerSample:(c+1)*g.bytesPerSample])
				if err != nil {
					return nil, err
				}
				img[y][x][z] = v
			}
			z++
			if z >= g.samplesPerPixel {
				z = 0
				x++
			}
			if x >= endX {
				x = startX
				y++
			}
		}
	}
	return img, nil
}
