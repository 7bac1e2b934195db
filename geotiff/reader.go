package geotiff

import (
	"fmt"
	"io"
	"os"
)

// Open decodes the GeoTIFF file at path. The whole raster is reconstructed
// eagerly, so the file is closed before Open returns.
func Open(path string) (*TIFF, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a GeoTIFF from any seekable byte source. The source is owned
// exclusively by the decode for its duration; every read step repositions the
// cursor with an absolute seek, so the jumps between directory records and
// out-of-line value blobs never depend on sequential continuation.
func Read(r io.ReadSeeker) (*TIFF, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read tiff header: %w", err)
	}

	ifd, err := decodeIFD(r, h.byteOrder, h.ifdOffset)
	if err != nil {
		return nil, fmt.Errorf("failed to decode directory: %w", err)
	}

	image, err := reconstructRaster(r, h.byteOrder, ifd)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct raster: %w", err)
	}

	// Subsequent IFDs (multi-image TIFFs) are intentionally not traversed.
	return &TIFF{
		ifds:  []*IFD{ifd},
		image: image,
	}, nil
}
