// Package geotiff decodes GeoTIFF raster files for random-access sample
// lookup. It reads the TIFF header, the first image file directory (IFD),
// the raster data (strip- or tile-organized, uncompressed), and the nested
// GeoKey directory. It is primarily used by elevation-lookup applications
// that need individual pixel values rather than a full imaging toolkit.
package geotiff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
)

// head represents the TIFF file header information.
type head struct {
	byteOrder binary.ByteOrder
	ifdOffset uint32
}

// IFDEntry is a single entry in an image file directory.
type IFDEntry struct {
	Tag         Tag
	FType       fieldType
	Count       uint32
	ValueOffset uint32 // raw 4-byte value field, meaningful when the value is out-of-line
	Value       tagData
}

// IFD is an image file directory: an entry count and the entries that
// decoded successfully, in on-disk order. Duplicate tags are not merged.
type IFD struct {
	Count   uint16
	Entries []IFDEntry
}

// get returns the first entry carrying tag, following on-disk order.
func (ifd *IFD) get(tag Tag) (*IFDEntry, bool) {
	for i := range ifd.Entries {
		if ifd.Entries[i].Tag == tag {
			return &ifd.Entries[i], true
		}
	}
	return nil, false
}

// firstUint returns the first value of tag as an unsigned integer.
func (ifd *IFD) firstUint(tag Tag) (uint64, bool) {
	e, ok := ifd.get(tag)
	if !ok {
		return 0, false
	}
	return e.Value.firstUint()
}

// uintValues returns all values of tag widened to uint64.
func (ifd *IFD) uintValues(tag Tag) ([]uint64, bool) {
	e, ok := ifd.get(tag)
	if !ok {
		return nil, false
	}
	return e.Value.uintValues()
}

// TIFF is a fully decoded GeoTIFF file: its directories (only the first is
// populated) and the reconstructed raster. It is immutable once built and
// safe to share across goroutines.
type TIFF struct {
	ifds  []*IFD
	image [][][]uint64 // rows x columns x samples per pixel
}

// Directory returns the first (and only decoded) IFD.
func (t *TIFF) Directory() *IFD {
	return t.ifds[0]
}

// Image returns the reconstructed sample array, indexed [row][col][sample].
func (t *TIFF) Image() [][][]uint64 {
	return t.image
}

// Width returns the raster width in pixels.
func (t *TIFF) Width() int {
	if len(t.image) == 0 {
		return 0
	}
	return len(t.image[0])
}

// Length returns the raster height in pixels.
func (t *TIFF) Length() int {
	return len(t.image)
}

// ValueAt returns the first sample at column x, row y.
func (t *TIFF) ValueAt(x, y int) (uint64, error) {
	if y < 0 || y >= len(t.image) || x < 0 || x >= len(t.image[y]) {
		return 0, fmt.Errorf("pixel (%d, %d) lies outside the image", x, y)
	}
	return t.image[y][x][0], nil
}

func (t *TIFF) String() string {
	var sb strings.Builder
	samples := 0
	if t.Length() > 0 && t.Width() > 0 {
		samples = len(t.image[0][0])
	}
	fmt.Fprintf(&sb, "TIFF(Image size: [%d, %d, %d]", t.Length(), t.Width(), samples)
	for _, ifd := range t.ifds {
		fmt.Fprintf(&sb, ", Directory(%d entries):", ifd.Count)
		for _, e := range ifd.Entries {
			fmt.Fprintf(&sb, " %s=%s", e.Tag, e.Value.String())
		}
	}
	sb.WriteString(")")
	return sb.String()
}

// readHeader reads the byte-order marker, the magic number and the offset to
// the first IFD. Everything decoded after it goes through the returned byte
// order.
func readHeader(r io.Reader) (head, error) {
	var h head

	var orderMarker uint16
	if err := binary.Read(r, binary.BigEndian, &orderMarker); err != nil {
		return h, err
	}
	switch orderMarker {
	case littleEndian:
		h.byteOrder = binary.LittleEndian
	case bigEndian:
		h.byteOrder = binary.BigEndian
	default:
		return h, errors.New("invalid byte order")
	}

	var magic uint16
	if err := binary.Read(r, h.byteOrder, &magic); err != nil {
		return h, err
	}
	if magic != tiffMagic {
		return h, fmt.Errorf("invalid tiff magic: %d", magic)
	}

	if err := binary.Read(r, h.byteOrder, &h.ifdOffset); err != nil {
		return h, err
	}
	return h, nil
}

// decodeIFD reads the directory at ifdOffset: a 16-bit entry count followed
// by 12-byte entries. Entries with an unrecognized tag or type, or whose
// value cannot be read, are logged and dropped; the rest of the directory is
// still decoded.
func decodeIFD(r io.ReadSeeker, order binary.ByteOrder, ifdOffset uint32) (*IFD, error) {
	if _, err := r.Seek(int64(ifdOffset), io.SeekStart); err != nil {
		return nil, err
	}

	var count uint16
	if err := binary.Read(r, order, &count); err != nil {
		return nil, fmt.Errorf("failed to read IFD entry count: %w", err)
	}

	ifd := &IFD{
		Count:   count,
		Entries: make([]IFDEntry, 0, count),
	}

	entriesStart := ifdOffset + 2
	for i := 0; i < int(count); i++ {
		entry, err := decodeEntry(r, order, entriesStart, i)
		if err != nil {
			log.Printf("geotiff: invalid directory entry at index %d: %v", i, err)
			continue
		}
		ifd.Entries = append(ifd.Entries, entry)
	}
	return ifd, nil
}

// decodeEntry reads the 12-byte entry record number n and its value bytes.
// Values whose total size fits in 4 bytes live inline in the record's value
// field; larger values live at the absolute offset the field holds.
func decodeEntry(r io.ReadSeeker, order binary.ByteOrder, entriesStart uint32, n int) (IFDEntry, error) {
	var entry IFDEntry

	entryOffset := int64(entriesStart) + 12*int64(n)
	if _, err := r.Seek(entryOffset, io.SeekStart); err != nil {
		return entry, err
	}

	var rawTag, rawType uint16
	var count, valueOffset uint32
	if err := binary.Read(r, order, &rawTag); err != nil {
		return entry, err
	}
	if err := binary.Read(r, order, &rawType); err != nil {
		return entry, err
	}
	if err := binary.Read(r, order, &count); err != nil {
		return entry, err
	}
	if err := binary.Read(r, order, &valueOffset); err != nil {
		return entry, err
	}

	tag, ok := decodeTag(rawTag)
	if !ok {
		return entry, fmt.Errorf("unrecognized tag %#04x", rawTag)
	}
	ftype := fieldType(rawType)
	typeSize := ftype.bytes()
	if typeSize == 0 {
		return entry, fmt.Errorf("unrecognized field type %d for tag %s", rawType, tag)
	}

	totalSize := int64(count) * int64(typeSize)
	raw := make([]byte, totalSize)
	if totalSize <= 4 {
		// Inline value: re-seek to the record's own value field.
		if _, err := r.Seek(entryOffset+8, io.SeekStart); err != nil {
			return entry, err
		}
	} else {
		if _, err := r.Seek(int64(valueOffset), io.SeekStart); err != nil {
			return entry, err
		}
	}
	if _, err := io.ReadFull(r, raw); err != nil {
		return entry, fmt.Errorf("failed to read value for tag %s: %w", tag, err)
	}

	entry = IFDEntry{
		Tag:         tag,
		FType:       ftype,
		Count:       count,
		ValueOffset: valueOffset,
		Value:       decodeValue(raw, ftype, order),
	}
	return entry, nil
}
