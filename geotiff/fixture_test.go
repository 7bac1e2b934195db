package geotiff

import (
	"bytes"
	"encoding/binary"
)

// fixtureRasterOffset is where fixture raster bytes start: directly after the
// 8-byte header, so strip and tile offsets are known before the IFD is laid
// out.
const fixtureRasterOffset = 8

type fixtureEntry struct {
	tag   uint16
	ftype fieldType
	count uint32
	data  []byte // value bytes, already in the file's byte order
}

// tiffFixture builds a synthetic TIFF in memory:
// header | raster bytes | IFD | out-of-line value blobs.
type tiffFixture struct {
	order   binary.ByteOrder
	raster  []byte
	entries []fixtureEntry
}

func newFixture(order binary.ByteOrder) *tiffFixture {
	return &tiffFixture{order: order}
}

func (f *tiffFixture) shorts(vs ...uint16) []byte {
	out := make([]byte, 2*len(vs))
	for i, v := range vs {
		f.order.PutUint16(out[2*i:], v)
	}
	return out
}

func (f *tiffFixture) longs(vs ...uint32) []byte {
	out := make([]byte, 4*len(vs))
	for i, v := range vs {
		f.order.PutUint32(out[4*i:], v)
	}
	return out
}

func (f *tiffFixture) addEntry(tag uint16, ftype fieldType, count uint32, data []byte) {
	f.entries = append(f.entries, fixtureEntry{tag: tag, ftype: ftype, count: count, data: data})
}

func (f *tiffFixture) addShort(tag Tag, vs ...uint16) {
	f.addEntry(uint16(tag), typeShort, uint32(len(vs)), f.shorts(vs...))
}

func (f *tiffFixture) addLong(tag Tag, vs ...uint32) {
	f.addEntry(uint16(tag), typeLong, uint32(len(vs)), f.longs(vs...))
}

func (f *tiffFixture) addASCII(tag Tag, s string) {
	data := append([]byte(s), 0)
	f.addEntry(uint16(tag), typeASCII, uint32(len(data)), data)
}

func (f *tiffFixture) build() []byte {
	ifdOffset := fixtureRasterOffset + len(f.raster)

	var buf bytes.Buffer
	if f.order == binary.LittleEndian {
		buf.WriteString("II")
	} else {
		buf.WriteString("MM")
	}
	binary.Write(&buf, f.order, uint16(tiffMagic))
	binary.Write(&buf, f.order, uint32(ifdOffset))
	buf.Write(f.raster)

	binary.Write(&buf, f.order, uint16(len(f.entries)))
	blobStart := ifdOffset + 2 + 12*len(f.entries) + 4

	var blobs bytes.Buffer
	for _, e := range f.entries {
		binary.Write(&buf, f.order, e.tag)
		binary.Write(&buf, f.order, uint16(e.ftype))
		binary.Write(&buf, f.order, e.count)
		if len(e.data) <= 4 {
			field := make([]byte, 4)
			copy(field, e.data)
			buf.Write(field)
		} else {
			binary.Write(&buf, f.order, uint32(blobStart+blobs.Len()))
			blobs.Write(e.data)
		}
	}
	binary.Write(&buf, f.order, uint32(0)) // no next IFD
	buf.Write(blobs.Bytes())
	return buf.Bytes()
}

// stripFixture builds a single-band 8-bit strip image: one strip covering
// all pixels, row-major.
func stripFixture(order binary.ByteOrder, width, length int, pixels []byte) *tiffFixture {
	f := newFixture(order)
	f.raster = pixels
	f.addShort(ImageWidth, uint16(width))
	f.addShort(ImageLength, uint16(length))
	f.addShort(BitsPerSample, 8)
	f.addLong(StripOffsets, fixtureRasterOffset)
	f.addLong(StripByteCounts, uint32(len(pixels)))
	return f
}

// tileFixture builds a single-band 8-bit tiled image. tiles holds the raw
// bytes of each tile in storage order, each tileWidth*tileLength long.
func tileFixture(order binary.ByteOrder, width, length, tileWidth, tileLength int, tiles [][]byte) *tiffFixture {
	f := newFixture(order)
	offsets := make([]uint32, len(tiles))
	counts := make([]uint32, len(tiles))
	for i, tile := range tiles {
		offsets[i] = uint32(fixtureRasterOffset + len(f.raster))
		counts[i] = uint32(len(tile))
		f.raster = append(f.raster, tile...)
	}
	f.addShort(ImageWidth, uint16(width))
	f.addShort(ImageLength, uint16(length))
	f.addShort(BitsPerSample, 8)
	f.addShort(TileWidth, uint16(tileWidth))
	f.addShort(TileLength, uint16(tileLength))
	f.addLong(TileOffsets, offsets...)
	f.addLong(TileByteCounts, counts...)
	return f
}
