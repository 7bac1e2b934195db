package geotiff

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Rational is an unreduced (numerator, denominator) pair.
type Rational struct {
	Num uint32
	Den uint32
}

// SRational is the signed counterpart of Rational.
type SRational struct {
	Num int32
	Den int32
}

// tagData holds the decoded value of a TIFF tag. Every tag value is logically
// a sequence; exactly one of the typed fields is populated, selected by fType.
type tagData struct {
	fType  fieldType
	length uint32

	byteData      []uint8
	asciiData     string
	shortData     []uint16
	longData      []uint32
	rationalData  []Rational
	sbyteData     []int8
	sshortData    []int16
	slongData     []int32
	srationalData []SRational
	floatData     []float32
	doubleData    []float64
}

// decodeValue converts a raw byte span plus its declared type into a tagData,
// partitioning the span into fixed-size chunks and decoding each with the
// active byte order. The span length must be an exact multiple of the type's
// element width. Unrecognized or UNDEFINED types decode to an empty byte
// variant rather than failing.
func decodeValue(raw []byte, ftype fieldType, order binary.ByteOrder) tagData {
	t := tagData{fType: ftype}
	switch ftype {
	case typeByte:
		t.byteData = append([]uint8(nil), raw...)
		t.length = uint32(len(t.byteData))
	case typeASCII:
		t.asciiData = string(bytes.Trim(raw, "\x00"))
		t.length = 1
	case typeShort:
		t.shortData = make([]uint16, len(raw)/2)
		for i := range t.shortData {
			t.shortData[i] = order.Uint16(raw[2*i:])
		}
		t.length = uint32(len(t.shortData))
	case typeLong:
		t.longData = make([]uint32, len(raw)/4)
		for i := range t.longData {
			t.longData[i] = order.Uint32(raw[4*i:])
		}
		t.length = uint32(len(t.longData))
	case typeRational:
		t.rationalData = make([]Rational, len(raw)/8)
		for i := range t.rationalData {
			t.rationalData[i] = Rational{
				Num: order.Uint32(raw[8*i:]),
				Den: order.Uint32(raw[8*i+4:]),
			}
		}
		t.length = uint32(len(t.rationalData))
	case typeSByte:
		t.sbyteData = make([]int8, len(raw))
		for i, b := range raw {
			t.sbyteData[i] = int8(b)
		}
		t.length = uint32(len(t.sbyteData))
	case typeSShort:
		t.sshortData = make([]int16, len(raw)/2)
		for i := range t.sshortData {
			t.sshortData[i] = int16(order.Uint16(raw[2*i:]))
		}
		t.length = uint32(len(t.sshortData))
	case typeSLong:
		t.slongData = make([]int32, len(raw)/4)
		for i := range t.slongData {
			t.slongData[i] = int32(order.Uint32(raw[4*i:]))
		}
		t.length = uint32(len(t.slongData))
	case typeSRational:
		t.srationalData = make([]SRational, len(raw)/8)
		for i := range t.srationalData {
			t.srationalData[i] = SRational{
				Num: int32(order.Uint32(raw[8*i:])),
				Den: int32(order.Uint32(raw[8*i+4:])),
			}
		}
		t.length = uint32(len(t.srationalData))
	case typeFloat:
		t.floatData = make([]float32, len(raw)/4)
		for i := range t.floatData {
			t.floatData[i] = math.Float32frombits(order.Uint32(raw[4*i:]))
		}
		t.length = uint32(len(t.floatData))
	case typeDouble:
		t.doubleData = make([]float64, len(raw)/8)
		for i := range t.doubleData {
			t.doubleData[i] = math.Float64frombits(order.Uint64(raw[8*i:]))
		}
		t.length = uint32(len(t.doubleData))
	default:
		// UNDEFINED and anything unrecognized is treated as absent data.
		t.byteData = nil
		t.length = 0
	}
	return t
}

// uintValues widens any unsigned integer variant to a []uint64. It fails for
// non-integer variants so call sites keep a single type check.
func (td tagData) uintValues() ([]uint64, bool) {
	switch td.fType {
	case typeByte:
		out := make([]uint64, len(td.byteData))
		for i, v := range td.byteData {
			out[i] = uint64(v)
		}
		return out, true
	case typeShort:
		out := make([]uint64, len(td.shortData))
		for i, v := range td.shortData {
			out[i] = uint64(v)
		}
		return out, true
	case typeLong:
		out := make([]uint64, len(td.longData))
		for i, v := range td.longData {
			out[i] = uint64(v)
		}
		return out, true
	}
	return nil, false
}

// firstUint returns the first value of an unsigned integer variant.
func (td tagData) firstUint() (uint64, bool) {
	switch td.fType {
	case typeByte:
		if len(td.byteData) > 0 {
			return uint64(td.byteData[0]), true
		}
	case typeShort:
		if len(td.shortData) > 0 {
			return uint64(td.shortData[0]), true
		}
	case typeLong:
		if len(td.longData) > 0 {
			return uint64(td.longData[0]), true
		}
	}
	return 0, false
}

func (td tagData) shortValues() ([]uint16, bool) {
	if td.fType == typeShort {
		return td.shortData, true
	}
	return nil, false
}

func (td tagData) doubleValues() ([]float64, bool) {
	if td.fType == typeDouble {
		return td.doubleData, true
	}
	return nil, false
}

func (td tagData) ascii() (string, bool) {
	if td.fType == typeASCII {
		return td.asciiData, true
	}
	return "", false
}

func (td tagData) String() string {
	switch td.fType {
	case typeByte, typeUndefined:
		return fmt.Sprintf("%v", td.byteData)
	case typeASCII:
		return fmt.Sprintf("%q", td.asciiData)
	case typeShort:
		return fmt.Sprintf("%v", td.shortData)
	case typeLong:
		return fmt.Sprintf("%v", td.longData)
	case typeRational:
		return fmt.Sprintf("%v", td.rationalData)
	case typeSByte:
		return fmt.Sprintf("%v", td.sbyteData)
	case typeSShort:
		return fmt.Sprintf("%v", td.sshortData)
	case typeSLong:
		return fmt.Sprintf("%v", td.slongData)
	case typeSRational:
		return fmt.Sprintf("%v", td.srationalData)
	case typeFloat:
		return fmt.Sprintf("%v", td.floatData)
	case typeDouble:
		return fmt.Sprintf("%v", td.doubleData)
	}
	return "<none>"
}
