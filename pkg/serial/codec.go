package serial

import (
	"encoding/binary"
	"math/bits"
)

// EncodeGeneralNatural encodes x in 1 to 9 octets. The count of leading one
// bits in the first octet gives the number of octets that follow; 0xFF is
// followed by all 8.
func EncodeGeneralNatural(x uint64) []byte {
	if x == 0 {
		return []byte{0x00}
	}

	l := uint((bits.Len64(x) - 1) / 7)
	if l >= 8 {
		return append([]byte{0xFF}, EncodeLittleEndian(8, x)...)
	}

	header := byte((1 << 8) - (1 << (8 - l)) + (x >> (8 * l)))
	if l == 0 {
		return []byte{header}
	}
	remainder := x & ((uint64(1) << (8 * l)) - 1)
	return append([]byte{header}, EncodeLittleEndian(int(l), remainder)...)
}

func EncodeLittleEndian(octets int, x uint64) []byte {
	switch octets {
	case 1:
		return []byte{byte(x)}
	case 2:
		return binary.LittleEndian.AppendUint16(nil, uint16(x))
	case 4:
		return binary.LittleEndian.AppendUint32(nil, uint32(x))
	case 8:
		return binary.LittleEndian.AppendUint64(nil, x)
	default:
		result := make([]byte, octets)
		for i := range result {
			result[i] = byte(x)
			x >>= 8
		}
		return result
	}
}

func countLeadingOnes(b byte) int {
	return bits.LeadingZeros8(^b)
}

// DecodeGeneralNatural decodes the value at the start of p and reports how
// many octets it used. ok is false when p is truncated.
func DecodeGeneralNatural(p []byte) (x uint64, n int, ok bool) {
	if len(p) == 0 {
		return 0, 0, false
	}

	header := p[0]
	l := generalNaturalExtraOctets(header)
	if len(p) < 1+l {
		return 0, 0, false
	}
	if l == 8 {
		return binary.LittleEndian.Uint64(p[1:9]), 9, true
	}

	base := byte(int(1<<8) - (1 << (8 - l)))
	high := uint64(header - base)
	x = (high << (8 * l)) | DecodeLittleEndian(p[1:1+l])
	return x, 1 + l, true
}

func DecodeLittleEndian(b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	case 8:
		return binary.LittleEndian.Uint64(b)
	default:
		var x uint64
		for i, v := range b {
			x |= uint64(v) << (8 * i)
		}
		return x
	}
}

// generalNaturalExtraOctets reports how many octets follow header in a
// general natural encoding.
func generalNaturalExtraOctets(header byte) int {
	if header == 0xFF {
		return 8
	}
	return countLeadingOnes(header)
}
