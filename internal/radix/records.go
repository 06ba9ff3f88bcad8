package radix

import (
	"bytes"
	"encoding/binary"
	"math"
)

// EncodeInt32s appends src to dst as little-endian 4 byte records.
func EncodeInt32s(dst []byte, src []int32) []byte {
	for _, v := range src {
		dst = binary.LittleEndian.AppendUint32(dst, uint32(v))
	}
	return dst
}

// DecodeInt32s fills dst from the little-endian 4 byte records in src.
func DecodeInt32s(dst []int32, src []byte) {
	for i := range dst {
		dst[i] = int32(binary.LittleEndian.Uint32(src[i*4:]))
	}
}

// EncodeInt64s appends src to dst as little-endian 8 byte records.
func EncodeInt64s(dst []byte, src []int64) []byte {
	for _, v := range src {
		dst = binary.LittleEndian.AppendUint64(dst, uint64(v))
	}
	return dst
}

// DecodeInt64s fills dst from the little-endian 8 byte records in src.
func DecodeInt64s(dst []int64, src []byte) {
	for i := range dst {
		dst[i] = int64(binary.LittleEndian.Uint64(src[i*8:]))
	}
}

// EncodeFloat32s appends the IEEE-754 bit patterns of src as little-endian
// 4 byte records, NaN payloads included.
func EncodeFloat32s(dst []byte, src []float32) []byte {
	for _, v := range src {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}
	return dst
}

// DecodeFloat32s fills dst from the little-endian 4 byte records in src.
func DecodeFloat32s(dst []float32, src []byte) {
	for i := range dst {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
	}
}

// EncodeFloat64s appends the IEEE-754 bit patterns of src as little-endian
// 8 byte records.
func EncodeFloat64s(dst []byte, src []float64) []byte {
	for _, v := range src {
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
	}
	return dst
}

// DecodeFloat64s fills dst from the little-endian 8 byte records in src.
func DecodeFloat64s(dst []float64, src []byte) {
	for i := range dst {
		dst[i] = math.Float64frombits(binary.LittleEndian.Uint64(src[i*8:]))
	}
}

// FixedStringWidth returns the record width needed to store every string in
// src followed by at least one NUL byte.
func FixedStringWidth(src []string) int {
	maxLen := 0
	for _, s := range src {
		maxLen = max(maxLen, len(s))
	}
	return maxLen + 1
}

// EncodeFixedStrings appends each string NUL-padded to width bytes. Strings
// longer than width are truncated.
func EncodeFixedStrings(dst []byte, src []string, width int) []byte {
	for _, s := range src {
		start := len(dst)
		dst = append(dst, make([]byte, width)...)
		copy(dst[start:], s)
	}
	return dst
}

// DecodeFixedStrings strips the trailing NUL padding of every record, so
// strings that themselves ended in NUL bytes lose them.
func DecodeFixedStrings(dst []string, src []byte, width int) {
	for i := range dst {
		dst[i] = string(bytes.TrimRight(src[i*width:(i+1)*width], "\x00"))
	}
}
