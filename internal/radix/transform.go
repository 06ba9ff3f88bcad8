package radix

import "encoding/binary"

const (
	signBit32 = uint32(1) << 31
	signBit64 = uint64(1) << 63
)

// layout describes where the significant bytes of a record live.
type layout struct {
	width     int
	bigEndian bool
}

func newLayout(width int, bo binary.ByteOrder) layout {
	return layout{width: width, bigEndian: isBigEndian(bo)}
}

// isBigEndian works for binary.NativeEndian as well as the two fixed orders.
func isBigEndian(bo binary.ByteOrder) bool {
	var probe [2]byte
	bo.PutUint16(probe[:], 1)
	return probe[1] == 1
}

// msb returns the offset of the most significant byte.
func (l layout) msb() int {
	if l.bigEndian {
		return 0
	}
	return l.width - 1
}

// offset returns the byte offset holding significance rank i, where rank 0 is
// the least significant byte.
func (l layout) offset(i int) int {
	if l.bigEndian {
		return l.width - 1 - i
	}
	return i
}

// lsbFirst lists byte offsets from least to most significant.
func (l layout) lsbFirst() []int {
	offs := make([]int, l.width)
	for i := range offs {
		offs[i] = l.offset(i)
	}
	return offs
}

// msbFirst lists byte offsets from most to least significant.
func (l layout) msbFirst() []int {
	offs := make([]int, l.width)
	for i := range offs {
		offs[i] = l.offset(l.width - 1 - i)
	}
	return offs
}

// Float keys: positive values get the sign bit set, negative values are
// inverted so larger magnitudes sort lower.
func floatKey32(u uint32) uint32 {
	if u&signBit32 != 0 {
		return ^u
	}
	return u ^ signBit32
}

func floatUnkey32(u uint32) uint32 {
	if u&signBit32 != 0 {
		return u ^ signBit32
	}
	return ^u
}

func floatKey64(u uint64) uint64 {
	if u&signBit64 != 0 {
		return ^u
	}
	return u ^ signBit64
}

func floatUnkey64(u uint64) uint64 {
	if u&signBit64 != 0 {
		return u ^ signBit64
	}
	return ^u
}

// ToSortable rewrites rec in place so that comparing records as unsigned
// integers in byte order bo matches the natural order of kind. rec must be
// exactly one record.
func ToSortable(kind Kind, bo binary.ByteOrder, rec []byte) {
	toSortable(kind, bo, newLayout(len(rec), bo), rec)
}

// FromSortable undoes ToSortable.
func FromSortable(kind Kind, bo binary.ByteOrder, rec []byte) {
	fromSortable(kind, bo, newLayout(len(rec), bo), rec)
}

func toSortable(kind Kind, bo binary.ByteOrder, l layout, rec []byte) {
	switch kind {
	case SignedInteger:
		rec[l.msb()] ^= 0x80
	case Float32:
		bo.PutUint32(rec, floatKey32(bo.Uint32(rec)))
	case Float64:
		bo.PutUint64(rec, floatKey64(bo.Uint64(rec)))
	}
}

func fromSortable(kind Kind, bo binary.ByteOrder, l layout, rec []byte) {
	switch kind {
	case SignedInteger:
		rec[l.msb()] ^= 0x80
	case Float32:
		bo.PutUint32(rec, floatUnkey32(bo.Uint32(rec)))
	case Float64:
		bo.PutUint64(rec, floatUnkey64(bo.Uint64(rec)))
	}
}

func toSortableAll(kind Kind, bo binary.ByteOrder, l layout, buf []byte, n int) {
	if kind == RawBytes {
		return
	}
	w := l.width
	for i := 0; i < n; i++ {
		toSortable(kind, bo, l, buf[i*w:(i+1)*w])
	}
}

func fromSortableAll(kind Kind, bo binary.ByteOrder, l layout, buf []byte, n int) {
	if kind == RawBytes {
		return
	}
	w := l.width
	for i := 0; i < n; i++ {
		fromSortable(kind, bo, l, buf[i*w:(i+1)*w])
	}
}
