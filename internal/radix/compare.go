package radix

import (
	"bytes"
	"cmp"
)

// Compare orders two records the way s.Sort would place them: it returns a
// negative number when a sorts before b, zero when they are interchangeable,
// and a positive number otherwise. Float records compare by their sortable
// encoding, so -0 sorts before +0 and NaNs sort to the ends.
//
// a and b must be single records of the same width. Compare does not modify
// them.
func (s *Sorter) Compare(a, b []byte) int {
	c := s.compareAscending(a, b)
	if s.opts.direction == Descending {
		return -c
	}
	return c
}

func (s *Sorter) compareAscending(a, b []byte) int {
	o := s.opts
	switch o.kind {
	case Float32:
		return cmp.Compare(floatKey32(o.byteOrder.Uint32(a)), floatKey32(o.byteOrder.Uint32(b)))
	case Float64:
		return cmp.Compare(floatKey64(o.byteOrder.Uint64(a)), floatKey64(o.byteOrder.Uint64(b)))
	case RawBytes:
		if o.order == MostSignificantFirst {
			return bytes.Compare(a, b)
		}
	}

	l := newLayout(len(a), o.byteOrder)
	msb := l.msb()
	for i := l.width - 1; i >= 0; i-- {
		off := l.offset(i)
		x, y := a[off], b[off]
		if o.kind == SignedInteger && off == msb {
			x ^= 0x80
			y ^= 0x80
		}
		if x != y {
			return cmp.Compare(x, y)
		}
	}
	return 0
}
