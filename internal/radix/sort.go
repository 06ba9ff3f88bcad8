// Package radix sorts buffers of fixed-width binary records with byte-wise
// counting sort.
//
// A record buffer is a []byte holding n records of width bytes each. Numeric
// records are first mapped to an encoding whose unsigned byte order matches
// their natural order, sorted one byte at a time, and mapped back. Raw byte
// records are either treated as unsigned integers or ordered lexicographically
// as fixed-length strings.
package radix

import (
	"encoding/binary"
	"math"

	"github.com/garethgeorge/radixsort/internal/poolutil"
)

type options struct {
	kind      Kind
	order     Order
	direction Direction
	byteOrder binary.ByteOrder
	pool      *poolutil.SlabPool
}

type Option = func(*options)

// WithKind sets how record bytes are interpreted. Defaults to RawBytes.
func WithKind(kind Kind) func(*options) {
	return func(o *options) {
		o.kind = kind
	}
}

// WithOrder sets the byte processing order. Defaults to LeastSignificantFirst.
func WithOrder(order Order) func(*options) {
	return func(o *options) {
		o.order = order
	}
}

// WithDirection sets the output direction. Defaults to Ascending.
func WithDirection(direction Direction) func(*options) {
	return func(o *options) {
		o.direction = direction
	}
}

// WithByteOrder sets the memory layout of numeric records, which determines
// which byte of a record is most significant. Defaults to little-endian.
func WithByteOrder(bo binary.ByteOrder) func(*options) {
	return func(o *options) {
		if bo != nil {
			o.byteOrder = bo
		}
	}
}

// WithScratchPool draws scratch buffers from pool instead of allocating one
// per call.
func WithScratchPool(pool *poolutil.SlabPool) func(*options) {
	return func(o *options) {
		o.pool = pool
	}
}

// Sorter sorts record buffers with a fixed configuration. A Sorter holds no
// per-call state and may be shared between goroutines, each sorting its own
// buffer.
type Sorter struct {
	opts options
}

func NewSorter(opts ...Option) *Sorter {
	options := options{
		kind:      RawBytes,
		order:     LeastSignificantFirst,
		direction: Ascending,
		byteOrder: binary.LittleEndian,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &Sorter{opts: options}
}

// Sort is a shorthand for NewSorter(opts...).Sort(buf, n, width).
func Sort(buf []byte, n, width int, opts ...Option) error {
	return NewSorter(opts...).Sort(buf, n, width)
}

func (s *Sorter) Kind() Kind { return s.opts.kind }
func (s *Sorter) Order() Order { return s.opts.order }
func (s *Sorter) Direction() Direction { return s.opts.direction }
func (s *Sorter) ByteOrder() binary.ByteOrder { return s.opts.byteOrder }

// Sort orders the first n records of buf in place. Every precondition is
// checked before buf is touched, so a returned error leaves buf unchanged.
func (s *Sorter) Sort(buf []byte, n, width int) error {
	if buf == nil && n > 0 {
		return newError(NullInput, "record buffer is nil with %d records", n)
	}
	if n <= 1 {
		return nil
	}
	size, err := s.validate(len(buf), n, width)
	if err != nil {
		return err
	}

	scratch, release := s.acquireScratch(size)
	defer release()

	o := s.opts
	desc := o.direction == Descending

	if o.kind == RawBytes && o.order == MostSignificantFirst {
		sortFixedStrings(buf, scratch, n, width, desc)
		return nil
	}

	l := newLayout(width, o.byteOrder)
	toSortableAll(o.kind, o.byteOrder, l, buf, n)
	if o.order == LeastSignificantFirst {
		for _, offset := range l.lsbFirst() {
			countingPass(buf, scratch, n, width, offset)
		}
	} else {
		newSignificanceSorter(buf, scratch, l).sort(0, n, 0)
	}
	fromSortableAll(o.kind, o.byteOrder, l, buf, n)

	if desc {
		reverseRecords(buf, n, width)
	}
	return nil
}

// CheckWidth reports whether records of width bytes can be sorted with s's
// configuration.
func (s *Sorter) CheckWidth(width int) error {
	_, err := s.validate(0, 0, width)
	return err
}

// validate returns the number of bytes occupied by n records.
func (s *Sorter) validate(bufLen, n, width int) (int, error) {
	o := s.opts
	if !o.kind.valid() {
		return 0, newError(UnsupportedType, "unsupported record kind %v", o.kind)
	}
	if !o.order.valid() {
		return 0, newError(UnsupportedType, "unsupported processing order %v", o.order)
	}
	if !o.direction.valid() {
		return 0, newError(UnsupportedType, "unsupported direction %v", o.direction)
	}
	if width < 1 {
		return 0, newError(SizeMismatch, "record width must be positive, got %d", width)
	}
	if fixed := o.kind.FixedWidth(); fixed != 0 && width != fixed {
		return 0, newError(SizeMismatch, "record width must be %d for %v, got %d", fixed, o.kind, width)
	}
	if n > math.MaxInt/width {
		return 0, newError(AllocationFailure, "%d records of %d bytes overflow the address space", n, width)
	}
	size := n * width
	if bufLen < size {
		return 0, newError(SizeMismatch, "buffer holds %d bytes, %d records of %d bytes need %d", bufLen, n, width, size)
	}
	return size, nil
}

// acquireScratch returns a scratch buffer of size bytes and the function
// that releases it.
func (s *Sorter) acquireScratch(size int) ([]byte, func()) {
	pool := s.opts.pool
	if pool == nil {
		return make([]byte, size), func() {}
	}
	scratch := pool.Get(size)
	return scratch, func() { pool.Put(scratch) }
}
