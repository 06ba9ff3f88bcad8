package radix

import (
	"bytes"
	"cmp"
	"slices"
)

// msdCutoff is the bucket size below which partitioning costs more than a
// comparison sort of the remaining key bytes.
const msdCutoff = 32

// msdSorter orders records by recursively partitioning on the most
// significant remaining key byte.
type msdSorter struct {
	buf     []byte
	scratch []byte
	width   int
	// offsets lists key byte offsets from most to least significant.
	offsets []int
	// lexical is set when offsets is 0..width-1, allowing bytes.Compare.
	lexical bool
	desc    bool

	idx []int
}

func newLexicalSorter(buf, scratch []byte, width int, desc bool) *msdSorter {
	offsets := make([]int, width)
	for i := range offsets {
		offsets[i] = i
	}
	return &msdSorter{buf: buf, scratch: scratch, width: width, offsets: offsets, lexical: true, desc: desc}
}

func newSignificanceSorter(buf, scratch []byte, l layout) *msdSorter {
	offsets := l.msbFirst()
	return &msdSorter{buf: buf, scratch: scratch, width: l.width, offsets: offsets, lexical: l.bigEndian || l.width == 1}
}

func (m *msdSorter) record(i int) []byte {
	return m.buf[i*m.width : (i+1)*m.width]
}

// sort orders records [lo, hi) which already agree on offsets[:depth].
func (m *msdSorter) sort(lo, hi, depth int) {
	if hi-lo < 2 || depth >= len(m.offsets) {
		return
	}
	if hi-lo < msdCutoff {
		m.compareSort(lo, hi, depth)
		return
	}

	w := m.width
	off := m.offsets[depth]

	var count [256]int
	for i := lo; i < hi; i++ {
		count[m.buf[i*w+off]]++
	}

	// Whole range shares this byte, descend without moving anything.
	if count[m.buf[lo*w+off]] == hi-lo {
		m.sort(lo, hi, depth+1)
		return
	}

	var start [256]int
	pos := lo
	for k := range count {
		b := k
		if m.desc {
			b = len(count) - 1 - k
		}
		start[b] = pos
		pos += count[b]
	}

	next := start
	for i := lo; i < hi; i++ {
		b := m.buf[i*w+off]
		p := next[b]
		next[b]++
		copy(m.scratch[p*w:(p+1)*w], m.buf[i*w:(i+1)*w])
	}
	copy(m.buf[lo*w:hi*w], m.scratch[lo*w:hi*w])

	for b, c := range count {
		if c > 1 {
			m.sort(start[b], start[b]+c, depth+1)
		}
	}
}

// compareSort stably sorts a small range through an index and materialises
// the result via scratch.
func (m *msdSorter) compareSort(lo, hi, depth int) {
	m.idx = m.idx[:0]
	for i := lo; i < hi; i++ {
		m.idx = append(m.idx, i)
	}

	slices.SortStableFunc(m.idx, func(a, b int) int {
		c := m.compareKeys(m.record(a), m.record(b), depth)
		if m.desc {
			return -c
		}
		return c
	})

	w := m.width
	for k, i := range m.idx {
		p := lo + k
		copy(m.scratch[p*w:(p+1)*w], m.record(i))
	}
	copy(m.buf[lo*w:hi*w], m.scratch[lo*w:hi*w])
}

func (m *msdSorter) compareKeys(a, b []byte, depth int) int {
	if m.lexical {
		return bytes.Compare(a[m.offsets[depth]:], b[m.offsets[depth]:])
	}
	for _, off := range m.offsets[depth:] {
		if a[off] != b[off] {
			return cmp.Compare(a[off], b[off])
		}
	}
	return 0
}

// sortFixedStrings orders n records of width bytes lexicographically, with
// the direction applied to the bucket walk and the comparator.
func sortFixedStrings(buf, scratch []byte, n, width int, desc bool) {
	newLexicalSorter(buf, scratch, width, desc).sort(0, n, 0)
}
