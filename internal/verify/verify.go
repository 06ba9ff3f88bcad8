// Package verify checks sort results: that output is a permutation of the
// input and that it is in order.
package verify

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/garethgeorge/radixsort/internal/radix"
)

// Digest is an order-independent fingerprint of a multiset of records.
type Digest struct {
	Count int
	Sum   uint64
	Xor   uint64
}

func (d Digest) String() string {
	return fmt.Sprintf("%d records, sum %016x, xor %016x", d.Count, d.Sum, d.Xor)
}

// Add folds one record into the digest.
func (d *Digest) Add(record []byte) {
	h := xxhash.Sum64(record)
	d.Count++
	d.Sum += h
	d.Xor ^= h
}

// DigestRecords fingerprints the first n records of buf. Two buffers holding
// the same records in any order have equal digests.
func DigestRecords(buf []byte, n, width int) Digest {
	var d Digest
	for i := 0; i < n; i++ {
		d.Add(buf[i*width : (i+1)*width])
	}
	return d
}

// IsSorted returns the index of the first record that is out of order with
// its predecessor under the sorter's ordering, or -1 if the first n records
// are sorted.
func IsSorted(s *radix.Sorter, buf []byte, n, width int) int {
	for i := 1; i < n; i++ {
		prev := buf[(i-1)*width : i*width]
		cur := buf[i*width : (i+1)*width]
		if s.Compare(prev, cur) > 0 {
			return i
		}
	}
	return -1
}

// Check compares a sorted buffer against the digest of its input.
func Check(s *radix.Sorter, before Digest, buf []byte, n, width int) error {
	if after := DigestRecords(buf, n, width); after != before {
		return fmt.Errorf("output is not a permutation of the input: before %v, after %v", before, after)
	}
	if i := IsSorted(s, buf, n, width); i >= 0 {
		return fmt.Errorf("record %d is out of order", i)
	}
	return nil
}
