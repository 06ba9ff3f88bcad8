package verify

import (
	"testing"

	"github.com/garethgeorge/radixsort/internal/radix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigestRecords(t *testing.T) {
	a := radix.EncodeInt32s(nil, []int32{5, -2, 9, 0})
	b := radix.EncodeInt32s(nil, []int32{9, 0, 5, -2})
	c := radix.EncodeInt32s(nil, []int32{9, 0, 5, -3})

	assert.Equal(t, DigestRecords(a, 4, 4), DigestRecords(b, 4, 4))
	assert.NotEqual(t, DigestRecords(a, 4, 4), DigestRecords(c, 4, 4))
	assert.Equal(t, 4, DigestRecords(a, 4, 4).Count)
	assert.NotEqual(t, DigestRecords(a, 4, 4), DigestRecords(a, 3, 4), "count matters")
}

func TestIsSorted(t *testing.T) {
	asc := radix.NewSorter(radix.WithKind(radix.SignedInteger))
	desc := radix.NewSorter(radix.WithKind(radix.SignedInteger), radix.WithDirection(radix.Descending))

	tests := []struct {
		name   string
		sorter *radix.Sorter
		values []int64
		want   int
	}{
		{"empty", asc, nil, -1},
		{"single", asc, []int64{4}, -1},
		{"ascending", asc, []int64{-5, -5, 0, 7}, -1},
		{"ascending violation", asc, []int64{-5, 3, 0, 7}, 2},
		{"descending", desc, []int64{7, 0, -5, -5}, -1},
		{"descending violation", desc, []int64{-5, 7}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := radix.EncodeInt64s(nil, tc.values)
			assert.Equal(t, tc.want, IsSorted(tc.sorter, buf, len(tc.values), 8))
		})
	}
}

func TestCheck(t *testing.T) {
	s := radix.NewSorter(radix.WithKind(radix.Float64))
	buf := radix.EncodeFloat64s(nil, []float64{2.5, -1, 0.25, 8})
	before := DigestRecords(buf, 4, 8)

	require.NoError(t, s.Sort(buf, 4, 8))
	assert.NoError(t, Check(s, before, buf, 4, 8))

	buf[0] ^= 1
	assert.ErrorContains(t, Check(s, before, buf, 4, 8), "permutation")

	unsorted := radix.EncodeFloat64s(nil, []float64{8, 2.5, -1, 0.25})
	assert.ErrorContains(t, Check(s, before, unsorted, 4, 8), "out of order")
}
