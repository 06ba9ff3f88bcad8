// Package gen produces seeded record buffers for benchmarks and tests.
package gen

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/garethgeorge/radixsort/internal/radix"
	"golang.org/x/sync/errgroup"
)

type Distribution int

const (
	Uniform Distribution = iota
	// FewUnique draws every record from a small set of values.
	FewUnique
	Sorted
	Reversed
	// Special mixes signed zeros, infinities and NaNs into float data. For
	// other kinds it behaves like Uniform.
	Special
)

var distributionNames = map[Distribution]string{
	Uniform:   "uniform",
	FewUnique: "few-unique",
	Sorted:    "sorted",
	Reversed:  "reversed",
	Special:   "special",
}

func (d Distribution) String() string {
	if name, ok := distributionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Distribution(%d)", int(d))
}

func ParseDistribution(s string) (Distribution, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Uniform, nil
	}
	for d, name := range distributionNames {
		if name == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown distribution %q", s)
}

const (
	chunkRecords = 1 << 16
	fewUnique    = 16
	floatRange   = 1e6
)

// Records returns n little-endian records of kind and width. The same seed
// always yields the same buffer. Chunks are generated concurrently, each from
// its own source derived from seed.
func Records(kind radix.Kind, width, n int, dist Distribution, seed int64) ([]byte, error) {
	if fixed := kind.FixedWidth(); fixed != 0 && fixed != width {
		return nil, fmt.Errorf("%v records are %d bytes, got width %d", kind, fixed, width)
	}
	if width < 1 || n < 0 {
		return nil, fmt.Errorf("invalid shape: %d records of %d bytes", n, width)
	}

	buf := make([]byte, n*width)
	var pool []byte
	if dist == FewUnique {
		pool = make([]byte, fewUnique*width)
		fill(rand.New(rand.NewSource(seed)), kind, width, Uniform, pool)
	}

	var eg errgroup.Group
	for start := 0; start < n; start += chunkRecords {
		end := min(start+chunkRecords, n)
		chunk := buf[start*width : end*width]
		rng := rand.New(rand.NewSource(seed + int64(start/chunkRecords) + 1))
		eg.Go(func() error {
			if pool != nil {
				for off := 0; off < len(chunk); off += width {
					pick := rng.Intn(fewUnique)
					copy(chunk[off:off+width], pool[pick*width:])
				}
				return nil
			}
			fill(rng, kind, width, dist, chunk)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	switch dist {
	case Sorted, Reversed:
		direction := radix.Ascending
		if dist == Reversed {
			direction = radix.Descending
		}
		opts := []radix.Option{radix.WithKind(kind), radix.WithDirection(direction)}
		if kind == radix.RawBytes {
			opts = append(opts, radix.WithOrder(radix.MostSignificantFirst))
		}
		if err := radix.Sort(buf, n, width, opts...); err != nil {
			return nil, fmt.Errorf("order generated records: %w", err)
		}
	}
	return buf, nil
}

func fill(rng *rand.Rand, kind radix.Kind, width int, dist Distribution, dst []byte) {
	switch kind {
	case radix.SignedInteger:
		rng.Read(dst)
	case radix.Float32:
		for off := 0; off < len(dst); off += 4 {
			binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(float32(randomFloat(rng, dist))))
		}
	case radix.Float64:
		for off := 0; off < len(dst); off += 8 {
			binary.LittleEndian.PutUint64(dst[off:], math.Float64bits(randomFloat(rng, dist)))
		}
	default:
		for off := 0; off < len(dst); off += width {
			randomString(rng, dst[off:off+width])
		}
	}
}

func randomFloat(rng *rand.Rand, dist Distribution) float64 {
	if dist == Special && rng.Intn(100) < 5 {
		switch rng.Intn(5) {
		case 0:
			return math.Copysign(0, -1)
		case 1:
			return 0
		case 2:
			return math.NaN()
		case 3:
			return math.Inf(1)
		default:
			return math.Inf(-1)
		}
	}
	return (rng.Float64()*2 - 1) * floatRange
}

// randomString writes a NUL-padded lowercase string of 1 to len(dst)-1
// letters. A one-byte record holds a single letter.
func randomString(rng *rand.Rand, dst []byte) {
	clear(dst)
	length := 1
	if len(dst) > 2 {
		length = 1 + rng.Intn(len(dst)-1)
	}
	for i := 0; i < length; i++ {
		dst[i] = byte('a' + rng.Intn(26))
	}
}
