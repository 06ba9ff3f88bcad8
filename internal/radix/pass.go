package radix

// countingPass performs one stable counting sort of the first n records of
// buf, keyed by the byte at offset within each record. scratch must hold at
// least n*width bytes; the sorted records are copied back into buf.
func countingPass(buf, scratch []byte, n, width, offset int) {
	var count [256]int
	for i := 0; i < n; i++ {
		count[buf[i*width+offset]]++
	}

	// Every record has the same byte here, the pass would be the identity.
	if count[buf[offset]] == n {
		return
	}

	// Prefix sums: count[b] becomes the end boundary of bucket b.
	for b := 1; b < len(count); b++ {
		count[b] += count[b-1]
	}

	// Walk backwards so equal keys keep their relative order.
	for i := n - 1; i >= 0; i-- {
		rec := buf[i*width : (i+1)*width]
		b := rec[offset]
		count[b]--
		pos := count[b] * width
		copy(scratch[pos:pos+width], rec)
	}

	copy(buf[:n*width], scratch[:n*width])
}

// reverseRecords reverses the order of the first n records of buf in place.
func reverseRecords(buf []byte, n, width int) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		a := buf[i*width : (i+1)*width]
		b := buf[j*width : (j+1)*width]
		for k := range a {
			a[k], b[k] = b[k], a[k]
		}
	}
}
