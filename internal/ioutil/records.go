package ioutil

import (
	"errors"
	"fmt"
	"io"
)

// ErrPartialRecord is returned when a stream ends part way through a record.
var ErrPartialRecord = errors.New("stream ends with a partial record")

// RecordReader reads whole fixed-width records from a stream.
type RecordReader struct {
	r     io.Reader
	width int
	read  int64
}

func NewRecordReader(r io.Reader, width int) *RecordReader {
	return &RecordReader{r: r, width: width}
}

// ReadBlock fills dst with as many whole records as fit and returns how many
// were read. It returns io.EOF only when no records remain.
func (rr *RecordReader) ReadBlock(dst []byte) (int, error) {
	want := len(dst) / rr.width * rr.width
	if want == 0 {
		return 0, fmt.Errorf("block of %d bytes cannot hold a %d byte record", len(dst), rr.width)
	}
	got, err := io.ReadFull(rr.r, dst[:want])
	rr.read += int64(got / rr.width)
	switch {
	case err == nil:
		return want / rr.width, nil
	case errors.Is(err, io.EOF):
		return 0, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		if got%rr.width != 0 {
			return got / rr.width, fmt.Errorf("after record %d: %w", rr.read, ErrPartialRecord)
		}
		return got / rr.width, nil
	default:
		return got / rr.width, err
	}
}

// Records returns the number of whole records read so far.
func (rr *RecordReader) Records() int64 {
	return rr.read
}
