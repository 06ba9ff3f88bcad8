package buffers

import (
	"io"

	"github.com/garethgeorge/radixsort/internal/ioutil"
	"github.com/klauspost/compress/zstd"
)

// compressedStore wraps every run of a base store in a zstd stream.
type compressedStore struct {
	base RunStore
}

func NewCompressedStore(base RunStore) RunStore {
	return &compressedStore{base: base}
}

var _ RunStore = (*compressedStore)(nil)

func (s *compressedStore) New() (Run, error) {
	run, err := s.base.New()
	if err != nil {
		return nil, err
	}
	return CompressedRun(run), nil
}

func (s *compressedStore) Release() error {
	return s.base.Release()
}

type compressedRun struct {
	base Run
}

// CompressedRun reads and writes base as a zstd stream.
func CompressedRun(base Run) Run {
	return &compressedRun{base: base}
}

func (r *compressedRun) Name() string {
	return "zstd+" + r.base.Name()
}

func (r *compressedRun) Reader() (io.ReadCloser, error) {
	baseReader, err := r.base.Reader()
	if err != nil {
		return nil, err
	}
	zstdReader, err := zstd.NewReader(baseReader)
	if err != nil {
		baseReader.Close()
		return nil, err
	}
	return ioutil.ReaderWithCloser(
		ioutil.WithBufferedReads(zstdReader),
		ioutil.NewMultiCloser(ioutil.CloserFunc(func() error {
			zstdReader.Close()
			return nil
		}), baseReader),
	), nil
}

func (r *compressedRun) Writer() (io.WriteCloser, error) {
	baseWriter, err := r.base.Writer()
	if err != nil {
		return nil, err
	}
	bufioWriter := ioutil.WithBufferedWrites(baseWriter)

	zstdWriter, err := zstd.NewWriter(
		bufioWriter,
		zstd.WithEncoderCRC(true),
		zstd.WithEncoderConcurrency(2),
		zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		baseWriter.Close()
		return nil, err
	}
	return ioutil.WriterWithCloser(zstdWriter, ioutil.NewMultiCloser(zstdWriter, bufioWriter, baseWriter)), nil
}
