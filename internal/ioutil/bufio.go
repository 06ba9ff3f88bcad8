package ioutil

import (
	"bufio"
	"io"
)

const DefaultBufioSize = 64 * 1024 // 64KB

// WithBufferedWrites flushes on Close but leaves w open.
func WithBufferedWrites(w io.Writer) io.WriteCloser {
	bufw := bufio.NewWriterSize(w, DefaultBufioSize)
	return WriterWithCloser(bufw, CloserFunc(bufw.Flush))
}

// WithBufferedWriteCloser flushes and then closes wc.
func WithBufferedWriteCloser(wc io.WriteCloser) io.WriteCloser {
	bufw := bufio.NewWriterSize(wc, DefaultBufioSize)
	return WriterWithCloser(bufw, NewMultiCloser(CloserFunc(bufw.Flush), wc))
}

func WithBufferedReads(r io.Reader) io.Reader {
	return bufio.NewReaderSize(r, DefaultBufioSize)
}
