package ioutil

import (
	"io"

	"golang.org/x/sync/errgroup"
)

// ParallelMultiWriter creates a writer that writes to multiple writers in parallel.
// Each writer is fed through its own pipe and a 64KB buffer batches writes.
//
// Close flushes, closes the pipes and waits for every copy to finish. It
// returns the first error any writer reported.
func ParallelMultiWriter(writers ...io.Writer) io.WriteCloser {
	if len(writers) == 0 {
		return WriterWithCloser(io.Discard, NewMultiCloser())
	}
	if len(writers) == 1 {
		return WriterWithCloser(writers[0], NewMultiCloser())
	}

	var eg errgroup.Group
	var pipeWriters []io.Writer
	var pipeClosers []io.Closer

	for _, w := range writers {
		pr, pw := io.Pipe()
		pipeWriters = append(pipeWriters, pw)
		pipeClosers = append(pipeClosers, pw)
		eg.Go(func() error {
			buffer := make([]byte, DefaultBufioSize) // matches the WithBufferedWrites buffer size
			_, err := io.CopyBuffer(w, pr, buffer)
			// Unblock the multiwriter if this writer gave up early.
			pr.CloseWithError(err)
			return err
		})
	}

	multiwriter := WithBufferedWrites(&tolerantMultiWriter{writers: pipeWriters})
	closers := append([]io.Closer{multiwriter}, pipeClosers...)
	closers = append(closers, CloserFunc(eg.Wait))
	return WriterWithCloser(multiwriter, NewMultiCloser(closers...))
}

// tolerantMultiWriter keeps writing to the remaining writers after one of
// them fails. The failure is reported by the errgroup on Close.
type tolerantMultiWriter struct {
	writers []io.Writer
	failed  []bool
}

func (t *tolerantMultiWriter) Write(p []byte) (int, error) {
	if t.failed == nil {
		t.failed = make([]bool, len(t.writers))
	}
	live := 0
	for i, w := range t.writers {
		if t.failed[i] {
			continue
		}
		if _, err := w.Write(p); err != nil {
			t.failed[i] = true
			continue
		}
		live++
	}
	if live == 0 {
		return 0, io.ErrClosedPipe
	}
	return len(p), nil
}
