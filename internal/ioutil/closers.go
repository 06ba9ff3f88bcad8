package ioutil

import (
	"errors"
	"io"
)

// CloserFunc adapts a plain function to io.Closer.
type CloserFunc func() error

func (f CloserFunc) Close() error {
	return f()
}

// NewMultiCloser closes every closer in order and joins their errors.
func NewMultiCloser(closers ...io.Closer) io.Closer {
	return CloserFunc(func() error {
		var errs []error
		for _, c := range closers {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

func WriterWithCloser(w io.Writer, closer io.Closer) io.WriteCloser {
	return &writeCloser{
		Writer: w,
		closer: closer,
	}
}

type writeCloser struct {
	io.Writer
	closer io.Closer
}

var _ io.WriteCloser = (*writeCloser)(nil)

func (wc *writeCloser) Close() error {
	return wc.closer.Close()
}

func ReaderWithCloser(r io.Reader, closer io.Closer) io.ReadCloser {
	return &readCloser{
		Reader: r,
		closer: closer,
	}
}

type readCloser struct {
	io.Reader
	closer io.Closer
}

var _ io.ReadCloser = (*readCloser)(nil)

func (rc *readCloser) Close() error {
	return rc.closer.Close()
}
