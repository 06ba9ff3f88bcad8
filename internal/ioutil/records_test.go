package ioutil

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordReader(t *testing.T) {
	t.Run("whole blocks", func(t *testing.T) {
		rr := NewRecordReader(bytes.NewReader([]byte("aabbccdd")), 2)
		dst := make([]byte, 5) // room for two records
		n, err := rr.ReadBlock(dst)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, "aabb", string(dst[:4]))

		n, err = rr.ReadBlock(dst)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, "ccdd", string(dst[:4]))

		n, err = rr.ReadBlock(dst)
		assert.ErrorIs(t, err, io.EOF)
		assert.Equal(t, 0, n)
		assert.Equal(t, int64(4), rr.Records())
	})

	t.Run("short final block", func(t *testing.T) {
		rr := NewRecordReader(bytes.NewReader([]byte("aabbcc")), 2)
		dst := make([]byte, 8)
		n, err := rr.ReadBlock(dst)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		_, err = rr.ReadBlock(dst)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("partial record", func(t *testing.T) {
		rr := NewRecordReader(bytes.NewReader([]byte("aabbc")), 2)
		dst := make([]byte, 8)
		n, err := rr.ReadBlock(dst)
		assert.ErrorIs(t, err, ErrPartialRecord)
		assert.Equal(t, 2, n)
	})

	t.Run("block smaller than record", func(t *testing.T) {
		rr := NewRecordReader(bytes.NewReader([]byte("aaaa")), 4)
		_, err := rr.ReadBlock(make([]byte, 3))
		assert.Error(t, err)
	})
}

func TestMultiCloser(t *testing.T) {
	var order []int
	closer := NewMultiCloser(
		CloserFunc(func() error { order = append(order, 1); return nil }),
		CloserFunc(func() error { order = append(order, 2); return io.ErrClosedPipe }),
		CloserFunc(func() error { order = append(order, 3); return nil }),
	)
	err := closer.Close()
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestWithBufferedWriteCloser(t *testing.T) {
	var buf bytes.Buffer
	closed := false
	wc := WithBufferedWriteCloser(WriterWithCloser(&buf, CloserFunc(func() error {
		closed = true
		return nil
	})))
	_, err := wc.Write([]byte("records"))
	require.NoError(t, err)
	assert.Zero(t, buf.Len(), "writes are buffered until close")
	require.NoError(t, wc.Close())
	assert.Equal(t, "records", buf.String())
	assert.True(t, closed)
}
