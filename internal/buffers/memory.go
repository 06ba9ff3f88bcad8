package buffers

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

type memoryStore struct {
	mu   sync.Mutex
	runs []*memoryRun
}

func NewMemoryStore() RunStore {
	return &memoryStore{}
}

func (s *memoryStore) New() (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run := &memoryRun{name: fmt.Sprintf("mem-%04d", len(s.runs))}
	s.runs = append(s.runs, run)
	return run, nil
}

func (s *memoryStore) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = nil
	return nil
}

// memoryRun keeps its records in a byte slice.
type memoryRun struct {
	name string
	data []byte
}

var _ io.WriteCloser = (*memoryRun)(nil)

func (r *memoryRun) Name() string {
	return r.name
}

func (r *memoryRun) Reader() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(r.data)), nil
}

func (r *memoryRun) Writer() (io.WriteCloser, error) {
	r.data = r.data[:0]
	return r, nil
}

func (r *memoryRun) Write(p []byte) (n int, err error) {
	r.data = append(r.data, p...)
	return len(p), nil
}

func (r *memoryRun) Close() error {
	return nil
}

// MemoryRun wraps data, which is read as-is and replaced on write.
func MemoryRun(name string, data []byte) Run {
	return &memoryRun{name: name, data: data}
}

// Bytes returns the contents of a run created by MemoryRun or a memory store.
func Bytes(r Run) ([]byte, bool) {
	mr, ok := r.(*memoryRun)
	if !ok {
		return nil, false
	}
	return mr.data, true
}
