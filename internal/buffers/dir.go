package buffers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
)

// dirStore keeps its runs in a private subdirectory, so several stores and
// processes can share a parent and Release leaves the parent untouched.
type dirStore struct {
	dir    string
	nextID atomic.Int64
}

// NewDirStore creates a fresh subdirectory of parent for its runs, creating
// parent if needed. An empty parent means os.TempDir.
func NewDirStore(parent string) (RunStore, error) {
	if parent == "" {
		parent = os.TempDir()
	}
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory %s: %w", parent, err)
	}
	dir, err := os.MkdirTemp(parent, "radixsort-runs-*")
	if err != nil {
		return nil, fmt.Errorf("create run directory in %s: %w", parent, err)
	}
	return &dirStore{dir: dir}, nil
}

func (d *dirStore) New() (Run, error) {
	id := d.nextID.Add(1)
	return &fileRun{path: filepath.Join(d.dir, fmt.Sprintf("%04d.run", id))}, nil
}

// Release removes the store's own subdirectory and every run in it.
func (d *dirStore) Release() error {
	return os.RemoveAll(d.dir)
}

// Dir returns the directory holding the runs of a store created by
// NewDirStore.
func Dir(s RunStore) (string, bool) {
	switch s := s.(type) {
	case *dirStore:
		return s.dir, true
	case *compressedStore:
		return Dir(s.base)
	}
	return "", false
}

type fileRun struct {
	path string
}

// FileRun reads and writes the file at path.
func FileRun(path string) Run {
	return &fileRun{path: path}
}

func (f *fileRun) Name() string {
	return f.path
}

func (f *fileRun) Writer() (io.WriteCloser, error) {
	return os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
}

func (f *fileRun) Reader() (io.ReadCloser, error) {
	return os.Open(f.path)
}

// Path returns the file behind a run created by FileRun or a dir store,
// looking through CompressedRun.
func Path(r Run) (string, bool) {
	switch r := r.(type) {
	case *fileRun:
		return r.path, true
	case *compressedRun:
		return Path(r.base)
	}
	return "", false
}
