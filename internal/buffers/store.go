package buffers

import "io"

// Run is a handle to one stream of records: a sorted run spilled by the
// external sorter, or a record file read or written by the CLI.
type Run interface {
	Reader() (io.ReadCloser, error)
	// Writer truncates the run before returning.
	Writer() (io.WriteCloser, error)
	Name() string
}

// RunStore creates runs and releases everything it created.
type RunStore interface {
	New() (Run, error)
	Release() error
}

type RunStoreFactory func() (RunStore, error)

func NewMemoryStoreFactory(compressed bool) RunStoreFactory {
	return func() (RunStore, error) {
		if compressed {
			return NewCompressedStore(NewMemoryStore()), nil
		}
		return NewMemoryStore(), nil
	}
}

// NewDirStoreFactory spills runs to a new subdirectory of dir, or of
// os.TempDir when dir is empty.
func NewDirStoreFactory(dir string, compressed bool) RunStoreFactory {
	return func() (RunStore, error) {
		store, err := NewDirStore(dir)
		if err != nil {
			return nil, err
		}
		if compressed {
			return NewCompressedStore(store), nil
		}
		return store, nil
	}
}
