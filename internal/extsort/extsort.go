// Package extsort sorts streams of fixed-width records that do not fit in
// memory. Records are gathered into blocks, each block is radix sorted and
// spilled to a run, and the runs are merged on iteration.
package extsort

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/garethgeorge/radixsort/internal/buffers"
	"github.com/garethgeorge/radixsort/internal/ioutil"
	"github.com/garethgeorge/radixsort/internal/poolutil"
	"github.com/garethgeorge/radixsort/internal/progress"
	"github.com/garethgeorge/radixsort/internal/radix"
	"golang.org/x/sync/errgroup"
)

type options struct {
	maxBlockBytes    int
	storeParallelism int
	iterChunkRecords int
	tracker          progress.SpinnerProgressTracker
}

type Option = func(*options)

// WithMaxBlockBytes sets the size of each in-memory block before it is sorted
// and stored as a run. It is rounded down to whole records.
func WithMaxBlockBytes(size int) func(*options) {
	return func(o *options) {
		o.maxBlockBytes = size
	}
}

// WithStoreParallelism sets how many blocks may be sorted and stored at once.
// Each one holds a block and its scratch space in memory.
func WithStoreParallelism(parallelism int) func(*options) {
	return func(o *options) {
		o.storeParallelism = parallelism
	}
}

// WithIterChunkRecords sets the number of records read ahead from each run
// during iteration. At most two chunks per run are held in memory.
func WithIterChunkRecords(records int) func(*options) {
	return func(o *options) {
		o.iterChunkRecords = records
	}
}

// WithProgress reports the number of runs stored.
func WithProgress(tracker progress.SpinnerProgressTracker) func(*options) {
	return func(o *options) {
		o.tracker = tracker
	}
}

type storedRun struct {
	seq     int
	run     buffers.Run
	records int
}

// Sorter accumulates records and produces them in the order of a
// radix.Sorter.
//
// Add records with Add or AddBlock, then call Flush and check its error.
// After flushing, SortIter returns an iterator over every record added so
// far; check its Err after iterating. Records comparing equal keep the order
// they were added in.
type Sorter struct {
	store  buffers.RunStore
	sorter *radix.Sorter
	width  int

	maxBlockRecords  int
	iterChunkRecords int
	tracker          progress.SpinnerProgressTracker

	blockPool *poolutil.SlabPool

	curBlockMu sync.Mutex
	curBlock   []byte
	nextSeq    int
	total      int64

	runsMu sync.Mutex
	runs   []storedRun

	storeGroup errgroup.Group
	err        atomic.Pointer[error]
}

// New returns a Sorter for records of width bytes that spills runs into store.
// The Sorter owns store and releases it on Close.
func New(store buffers.RunStore, sorter *radix.Sorter, width int, opts ...Option) (*Sorter, error) {
	if err := sorter.CheckWidth(width); err != nil {
		return nil, err
	}
	options := options{
		maxBlockBytes:    32 * 1024 * 1024, // 32 MB
		storeParallelism: 2,
		iterChunkRecords: 4096,
		tracker:          progress.NoopSpinnerProgressTracker{},
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.storeParallelism < 1 {
		options.storeParallelism = 1
	}
	if options.iterChunkRecords < 1 {
		options.iterChunkRecords = 1
	}

	s := &Sorter{
		store:            store,
		sorter:           sorter,
		width:            width,
		maxBlockRecords:  max(options.maxBlockBytes/width, 1),
		iterChunkRecords: options.iterChunkRecords,
		tracker:          options.tracker,
		blockPool:        poolutil.NewSlabPool(options.storeParallelism + 1),
	}
	s.storeGroup.SetLimit(options.storeParallelism)
	s.tracker.SetMessage("runs stored")
	return s, nil
}

func (s *Sorter) setError(err error) {
	s.err.CompareAndSwap(nil, &err)
}

func (s *Sorter) haveError() error {
	if errPtr := s.err.Load(); errPtr != nil {
		return *errPtr
	}
	return nil
}

// Close waits for in-flight blocks and releases the run store.
func (s *Sorter) Close() error {
	s.storeGroup.Wait()

	s.runsMu.Lock()
	defer s.runsMu.Unlock()
	s.runs = nil
	if err := s.store.Release(); err != nil {
		return fmt.Errorf("release run store: %w", err)
	}
	return nil
}

// Add copies one record into the current block.
func (s *Sorter) Add(record []byte) error {
	if len(record) != s.width {
		return fmt.Errorf("record is %d bytes, want %d", len(record), s.width)
	}
	return s.AddBlock(record)
}

// AddBlock copies every record in records, which must hold whole records.
func (s *Sorter) AddBlock(records []byte) error {
	if len(records)%s.width != 0 {
		return fmt.Errorf("%d bytes is not a whole number of %d byte records: %w", len(records), s.width, ioutil.ErrPartialRecord)
	}

	s.curBlockMu.Lock()
	defer s.curBlockMu.Unlock()

	if err := s.haveError(); err != nil {
		return err
	}

	blockBytes := s.maxBlockRecords * s.width
	for len(records) > 0 {
		if s.curBlock == nil {
			s.curBlock = s.blockPool.Get(blockBytes)[:0]
		}
		take := min(len(records), blockBytes-len(s.curBlock))
		s.curBlock = append(s.curBlock, records[:take]...)
		records = records[take:]
		s.total += int64(take / s.width)

		if len(s.curBlock) == blockBytes {
			s.swapToNewBlock()
		}
	}
	return nil
}

// TotalRecords returns the number of records added.
func (s *Sorter) TotalRecords() int64 {
	s.curBlockMu.Lock()
	defer s.curBlockMu.Unlock()
	return s.total
}

// Runs returns the number of runs stored so far.
func (s *Sorter) Runs() int {
	s.runsMu.Lock()
	defer s.runsMu.Unlock()
	return len(s.runs)
}

// Flush stores the current block and waits until every block is stored.
func (s *Sorter) Flush() error {
	s.curBlockMu.Lock()
	s.swapToNewBlock()
	s.curBlockMu.Unlock()

	s.storeGroup.Wait()
	if err := s.haveError(); err != nil {
		return fmt.Errorf("block failed: %w", err)
	}
	return nil
}

// swapToNewBlock hands the current block to a store worker, blocking while
// all workers are busy. The caller holds curBlockMu.
func (s *Sorter) swapToNewBlock() {
	block := s.curBlock
	s.curBlock = nil
	if len(block) == 0 {
		if block != nil {
			s.blockPool.Put(block)
		}
		return
	}

	seq := s.nextSeq
	s.nextSeq++
	s.storeGroup.Go(func() error {
		defer s.blockPool.Put(block)
		if err := s.storeBlock(seq, block); err != nil {
			err = fmt.Errorf("store block %d: %w", seq, err)
			s.setError(err)
			s.tracker.SetError(err)
			return err
		}
		return nil
	})
}

func (s *Sorter) storeBlock(seq int, block []byte) (err error) {
	n := len(block) / s.width
	if err := s.sorter.Sort(block, n, s.width); err != nil {
		return fmt.Errorf("sort block: %w", err)
	}

	run, err := s.store.New()
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	writer, err := run.Writer()
	if err != nil {
		return fmt.Errorf("open run %s: %w", run.Name(), err)
	}
	defer func() {
		if cerr := writer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close run %s: %w", run.Name(), cerr)
		}
	}()

	if _, err := writer.Write(block); err != nil {
		return fmt.Errorf("write run %s: %w", run.Name(), err)
	}

	s.runsMu.Lock()
	defer s.runsMu.Unlock()
	s.runs = append(s.runs, storedRun{seq: seq, run: run, records: n})
	s.tracker.SetDone(len(s.runs))
	return nil
}

// SortIter returns an iterator over the stored runs. It panics if records were
// added since the last Flush.
func (s *Sorter) SortIter() *Iterator {
	s.curBlockMu.Lock()
	if len(s.curBlock) > 0 {
		s.curBlockMu.Unlock()
		panic("cannot create iterator with unflushed records, call Flush() first")
	}
	total := s.total
	s.curBlockMu.Unlock()

	s.runsMu.Lock()
	defer s.runsMu.Unlock()
	runs := slices.Clone(s.runs)
	// Stores finish out of order; merge ties must favour earlier blocks.
	slices.SortFunc(runs, func(a, b storedRun) int { return a.seq - b.seq })

	return &Iterator{
		runs:        runs,
		sorter:      s.sorter,
		width:       s.width,
		chunkBytes:  s.iterChunkRecords * s.width,
		expectCount: total,
		errReady:    make(chan error, 1),
	}
}

// WriteTo writes every record in sorted order to w and returns the number of
// bytes written. Flush must be called first.
func (s *Sorter) WriteTo(w io.Writer) (int64, error) {
	it := s.SortIter()
	bw := ioutil.WithBufferedWrites(w)
	var written int64
	var werr error
	for rec := range it.Records() {
		if _, werr = bw.Write(rec); werr != nil {
			break
		}
		written += int64(len(rec))
	}
	if err := it.Err(); err != nil && werr == nil {
		return written, err
	}
	if werr != nil {
		return written, fmt.Errorf("write sorted records: %w", werr)
	}
	if err := bw.Close(); err != nil {
		return written, fmt.Errorf("flush sorted records: %w", err)
	}
	return written, nil
}

// Iterator merges the runs of a Sorter.
type Iterator struct {
	runs        []storedRun
	sorter      *radix.Sorter
	width       int
	chunkBytes  int
	expectCount int64

	errReady chan error
	err      atomic.Pointer[error]
}

// Err waits for iteration to finish and returns the first failure, including
// iteration stopping before every record was yielded.
func (it *Iterator) Err() error {
	<-it.errReady
	if errPtr := it.err.Load(); errPtr != nil {
		return *errPtr
	}
	return nil
}

func (it *Iterator) setError(err error) {
	if it.err.CompareAndSwap(nil, &err) {
		close(it.errReady)
	}
}

// Records yields every record in sorted order. A yielded slice is only valid
// until the next record is requested.
func (it *Iterator) Records() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		defer it.setError(nil)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// One chunk per run in the heap and one read ahead.
		chunkPool := poolutil.NewPool(func() []byte {
			return make([]byte, it.chunkBytes)
		}, func(b []byte) []byte {
			return b[:cap(b)]
		}, 2*len(it.runs))

		var wg sync.WaitGroup
		chunkChans := make([]chan []byte, len(it.runs))
		for i := range it.runs {
			chunkChans[i] = make(chan []byte, 1)
			wg.Add(1)
			go func(i int, sr storedRun) {
				defer wg.Done()
				defer close(chunkChans[i])

				reader, err := sr.run.Reader()
				if err != nil {
					cancel()
					it.setError(fmt.Errorf("open run %s: %w", sr.run.Name(), err))
					return
				}
				defer reader.Close()

				records := ioutil.NewRecordReader(reader, it.width)
				for {
					chunk := chunkPool.Get()
					n, err := records.ReadBlock(chunk)
					if err != nil && !errors.Is(err, io.EOF) {
						cancel()
						it.setError(fmt.Errorf("read run %s: %w", sr.run.Name(), err))
						return
					}
					if n == 0 {
						return
					}

					select {
					case chunkChans[i] <- chunk[:n*it.width]:
					case <-ctx.Done():
						return
					}
				}
			}(i, it.runs[i])
		}

		h := &runHeap{sorter: it.sorter}
		for i, ch := range chunkChans {
			chunk, ok := <-ch
			if !ok || len(chunk) == 0 {
				continue
			}
			h.sources = append(h.sources, &runCursor{
				chunk:  chunk,
				width:  it.width,
				rank:   i,
				source: ch,
				pool:   chunkPool,
			})
		}
		heap.Init(h)

		var read int64
		for h.Len() > 0 {
			cur := h.sources[0]
			read++
			if !yield(cur.Current()) {
				read = it.expectCount // stopping early is not an error
				break
			}
			if cur.Advance() {
				heap.Fix(h, 0)
			} else {
				heap.Pop(h)
			}
		}
		cancel()
		wg.Wait()
		if read < it.expectCount {
			it.setError(fmt.Errorf("iteration stopped early after %d of %d records", read, it.expectCount))
		}
	}
}

// runCursor walks the chunks read from one run.
type runCursor struct {
	chunk  []byte
	off    int
	width  int
	rank   int
	source chan []byte
	pool   *poolutil.Pool[[]byte]
}

func (c *runCursor) Current() []byte {
	return c.chunk[c.off : c.off+c.width]
}

func (c *runCursor) Advance() bool {
	c.off += c.width
	if c.off < len(c.chunk) {
		return true
	}
	c.pool.Put(c.chunk)
	next, ok := <-c.source
	if !ok || len(next) == 0 {
		return false
	}
	c.chunk = next
	c.off = 0
	return true
}

type runHeap struct {
	sorter  *radix.Sorter
	sources []*runCursor
}

func (h *runHeap) Len() int { return len(h.sources) }

func (h *runHeap) Less(i, j int) bool {
	a, b := h.sources[i], h.sources[j]
	if c := h.sorter.Compare(a.Current(), b.Current()); c != 0 {
		return c < 0
	}
	return a.rank < b.rank
}

func (h *runHeap) Swap(i, j int) { h.sources[i], h.sources[j] = h.sources[j], h.sources[i] }

func (h *runHeap) Push(x any) {
	h.sources = append(h.sources, x.(*runCursor))
}

func (h *runHeap) Pop() any {
	old := h.sources
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	h.sources = old[:n-1]
	return x
}
