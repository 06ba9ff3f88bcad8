package poolutil

// Pool is a bounded free list. Items beyond its capacity are dropped on Put
// and left to the garbage collector.
type Pool[T any] struct {
	New   func() T
	Reset func(T) T
	pool  chan T
}

func NewPool[T any](new func() T, reset func(T) T, size int) *Pool[T] {
	return &Pool[T]{
		New:   new,
		Reset: reset,
		pool:  make(chan T, size),
	}
}

func (p *Pool[T]) Get() T {
	select {
	case item := <-p.pool:
		return item
	default:
		return p.New()
	}
}

func (p *Pool[T]) Put(item T) {
	if p.Reset != nil {
		item = p.Reset(item)
	}
	select {
	case p.pool <- item:
	default:
	}
}

// Len reports how many items are currently cached.
func (p *Pool[T]) Len() int {
	return len(p.pool)
}

// SlabPool recycles byte slabs used as sort scratch space. It is safe for
// concurrent use.
type SlabPool struct {
	pool *Pool[[]byte]
}

// NewSlabPool caches at most size slabs.
func NewSlabPool(size int) *SlabPool {
	return &SlabPool{
		pool: NewPool(func() []byte { return nil }, func(b []byte) []byte { return b[:0] }, size),
	}
}

// Get returns a slab of exactly n bytes. Its contents are unspecified.
func (p *SlabPool) Get(n int) []byte {
	b := p.pool.Get()
	if cap(b) < n {
		// Too small for this request; a fresh slab replaces it in the cache on Put.
		return make([]byte, n)
	}
	return b[:n]
}

func (p *SlabPool) Put(b []byte) {
	if cap(b) == 0 {
		return
	}
	p.pool.Put(b)
}

// Cached reports how many slabs are ready for reuse.
func (p *SlabPool) Cached() int {
	return p.pool.Len()
}
