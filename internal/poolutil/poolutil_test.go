package poolutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool(t *testing.T) {
	made := 0
	p := NewPool(func() []int {
		made++
		return make([]int, 0, 4)
	}, func(s []int) []int {
		return s[:0]
	}, 1)

	a := p.Get()
	a = append(a, 1, 2)
	p.Put(a)
	assert.Equal(t, 1, p.Len())

	b := p.Get()
	assert.Empty(t, b, "reset runs on Put")
	assert.Equal(t, 4, cap(b))
	assert.Equal(t, 1, made)

	p.Put(b)
	p.Put(make([]int, 0, 4)) // over capacity, dropped
	assert.Equal(t, 1, p.Len())
}

func TestSlabPool(t *testing.T) {
	p := NewSlabPool(2)
	assert.Zero(t, p.Cached())

	s := p.Get(100)
	assert.Len(t, s, 100)
	p.Put(s)
	assert.Equal(t, 1, p.Cached())

	small := p.Get(10)
	assert.Len(t, small, 10)
	assert.Equal(t, 100, cap(small), "a cached slab large enough is reused")
	p.Put(small)

	big := p.Get(1000)
	assert.Len(t, big, 1000)

	p.Put(nil)
	assert.Zero(t, p.Cached())
}

func TestSlabPool_Concurrent(t *testing.T) {
	p := NewSlabPool(4)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s := p.Get(n)
				s[n-1] = byte(j)
				p.Put(s)
			}
		}(i + 1)
	}
	wg.Wait()
	assert.LessOrEqual(t, p.Cached(), 4)
}
