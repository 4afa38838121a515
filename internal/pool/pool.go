// Package pool provides pools of interleaved sample slices, one per buffer
// geometry.
package pool

import "sync"

type key struct {
	frames      int
	numChannels int
}

var m = struct {
	sync.Mutex
	pools map[key]*Pool
}{
	pools: map[key]*Pool{},
}

// Pool allocates sample slices of frames*numChannels length.
type Pool struct {
	size int
	pool sync.Pool
}

// Get returns the pool for provided geometry.
func Get(frames, numChannels int) *Pool {
	m.Lock()
	defer m.Unlock()
	k := key{frames, numChannels}
	if p, ok := m.pools[k]; ok {
		return p
	}

	p := New(frames, numChannels)
	m.pools[k] = p
	return p
}

// New returns a new pool.
func New(frames, numChannels int) *Pool {
	return &Pool{size: frames * numChannels}
}

// Alloc returns zeroed slice.
func (p *Pool) Alloc() []int {
	if v := p.pool.Get(); v != nil {
		data := *v.(*[]int)
		clear(data)
		return data
	}
	return make([]int, p.size)
}

// Free returns slice to the pool. Slices of other length are dropped.
func (p *Pool) Free(data []int) {
	if len(data) != p.size {
		return
	}
	p.pool.Put(&data)
}
