package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pipelined.dev/tutorial/internal/pool"
)

func TestPool(t *testing.T) {
	tests := []struct {
		numChannels int
		frames      int
		allocs      int
	}{
		{
			numChannels: 1,
			frames:      512,
			allocs:      10,
		},
		{
			numChannels: 2,
			frames:      1024,
			allocs:      1000,
		},
	}
	for _, test := range tests {
		p := pool.Get(test.frames, test.numChannels)
		assert.Same(t, p, pool.Get(test.frames, test.numChannels))
		for i := 0; i < test.allocs; i++ {
			b := p.Alloc()
			assert.Equal(t, test.frames*test.numChannels, len(b))
			for j := range b {
				assert.Zero(t, b[j])
				b[j] = j
			}
			p.Free(b)
		}
	}
}

func TestFreeForeign(t *testing.T) {
	p := pool.New(4, 1)
	p.Free(make([]int, 8))
	assert.Len(t, p.Alloc(), 4)
}
