package media

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestBusOrder(t *testing.T) {
	b := newBus()
	messages := []Message{
		&StreamStart{},
		&StateChanged{Old: StateNull, New: StateReady},
		&EOS{},
	}
	for _, m := range messages {
		assert.True(t, b.Post(m))
	}
	assert.Equal(t, 3, b.Len())
	for _, expected := range messages {
		m, err := b.Pop(context.Background())
		require.NoError(t, err)
		assert.Same(t, expected, m)
	}
	assert.Equal(t, 0, b.Len())
}

func TestBusBlocking(t *testing.T) {
	defer goleak.VerifyNone(t)
	b := newBus()
	received := make(chan Message)
	go func() {
		m, _ := b.TimedPop(ClockTimeNone)
		received <- m
	}()

	select {
	case <-received:
		t.Fatal("pop returned on empty bus")
	case <-time.After(20 * time.Millisecond):
	}
	eos := &EOS{}
	b.Post(eos)
	assert.Same(t, eos, <-received)
}

func TestBusConcurrentPost(t *testing.T) {
	defer goleak.VerifyNone(t)
	const (
		posters = 4
		each    = 100
	)
	b := newBus()
	for i := 0; i < posters; i++ {
		go func() {
			for j := 0; j < each; j++ {
				b.Post(&StreamStart{})
			}
		}()
	}
	for i := 0; i < posters*each; i++ {
		_, ok := b.TimedPop(time.Second)
		require.True(t, ok)
	}
	_, ok := b.TimedPop(0)
	assert.False(t, ok)
}

func TestBusTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
	}{
		{name: "no wait", timeout: 0},
		{name: "short wait", timeout: 10 * time.Millisecond},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := newBus()
			m, ok := b.TimedPop(test.timeout)
			assert.False(t, ok)
			assert.Nil(t, m)
		})
	}
}

func TestBusContext(t *testing.T) {
	b := newBus()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.Pop(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBusFlushing(t *testing.T) {
	b := newBus()
	b.Post(&EOS{})
	b.SetFlushing(true)
	assert.Equal(t, 0, b.Len())
	assert.False(t, b.Post(&EOS{}))
	b.SetFlushing(false)
	assert.True(t, b.Post(&EOS{}))
	assert.Equal(t, 1, b.Len())
}
