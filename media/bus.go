package media

import (
	"context"
	"sync"
	"time"
)

// ClockTimeNone passed as a timeout makes TimedPop wait forever.
const ClockTimeNone time.Duration = -1

// Bus is an ordered, unbounded message queue with a single reader.
// Posting never blocks.
type Bus struct {
	mu       sync.Mutex
	queue    []Message
	flushing bool
	// ready has a value when queue is not empty.
	ready chan struct{}
}

func newBus() *Bus {
	return &Bus{
		ready: make(chan struct{}, 1),
	}
}

// Post appends message to the bus. False is returned if bus is flushing
// and message was dropped.
func (b *Bus) Post(m Message) bool {
	b.mu.Lock()
	if b.flushing {
		b.mu.Unlock()
		return false
	}
	b.queue = append(b.queue, m)
	b.mu.Unlock()
	b.signal()
	return true
}

// Pop blocks until the next message is available or context is done.
func (b *Bus) Pop(ctx context.Context) (Message, error) {
	for {
		if m, ok := b.pop(); ok {
			return m, nil
		}
		select {
		case <-b.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// TimedPop waits for the next message at most timeout. ClockTimeNone
// makes it wait forever. False is returned if timeout is reached.
func (b *Bus) TimedPop(timeout time.Duration) (Message, bool) {
	ctx := context.Background()
	if timeout >= 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	m, err := b.Pop(ctx)
	return m, err == nil
}

// SetFlushing drops all pending messages and makes the bus reject new
// ones until flushing is disabled again.
func (b *Bus) SetFlushing(flushing bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.flushing = flushing
	if flushing {
		b.queue = nil
	}
}

// Len returns number of pending messages.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

func (b *Bus) pop() (Message, bool) {
	b.mu.Lock()
	if len(b.queue) == 0 {
		b.mu.Unlock()
		return nil, false
	}
	m := b.queue[0]
	b.queue[0] = nil
	b.queue = b.queue[1:]
	more := len(b.queue) > 0
	b.mu.Unlock()
	if more {
		b.signal()
	}
	return m, true
}

func (b *Bus) signal() {
	select {
	case b.ready <- struct{}{}:
	default:
	}
}
