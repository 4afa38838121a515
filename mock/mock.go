// Package mock is an in-process media backend. It simulates element
// factories, pads, caps negotiation, streaming goroutines and the bus,
// so pipelines can be built and driven without the real framework.
package mock

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"pipelined.dev/tutorial/log"
	"pipelined.dev/tutorial/media"
)

// Backend implements media.Backend.
type Backend struct {
	log           logrus.FieldLogger
	client        *retryablehttp.Client
	interval      time.Duration
	streamBuffers int
	failing       map[media.State]error

	mu      sync.Mutex
	inits   int
	deinits int
}

// Option provides a way to set functional parameters to backend.
type Option func(*Backend)

// New returns a new mock backend.
func New(options ...Option) *Backend {
	b := &Backend{
		log:           log.GetLogger(),
		streamBuffers: 100,
		failing:       make(map[media.State]error),
	}
	for _, option := range options {
		option(b)
	}
	if b.client == nil {
		b.client = newClient(b.log)
	}
	return b
}

// WithLogger sets logger to backend.
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Backend) {
		b.log = l
	}
}

// WithHTTPClient sets the client used to probe http and https URIs.
func WithHTTPClient(c *retryablehttp.Client) Option {
	return func(b *Backend) {
		b.client = c
	}
}

// WithBufferInterval sets the delay sources wait before every buffer.
func WithBufferInterval(d time.Duration) Option {
	return func(b *Backend) {
		b.interval = d
	}
}

// WithStreamBuffers sets number of buffers every uridecodebin stream
// produces before EOS.
func WithStreamBuffers(n int) Option {
	return func(b *Backend) {
		b.streamBuffers = n
	}
}

// WithFailingState makes pipelines reject state changes to s.
func WithFailingState(s media.State) Option {
	return func(b *Backend) {
		b.failing[s] = fmt.Errorf("state %v is rejected", s)
	}
}

// Init implements media.Backend.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inits++
	return nil
}

// Deinit implements media.Backend.
func (b *Backend) Deinit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deinits++
}

// Inits returns how many times backend was initialized and released.
func (b *Backend) Inits() (inits, deinits int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inits, b.deinits
}

// NewElement implements media.Backend.
func (b *Backend) NewElement(factory, name string) (media.ElementBackend, error) {
	f, ok := factories[factory]
	if !ok {
		return nil, fmt.Errorf("%w: %s", media.ErrNoSuchFactory, factory)
	}
	return newElement(b, f, name), nil
}

// NewPipeline implements media.Backend.
func (b *Backend) NewPipeline(name string, post func(media.Message)) (media.PipelineBackend, error) {
	p := &Pipeline{
		post: post,
	}
	p.Element.init(b, bin, name)
	p.current.Store(int64(media.StateNull))
	return p, nil
}

// Factories returns names of all known factories.
func Factories() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}
