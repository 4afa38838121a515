//go:build !gst

package gstreamer

import "pipelined.dev/tutorial/media"

// Backend reports ErrUnavailable on every call.
type Backend struct {
	options
}

// New returns a backend which can't be initialized.
func New(opts ...Option) *Backend {
	return &Backend{options: newOptions(opts)}
}

// Init implements media.Backend.
func (b *Backend) Init() error {
	return ErrUnavailable
}

// Deinit implements media.Backend.
func (b *Backend) Deinit() {}

// NewElement implements media.Backend.
func (b *Backend) NewElement(string, string) (media.ElementBackend, error) {
	return nil, ErrUnavailable
}

// NewPipeline implements media.Backend.
func (b *Backend) NewPipeline(string, func(media.Message)) (media.PipelineBackend, error) {
	return nil, ErrUnavailable
}
