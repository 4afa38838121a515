// Package gstreamer is the media backend built on GStreamer. It's only
// available when the module is built with the gst tag:
//
//	go build -tags gst ./...
//
// Otherwise every call reports ErrUnavailable.
package gstreamer

import (
	"errors"

	"github.com/sirupsen/logrus"

	"pipelined.dev/tutorial/log"
)

// ErrUnavailable is returned when the backend is not compiled in.
var ErrUnavailable = errors.New("gstreamer backend is not available, rebuild with -tags gst")

type options struct {
	log logrus.FieldLogger
}

// Option provides a way to set functional parameters to backend.
type Option func(*options)

// WithLogger sets logger to backend.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = l
	}
}

func newOptions(opts []Option) options {
	o := options{log: log.GetLogger()}
	for _, option := range opts {
		option(&o)
	}
	return o
}
