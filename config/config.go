// Package config loads settings of tutorial programs from the environment
// and command line flags. Flags take precedence over the environment.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"pipelined.dev/tutorial"
	"pipelined.dev/tutorial/gstreamer"
	"pipelined.dev/tutorial/media"
	"pipelined.dev/tutorial/mock"
)

// Prefix of environment variables.
const Prefix = "TUTORIAL"

// Backends.
const (
	Mock      = "mock"
	GStreamer = "gstreamer"
)

// Config holds settings of tutorial programs.
type Config struct {
	Debug          bool          `envconfig:"DEBUG" default:"false"`
	Backend        string        `envconfig:"BACKEND" default:"mock"`
	URI            string        `envconfig:"URI"`
	Pattern        string        `envconfig:"PATTERN" default:"smpte"`
	NumBuffers     int           `envconfig:"NUM_BUFFERS" default:"-1"`
	AudioOut       string        `envconfig:"AUDIO_OUT"`
	Layout         string        `envconfig:"LAYOUT"`
	MetricsAddr    string        `envconfig:"METRICS_ADDR"`
	BufferInterval time.Duration `envconfig:"BUFFER_INTERVAL" default:"33ms"`
	IgnoreUnknown  bool          `envconfig:"IGNORE_UNKNOWN" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.URI == "" {
		cfg.URI = tutorial.DefaultURI
	}
	return &cfg, nil
}

// Register defines flags common for all programs. Current values are
// used as defaults.
func (c *Config) Register(fs *flag.FlagSet) {
	fs.BoolVar(&c.Debug, "debug", c.Debug, "enable debug logging")
	fs.StringVar(&c.Backend, "backend", c.Backend, "media backend: mock or gstreamer")
	fs.StringVar(&c.MetricsAddr, "metrics-addr", c.MetricsAddr, "address to serve prometheus metrics on, disabled if empty")
	fs.DurationVar(&c.BufferInterval, "buffer-interval", c.BufferInterval, "interval between buffers of mock sources")
}

// RegisterTestPattern defines flags of the static pipeline.
func (c *Config) RegisterTestPattern(fs *flag.FlagSet) {
	c.Register(fs)
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "test source pattern")
	fs.IntVar(&c.NumBuffers, "num-buffers", c.NumBuffers, "number of buffers to play, infinite if negative")
	fs.StringVar(&c.Layout, "layout", c.Layout, "yaml file with pipeline layout")
}

// RegisterDynamic defines flags of the dynamic pipeline.
func (c *Config) RegisterDynamic(fs *flag.FlagSet) {
	c.Register(fs)
	fs.StringVar(&c.URI, "uri", c.URI, "uri to play")
	fs.StringVar(&c.AudioOut, "audio-out", c.AudioOut, "write audio into wav file instead of audio device")
	fs.BoolVar(&c.IgnoreUnknown, "ignore-unknown", c.IgnoreUnknown, "leave pads of unknown media type unlinked")
}

// Logger returns the logger configured with debug level.
func (c *Config) Logger(l *logrus.Logger) *logrus.Logger {
	if c.Debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// NewBackend returns configured media backend.
func (c *Config) NewBackend(l logrus.FieldLogger) (media.Backend, error) {
	switch c.Backend {
	case Mock:
		return mock.New(
			mock.WithLogger(l),
			mock.WithBufferInterval(c.BufferInterval),
		), nil
	case GStreamer:
		return gstreamer.New(gstreamer.WithLogger(l)), nil
	}
	return nil, fmt.Errorf("unknown backend %q", c.Backend)
}
