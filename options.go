package tutorial

import (
	"github.com/sirupsen/logrus"

	"pipelined.dev/tutorial/log"
	"pipelined.dev/tutorial/metric"
)

// Policy defines what linker does with pads of unsupported media type.
type Policy int

const (
	// Fatal policy terminates the program.
	Fatal Policy = iota
	// Ignore policy logs a warning and leaves the pad unlinked.
	Ignore
)

type options struct {
	log          logrus.FieldLogger
	metric       *metric.Metric
	stateChanges bool
	unsupported  Policy
}

// Option provides a way to set functional parameters to linker and driver.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{
		log: log.GetLogger(),
	}
	for _, option := range opts {
		option(&o)
	}
	return o
}

// WithLogger sets logger. Fatal entries are logged with it too, so
// provided logger decides how the program exits.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithMetric enables counters.
func WithMetric(m *metric.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithStateChanges makes driver log state changes of the pipeline.
func WithStateChanges() Option {
	return func(o *options) {
		o.stateChanges = true
	}
}

// WithUnsupported sets the policy for pads of unsupported media type.
func WithUnsupported(p Policy) Option {
	return func(o *options) {
		o.unsupported = p
	}
}

type levelChecker interface {
	IsLevelEnabled(logrus.Level) bool
}

// enabled reports if entries of the level would be logged. Loggers which
// can't tell are assumed to log everything.
func (o options) enabled(level logrus.Level) bool {
	switch l := o.log.(type) {
	case levelChecker:
		return l.IsLevelEnabled(level)
	case *logrus.Entry:
		return l.Logger.IsLevelEnabled(level)
	}
	return true
}
