package tutorial

import (
	"context"
	"errors"
	"fmt"

	"pipelined.dev/tutorial/media"
)

// Termination is the reason the bus loop has ended.
type Termination int

const (
	// Interrupted means the loop was stopped by context.
	Interrupted Termination = iota
	// EndOfStream means the pipeline has finished the stream.
	EndOfStream
	// Failed means an element posted an error.
	Failed
)

func (t Termination) String() string {
	switch t {
	case EndOfStream:
		return "end of stream"
	case Failed:
		return "error"
	}
	return "interrupted"
}

// ErrPlay is returned when the pipeline can't be set to playing state.
var ErrPlay = errors.New("unable to set the pipeline to the playing state")

// ErrTeardown is returned when the pipeline can't be set to null state.
var ErrTeardown = errors.New("unable to set the pipeline to the null state")

// Driver plays the pipeline until end of stream or error.
type Driver struct {
	pipeline *media.Pipeline
	options
}

// NewDriver returns a driver for the pipeline.
func NewDriver(p *media.Pipeline, opts ...Option) *Driver {
	return &Driver{
		pipeline: p,
		options:  newOptions(opts),
	}
}

// Run sets pipeline to the playing state and blocks on the bus until a
// terminal message is received or context is done. Pipeline is set to
// the null state before return in any case.
func (d *Driver) Run(ctx context.Context) (t Termination, err error) {
	defer d.metric.Run()()
	defer func() {
		if nullErr := d.pipeline.SetState(media.StateNull); nullErr != nil {
			err = errors.Join(err, fmt.Errorf("%w: %v", ErrTeardown, nullErr))
		}
	}()
	if err := d.pipeline.SetState(media.StatePlaying); err != nil {
		return Interrupted, fmt.Errorf("%w: %v", ErrPlay, err)
	}

	bus := d.pipeline.Bus()
	for {
		m, err := bus.Pop(ctx)
		if err != nil {
			return Interrupted, err
		}
		d.metric.Message(m.Type().String())
		switch m := m.(type) {
		case *media.EOS:
			d.log.Info("End-Of-Stream reached.")
			return EndOfStream, nil
		case *media.ErrorMessage:
			d.log.Errorf("Error received from element %s: %v", sourcePath(m), m.Err)
			d.log.Errorf("Debugging information: %s", debugInfo(m.Debug))
			return Failed, nil
		case *media.StateChanged:
			if d.stateChanges && d.pipeline.IsSourceOf(m) {
				d.log.Infof("Pipeline state changed from %v to %v", m.Old, m.New)
			}
		}
	}
}

// sourcePath returns the path of the element which posted the message,
// or its name if the element isn't known to the pipeline.
func sourcePath(m media.Message) string {
	if e := m.Source(); e != nil {
		return e.Path()
	}
	if name := m.SourceName(); name != "" {
		return name
	}
	return "unknown"
}

func debugInfo(debug string) string {
	if debug == "" {
		return "none"
	}
	return debug
}
