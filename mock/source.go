package mock

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"pipelined.dev/tutorial/internal/runtime"
	"pipelined.dev/tutorial/media"
)

// elementError is posted as is, other streaming errors are reported as
// data flow errors.
type elementError struct {
	err   error
	debug string
}

func (e *elementError) Error() string {
	return e.err.Error()
}

func (e *elementError) Unwrap() error {
	return e.err
}

var errDataFlow = errors.New("Internal data stream error.")

// testSource is the executor of videotestsrc and audiotestsrc.
type testSource struct {
	runtime.FlushFunc
	el       *Element
	pipeline *Pipeline
	pad      *Pad
	limit    int
	sent     int
	wave     wave
}

func newTestSource(p *Pipeline, e *Element) *testSource {
	limit, _ := strconv.Atoi(e.Property("num-buffers"))
	freq, _ := strconv.ParseFloat(e.Property("freq"), 64)
	return &testSource{
		el:       e,
		pipeline: p,
		pad:      e.srcPad(),
		limit:    limit,
		wave:     wave{shape: e.Property("wave"), freq: freq},
	}
}

// Start negotiates source caps.
func (s *testSource) Start(context.Context) error {
	s.pad.negotiate(s.el.factory.caps(s.el))
	s.pipeline.postFrom(s.el, &media.StreamStart{})
	return nil
}

// Execute pushes a single buffer.
func (s *testSource) Execute(ctx context.Context) error {
	if err := s.pipeline.waitPlaying(ctx); err != nil {
		return err
	}
	if s.limit >= 0 && s.sent >= s.limit {
		if err := s.pad.push(ctx, item{eos: true}); err != nil {
			return err
		}
		return io.EOF
	}
	if err := sleep(ctx, s.el.backend.interval); err != nil {
		return err
	}
	caps, _ := s.pad.CurrentCaps()
	if err := s.pad.push(ctx, item{buf: newBuffer(caps, s.sent, s.wave)}); err != nil {
		return err
	}
	s.sent++
	return nil
}

// decodeBin is the executor of uridecodebin. It discovers elementary
// streams in paused state and adds a pad for each of them.
type decodeBin struct {
	el       *Element
	pipeline *Pipeline
	pads     []*Pad
	limit    int
	sent     int
}

func newDecodeBin(p *Pipeline, e *Element) *decodeBin {
	return &decodeBin{
		el:       e,
		pipeline: p,
		limit:    e.backend.streamBuffers,
	}
}

// Start probes the uri and exposes a pad per stream.
func (d *decodeBin) Start(ctx context.Context) error {
	uri := d.el.Property("uri")
	if uri == "" {
		return &elementError{err: errors.New("No URI specified to play from.")}
	}
	mime, err := d.el.backend.probe(ctx, uri)
	if err != nil {
		if ctx.Err() != nil {
			return runtime.ErrContextDone
		}
		return &elementError{
			err:   errors.New("Could not open resource for reading."),
			debug: err.Error(),
		}
	}
	streams, err := streamsOf(mime)
	if err != nil {
		return &elementError{
			err:   errors.New("Your installation is missing a plug-in."),
			debug: err.Error(),
		}
	}
	d.el.log.Debugf("discovered %d streams in %s", len(streams), mime)
	for i, caps := range streams {
		d.pads = append(d.pads, d.el.AddPad(fmt.Sprintf("src_%d", i), caps))
	}
	d.pipeline.postFrom(d.el, &media.StreamStart{})
	return nil
}

// Execute pushes one buffer into every stream. Streams without peer are
// skipped unless none of them is linked.
func (d *decodeBin) Execute(ctx context.Context) error {
	if err := d.pipeline.waitPlaying(ctx); err != nil {
		return err
	}
	if d.sent >= d.limit {
		for _, p := range d.pads {
			if err := p.push(ctx, item{eos: true}); err != nil && !errors.Is(err, errNotLinked) {
				return err
			}
		}
		return io.EOF
	}
	if err := sleep(ctx, d.el.backend.interval); err != nil {
		return err
	}
	linked := false
	for _, p := range d.pads {
		caps, _ := p.CurrentCaps()
		err := p.push(ctx, item{buf: newBuffer(caps, d.sent, wave{shape: "sine", freq: 440})})
		if errors.Is(err, errNotLinked) {
			continue
		}
		if err != nil {
			return err
		}
		linked = true
	}
	if !linked {
		return errNotLinked
	}
	d.sent++
	return nil
}

// Flush removes discovered pads.
func (d *decodeBin) Flush(context.Context) error {
	d.el.removeDynamicPads()
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return runtime.ErrContextDone
		default:
			return nil
		}
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return runtime.ErrContextDone
	case <-t.C:
		return nil
	}
}
