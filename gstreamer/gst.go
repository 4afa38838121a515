//go:build gst

package gstreamer

import (
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/go-gst/go-gst/gst"

	"pipelined.dev/tutorial/media"
)

// pollInterval limits how long the bus reader blocks, so it can notice
// disposed pipeline.
const pollInterval = 100 * time.Millisecond

// Backend implements media.Backend with GStreamer.
type Backend struct {
	options
}

// New returns GStreamer backend.
func New(opts ...Option) *Backend {
	return &Backend{options: newOptions(opts)}
}

// Init implements media.Backend.
func (b *Backend) Init() error {
	gst.Init(nil)
	b.log.Debug("gstreamer initialized")
	return nil
}

// Deinit implements media.Backend.
func (b *Backend) Deinit() {
	gst.Deinit()
}

// NewElement implements media.Backend.
func (b *Backend) NewElement(factory, name string) (media.ElementBackend, error) {
	e, err := gst.NewElementWithName(factory, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", media.ErrNoSuchFactory, factory, err)
	}
	return &element{Element: e}, nil
}

// NewPipeline implements media.Backend. Messages of the pipeline bus are
// converted and passed to post from a dedicated goroutine.
func (b *Backend) NewPipeline(name string, post func(media.Message)) (media.PipelineBackend, error) {
	p, err := gst.NewPipeline(name)
	if err != nil {
		return nil, err
	}
	pl := &pipeline{
		element:  element{Element: p.Element},
		pipeline: p,
		done:     make(chan struct{}),
	}
	go pl.read(b, post)
	return pl, nil
}

type element struct {
	*gst.Element

	mu   sync.Mutex
	pads map[unsafe.Pointer]*pad
}

// wrap returns the single wrapper of the underlying pad, so callers can
// key on pad identity.
func (e *element) wrap(p *gst.Pad) *pad {
	e.mu.Lock()
	defer e.mu.Unlock()
	if w, ok := e.pads[p.Unsafe()]; ok {
		return w
	}
	if e.pads == nil {
		e.pads = make(map[unsafe.Pointer]*pad)
	}
	w := &pad{Pad: p}
	e.pads[p.Unsafe()] = w
	return w
}

// SetProperty implements media.ElementBackend.
func (e *element) SetProperty(name, value string) error {
	if _, err := e.GetPropertyType(name); err != nil {
		return fmt.Errorf("%w: %v", media.ErrNoSuchProperty, err)
	}
	e.SetArg(name, value)
	return nil
}

// StaticPad implements media.ElementBackend.
func (e *element) StaticPad(name string) (media.PadBackend, bool) {
	p := e.GetStaticPad(name)
	if p == nil {
		return nil, false
	}
	return e.wrap(p), true
}

// Link implements media.ElementBackend.
func (e *element) Link(dst media.ElementBackend) error {
	d, ok := dst.(*element)
	if !ok {
		return media.ErrWrongHierarchy
	}
	if err := e.Element.Link(d.Element); err != nil {
		return fmt.Errorf("%w: %v", media.ErrNoFormat, err)
	}
	return nil
}

// ConnectPadAdded implements media.ElementBackend.
func (e *element) ConnectPadAdded(fn func(media.PadBackend)) {
	e.Connect("pad-added", func(_ *gst.Element, p *gst.Pad) {
		fn(e.wrap(p))
	})
}

type pad struct {
	*gst.Pad
}

// Name implements media.PadBackend.
func (p *pad) Name() string {
	return p.GetName()
}

// CurrentCaps implements media.PadBackend.
func (p *pad) CurrentCaps() (media.Caps, bool) {
	c := p.GetCurrentCaps()
	if c == nil {
		return media.Caps{}, false
	}
	var caps media.Caps
	for i := 0; i < c.GetSize(); i++ {
		s := c.GetStructureAt(i)
		caps = caps.Append(media.Structure{Name: s.Name(), Fields: s.Values()})
	}
	return caps, true
}

// Link implements media.PadBackend.
func (p *pad) Link(sink media.PadBackend) error {
	s, ok := sink.(*pad)
	if !ok {
		return media.ErrWrongHierarchy
	}
	switch ret := p.Pad.Link(s.Pad); ret {
	case gst.PadLinkOK:
		return nil
	case gst.PadLinkWasLinked:
		return media.ErrWasLinked
	case gst.PadLinkNoFormat:
		return media.ErrNoFormat
	case gst.PadLinkWrongDirection:
		return media.ErrWrongDirection
	case gst.PadLinkWrongHierarchy:
		return media.ErrWrongHierarchy
	default:
		return fmt.Errorf("link failed: %v", ret)
	}
}

type pipeline struct {
	element
	pipeline *gst.Pipeline

	once sync.Once
	done chan struct{}
}

// Add implements media.PipelineBackend.
func (p *pipeline) Add(eb media.ElementBackend) error {
	e, ok := eb.(*element)
	if !ok {
		return media.ErrWrongHierarchy
	}
	if err := p.pipeline.Add(e.Element); err != nil {
		return fmt.Errorf("%w: %v", media.ErrOwned, err)
	}
	return nil
}

// SetState implements media.PipelineBackend.
func (p *pipeline) SetState(s media.State) error {
	return p.pipeline.SetState(gst.State(s))
}

// State implements media.PipelineBackend.
func (p *pipeline) State() media.State {
	return media.State(p.pipeline.GetCurrentState())
}

// Dispose implements media.PipelineBackend.
func (p *pipeline) Dispose() {
	p.once.Do(func() {
		close(p.done)
	})
}

// read converts bus messages until pipeline is disposed.
func (p *pipeline) read(b *Backend, post func(media.Message)) {
	bus := p.pipeline.GetPipelineBus()
	for {
		select {
		case <-p.done:
			return
		default:
		}
		msg := bus.TimedPop(gst.ClockTime(pollInterval))
		if msg == nil {
			continue
		}
		if m := convert(msg); m != nil {
			post(m)
		} else {
			b.log.Debugf("skipped %s message from %s", msg.TypeName(), msg.Source())
		}
	}
}

func convert(msg *gst.Message) media.Message {
	h := media.Header{SrcName: msg.Source()}
	switch msg.Type() {
	case gst.MessageEOS:
		return &media.EOS{Header: h}
	case gst.MessageError:
		err := msg.ParseError()
		return &media.ErrorMessage{Header: h, Err: err, Debug: err.DebugString()}
	case gst.MessageWarning:
		err := msg.ParseWarning()
		return &media.Warning{Header: h, Err: err, Debug: err.DebugString()}
	case gst.MessageStateChanged:
		old, current := msg.ParseStateChanged()
		return &media.StateChanged{Header: h, Old: media.State(old), New: media.State(current)}
	case gst.MessageStreamStart:
		return &media.StreamStart{Header: h}
	case gst.MessageAsyncDone:
		return &media.AsyncDone{Header: h}
	}
	return nil
}
