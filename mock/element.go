package mock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"pipelined.dev/tutorial/media"
)

// errNotLinked is returned when data is pushed into a pad without peer.
var errNotLinked = errors.New("not-linked")

// Element implements media.ElementBackend.
type Element struct {
	uid     xid.ID
	name    string
	factory *factory
	backend *Backend
	log     logrus.FieldLogger

	mu       sync.Mutex
	props    map[string]string
	pads     []*Pad
	handlers []func(media.PadBackend)
	pipeline *Pipeline

	rendered atomic.Int64
	// wav is used by wavsink only.
	wav wavWriter
}

func newElement(b *Backend, f *factory, name string) *Element {
	e := &Element{}
	e.init(b, f, name)
	for _, t := range f.templates {
		e.pads = append(e.pads, newPad(e, t.name, t.direction, t.media, true))
	}
	return e
}

func (e *Element) init(b *Backend, f *factory, name string) {
	e.uid = xid.New()
	e.name = name
	e.factory = f
	e.backend = b
	e.props = make(map[string]string, len(f.props))
	for k, p := range f.props {
		e.props[k] = p.value
	}
	e.log = b.log.WithFields(logrus.Fields{
		"element": name,
		"uid":     e.uid.String(),
	})
}

// Name returns element name.
func (e *Element) Name() string {
	return e.name
}

// Factory returns factory name.
func (e *Element) Factory() string {
	return e.factory.name
}

// SetProperty implements media.ElementBackend.
func (e *Element) SetProperty(name, value string) error {
	p, ok := e.factory.props[name]
	if !ok {
		return media.ErrNoSuchProperty
	}
	if err := p.parse(value); err != nil {
		return fmt.Errorf("%w: %v", media.ErrInvalidProperty, err)
	}
	e.mu.Lock()
	e.props[name] = value
	e.mu.Unlock()
	e.log.Debugf("property %s=%s", name, value)
	return nil
}

// Property returns the current string value of the property.
func (e *Element) Property(name string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.props[name]
}

// StaticPad implements media.ElementBackend.
func (e *Element) StaticPad(name string) (media.PadBackend, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, p := range e.pads {
		if p.static && p.name == name {
			return p, true
		}
	}
	return nil, false
}

// Pads returns all current pads of the element.
func (e *Element) Pads() []*Pad {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Pad(nil), e.pads...)
}

// Link implements media.ElementBackend. The first free source pad is
// linked to the first free sink pad of dst.
func (e *Element) Link(dst media.ElementBackend) error {
	d, ok := dst.(*Element)
	if !ok {
		return media.ErrWrongHierarchy
	}
	src, err := e.freePad(srcDirection)
	if err != nil {
		return err
	}
	sink, err := d.freePad(sinkDirection)
	if err != nil {
		return err
	}
	return src.Link(sink)
}

func (e *Element) freePad(d direction) (*Pad, error) {
	var found bool
	for _, p := range e.Pads() {
		if p.direction != d || !p.static {
			continue
		}
		found = true
		if !p.IsLinked() {
			return p, nil
		}
	}
	if found {
		return nil, media.ErrWasLinked
	}
	return nil, fmt.Errorf("%w: %s has no %v pads", media.ErrNoSuchPad, e.name, d)
}

// ConnectPadAdded implements media.ElementBackend.
func (e *Element) ConnectPadAdded(fn func(media.PadBackend)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, fn)
}

// AddPad adds a new source pad with negotiated caps and emits pad-added on
// the calling goroutine.
func (e *Element) AddPad(name string, caps media.Caps) *Pad {
	p := newPad(e, name, srcDirection, anyMedia, false)
	p.negotiate(caps)
	e.mu.Lock()
	e.pads = append(e.pads, p)
	handlers := append(([]func(media.PadBackend))(nil), e.handlers...)
	e.mu.Unlock()

	e.log.Debugf("pad added %s with caps %v", name, caps)
	for _, fn := range handlers {
		fn(p)
	}
	return p
}

// removeDynamicPads unlinks and removes pads added with AddPad.
func (e *Element) removeDynamicPads() {
	e.mu.Lock()
	defer e.mu.Unlock()
	static := e.pads[:0]
	for _, p := range e.pads {
		if p.static {
			static = append(static, p)
			continue
		}
		p.unlink()
	}
	e.pads = static
}

// Rendered returns number of buffers received by the sink.
func (e *Element) Rendered() int64 {
	return e.rendered.Load()
}

func (e *Element) srcPad() *Pad {
	for _, p := range e.Pads() {
		if p.direction == srcDirection {
			return p
		}
	}
	return nil
}

func (e *Element) path() string {
	own := fmt.Sprintf("/%s:%s", e.factory.name, e.name)
	e.mu.Lock()
	p := e.pipeline
	e.mu.Unlock()
	if p != nil {
		return p.path() + own
	}
	return own
}

// chain receives data on the sink pad in.
func (e *Element) chain(ctx context.Context, in *Pad, it item) error {
	switch e.factory.kind {
	case kindFilter:
		out := e.srcPad()
		if it.buf != nil {
			in.negotiate(it.buf.Caps)
			out.negotiate(it.buf.Caps)
		}
		return out.push(ctx, it)
	case kindSink:
		if it.eos {
			e.log.Debug("eos")
			return nil
		}
		in.negotiate(it.buf.Caps)
		e.rendered.Add(1)
		defer it.buf.release()
		if e.factory.name == "wavsink" {
			return e.wav.write(it.buf)
		}
		return nil
	}
	return fmt.Errorf("%s can't receive data", e.name)
}

// start is called on Null to Ready transition.
func (e *Element) start() error {
	if e.factory.name == "wavsink" {
		return e.wav.open(e.Property("location"))
	}
	return nil
}

// stop is called on Ready to Null transition.
func (e *Element) stop() error {
	if e.factory.name == "wavsink" {
		return e.wav.close()
	}
	return nil
}
