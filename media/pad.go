package media

import "fmt"

// Pad is an input or output connection point of an element.
type Pad struct {
	impl   PadBackend
	parent *Element
}

// Name returns pad name.
func (p *Pad) Name() string {
	return p.impl.Name()
}

// Parent returns the element which owns the pad.
func (p *Pad) Parent() *Element {
	return p.parent
}

// Backend exposes the backend part of the pad.
func (p *Pad) Backend() PadBackend {
	return p.impl
}

// IsLinked reports if pad has a peer.
func (p *Pad) IsLinked() bool {
	return p.impl.IsLinked()
}

// CurrentCaps returns negotiated caps of the pad.
func (p *Pad) CurrentCaps() (Caps, bool) {
	return p.impl.CurrentCaps()
}

// Link links this source pad to the sink pad.
func (p *Pad) Link(sink *Pad) error {
	if p.parent.Disposed() || sink.parent.Disposed() {
		return ErrDisposed
	}
	if err := p.impl.Link(sink.impl); err != nil {
		return fmt.Errorf("%s:%s and %s:%s: %w", p.parent.name, p.Name(), sink.parent.name, sink.Name(), err)
	}
	return nil
}

func (p *Pad) String() string {
	return fmt.Sprintf("%s:%s", p.parent.name, p.Name())
}
