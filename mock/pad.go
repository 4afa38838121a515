package mock

import (
	"context"
	"sync"
	"sync/atomic"

	"pipelined.dev/tutorial/media"
)

type direction int

const (
	srcDirection direction = iota
	sinkDirection
)

func (d direction) String() string {
	if d == srcDirection {
		return "src"
	}
	return "sink"
}

// Pad implements media.PadBackend.
type Pad struct {
	name      string
	direction direction
	template  string
	static    bool
	parent    *Element

	mu         sync.Mutex
	peer       *Pad
	caps       media.Caps
	negotiated bool

	attempts atomic.Int64
}

func newPad(parent *Element, name string, d direction, template string, static bool) *Pad {
	return &Pad{
		name:      name,
		direction: d,
		template:  template,
		static:    static,
		parent:    parent,
	}
}

// Name implements media.PadBackend.
func (p *Pad) Name() string {
	return p.name
}

// IsLinked implements media.PadBackend.
func (p *Pad) IsLinked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.peer != nil
}

// CurrentCaps implements media.PadBackend.
func (p *Pad) CurrentCaps() (media.Caps, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.caps, p.negotiated
}

// LinkAttempts returns how many times this pad was passed to Link as a
// sink pad.
func (p *Pad) LinkAttempts() int64 {
	return p.attempts.Load()
}

// Link implements media.PadBackend.
func (p *Pad) Link(sink media.PadBackend) error {
	s, ok := sink.(*Pad)
	if !ok {
		return media.ErrWrongHierarchy
	}
	s.attempts.Add(1)
	if p.direction != srcDirection || s.direction != sinkDirection {
		return media.ErrWrongDirection
	}

	// source pads are always locked first.
	p.mu.Lock()
	defer p.mu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.peer != nil || s.peer != nil {
		return media.ErrWasLinked
	}
	mediaType := p.template
	if p.negotiated {
		if st, ok := p.caps.Structure(0); ok {
			mediaType = st.Name
		}
	}
	if !accepts(s.template, mediaType) {
		return media.ErrNoFormat
	}
	p.peer, s.peer = s, p
	if p.negotiated {
		s.caps, s.negotiated = p.caps, true
	}
	p.parent.log.Debugf("linked %s to %s:%s", p.name, s.parent.name, s.name)
	return nil
}

func accepts(template, mediaType string) bool {
	return template == anyMedia || mediaType == anyMedia || template == mediaType
}

func (p *Pad) negotiate(c media.Caps) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.negotiated {
		return
	}
	p.caps, p.negotiated = c, true
}

func (p *Pad) unlink() {
	p.mu.Lock()
	peer := p.peer
	p.peer = nil
	p.mu.Unlock()
	if peer == nil {
		return
	}
	peer.mu.Lock()
	peer.peer = nil
	peer.caps, peer.negotiated = media.Caps{}, false
	peer.mu.Unlock()
}

// push sends data to the peer pad.
func (p *Pad) push(ctx context.Context, it item) error {
	p.mu.Lock()
	peer := p.peer
	p.mu.Unlock()
	if peer == nil {
		return errNotLinked
	}
	return peer.parent.chain(ctx, peer, it)
}
