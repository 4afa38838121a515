package media

import (
	"fmt"
	"sync"
)

// Pipeline is a top-level container of elements with its own bus. It owns
// all elements added to it.
type Pipeline struct {
	Element
	impl PipelineBackend
	bus  *Bus

	mu       sync.Mutex
	children map[string]*Element
	reserved map[string]struct{}
	order    []*Element
	// serializes state changes.
	stateMu sync.Mutex
}

// Downgrade returns a non-owning handle to the pipeline.
func (p *Pipeline) Downgrade() Weak[Pipeline] {
	return Downgrade(p)
}

// Bus returns the pipeline's bus.
func (p *Pipeline) Bus() *Bus {
	return p.bus
}

// Add takes the ownership of provided elements. The backend is called
// without holding the children lock, names are reserved until it returns.
func (p *Pipeline) Add(elements ...*Element) error {
	if p.Disposed() {
		return ErrDisposed
	}
	for _, e := range elements {
		if err := p.reserve(e); err != nil {
			return err
		}
		if err := p.impl.Add(e.impl); err != nil {
			p.release(e.name)
			return fmt.Errorf("%s: %w", e.name, err)
		}
		e.parent.Store(p)
		p.mu.Lock()
		delete(p.reserved, e.name)
		p.children[e.name] = e
		p.order = append(p.order, e)
		p.mu.Unlock()
	}
	return nil
}

func (p *Pipeline) reserve(e *Element) error {
	if e.Disposed() {
		return ErrDisposed
	}
	if e.Parent() != nil {
		return fmt.Errorf("%s: %w", e.name, ErrOwned)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, taken := p.children[e.name]
	_, pending := p.reserved[e.name]
	if taken || pending || e.name == p.name {
		return fmt.Errorf("%s: %w", e.name, ErrDuplicateName)
	}
	p.reserved[e.name] = struct{}{}
	return nil
}

func (p *Pipeline) release(name string) {
	p.mu.Lock()
	delete(p.reserved, name)
	p.mu.Unlock()
}

// ByName returns the child element with provided name.
func (p *Pipeline) ByName(name string) (*Element, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.children[name]
	return e, ok
}

// Children returns elements in order they were added.
func (p *Pipeline) Children() []*Element {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Element(nil), p.order...)
}

// SetState changes the state of the pipeline and all its children.
func (p *Pipeline) SetState(s State) error {
	if !s.Valid() {
		return fmt.Errorf("%w: invalid target state %v", ErrStateChange, s)
	}
	if p.Disposed() {
		return ErrDisposed
	}
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	current := p.impl.State()
	if err := p.impl.SetState(s); err != nil {
		return fmt.Errorf("%w: %v to %v: %v", ErrStateChange, current, s, err)
	}
	return nil
}

// State returns the current state of the pipeline.
func (p *Pipeline) State() State {
	return p.impl.State()
}

// Dispose releases the pipeline and every element it owns. Pipeline is
// brought to Null state first. Weak handles can't be upgraded after this
// call.
func (p *Pipeline) Dispose() {
	if !p.disposed.CompareAndSwap(false, true) {
		return
	}
	p.stateMu.Lock()
	if p.impl.State() != StateNull {
		// best effort, backend has to release resources anyway.
		_ = p.impl.SetState(StateNull)
	}
	p.stateMu.Unlock()

	p.mu.Lock()
	for _, e := range p.order {
		e.disposed.Store(true)
	}
	p.mu.Unlock()
	p.impl.Dispose()
	p.bus.SetFlushing(true)
}

// Post resolves the message source by its name and posts the message on
// the pipeline bus.
func (p *Pipeline) Post(m Message) {
	h := m.header()
	if h.SrcName == p.name {
		h.src = &p.Element
	} else if e, ok := p.ByName(h.SrcName); ok {
		h.src = e
	}
	p.bus.Post(m)
}

// IsSourceOf reports if message was posted by the pipeline itself.
func (p *Pipeline) IsSourceOf(m Message) bool {
	return m.Source() == &p.Element
}
