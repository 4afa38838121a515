package media

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Element is a named processing unit created by a factory. Once added to a
// pipeline, the element is owned by it.
type Element struct {
	name    string
	factory string
	impl    ElementBackend

	parent   atomic.Pointer[Pipeline]
	disposed atomic.Bool

	mu   sync.Mutex
	pads map[PadBackend]*Pad
}

func newElement(name, factory string, impl ElementBackend) *Element {
	e := &Element{}
	e.init(name, factory, impl)
	return e
}

func (e *Element) init(name, factory string, impl ElementBackend) {
	e.name = name
	e.factory = factory
	e.impl = impl
	e.pads = make(map[PadBackend]*Pad)
}

// Name returns the element's instance name.
func (e *Element) Name() string {
	return e.name
}

// Factory returns the name of the factory which created the element.
func (e *Element) Factory() string {
	return e.factory
}

// Backend exposes the backend part of the element.
func (e *Element) Backend() ElementBackend {
	return e.impl
}

// Parent returns the pipeline which owns the element.
func (e *Element) Parent() *Pipeline {
	return e.parent.Load()
}

// Path returns the element's path within the pipelines hierarchy, e.g.
// "/pipeline:test-pipeline/videotestsrc:source".
func (e *Element) Path() string {
	own := fmt.Sprintf("/%s:%s", e.factory, e.name)
	if p := e.Parent(); p != nil {
		return p.Path() + own
	}
	return own
}

// Disposed reports if the element was released by its owner.
func (e *Element) Disposed() bool {
	return e.disposed.Load()
}

// Downgrade returns a non-owning handle to the element.
func (e *Element) Downgrade() Weak[Element] {
	return Downgrade(e)
}

// SetProperty sets a property from its string representation.
func (e *Element) SetProperty(name, value string) error {
	if e.Disposed() {
		return ErrDisposed
	}
	if err := e.impl.SetProperty(name, value); err != nil {
		return fmt.Errorf("%s: property %q: %w", e.name, name, err)
	}
	return nil
}

// StaticPad returns the always-present pad with provided name.
func (e *Element) StaticPad(name string) (*Pad, error) {
	if e.Disposed() {
		return nil, ErrDisposed
	}
	pb, ok := e.impl.StaticPad(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %s", e.name, ErrNoSuchPad, name)
	}
	return e.pad(pb), nil
}

// Link links this element to dst. Both elements must belong to the same
// pipeline.
func (e *Element) Link(dst *Element) error {
	if e.Disposed() || dst.Disposed() {
		return ErrDisposed
	}
	if p := e.Parent(); p == nil || p != dst.Parent() {
		return fmt.Errorf("%s and %s: %w", e.name, dst.name, ErrWrongHierarchy)
	}
	if err := e.impl.Link(dst.impl); err != nil {
		return fmt.Errorf("%s and %s: %w", e.name, dst.name, err)
	}
	return nil
}

// ConnectPadAdded registers a handler for new pads. Handler is called on
// backend goroutines, possibly concurrently. It's never called after the
// element is disposed.
func (e *Element) ConnectPadAdded(fn func(*Element, *Pad)) {
	e.impl.ConnectPadAdded(func(pb PadBackend) {
		if e.Disposed() {
			return
		}
		fn(e, e.pad(pb))
	})
}

// pad returns a cached pad wrapper.
func (e *Element) pad(pb PadBackend) *Pad {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.pads[pb]; ok {
		return p
	}
	p := &Pad{impl: pb, parent: e}
	e.pads[pb] = p
	return p
}

func (e *Element) String() string {
	return e.name
}

// LinkMany links elements in sequence.
func LinkMany(elements ...*Element) error {
	for i := 1; i < len(elements); i++ {
		if err := elements[i-1].Link(elements[i]); err != nil {
			return err
		}
	}
	return nil
}
