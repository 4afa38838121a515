package media

import (
	"fmt"
	"sync"
)

// framework is the process-wide state.
var framework struct {
	sync.Mutex
	backend Backend
	// counters for generated element names.
	names map[string]int
}

// Init initializes the framework with provided backend. Consequent calls
// do nothing until Deinit is called.
func Init(b Backend) error {
	framework.Lock()
	defer framework.Unlock()
	if framework.backend != nil {
		return nil
	}
	if err := b.Init(); err != nil {
		return fmt.Errorf("error initializing backend: %w", err)
	}
	framework.backend = b
	framework.names = make(map[string]int)
	return nil
}

// Deinit releases the framework. It's safe to call it multiple times.
func Deinit() {
	framework.Lock()
	defer framework.Unlock()
	if framework.backend == nil {
		return
	}
	framework.backend.Deinit()
	framework.backend = nil
	framework.names = nil
}

// IsInitialized reports if Init was called.
func IsInitialized() bool {
	framework.Lock()
	defer framework.Unlock()
	return framework.backend != nil
}

// MakeElement creates a new element using the named factory. If name is
// empty, a unique one is generated from the factory name.
func MakeElement(factory, name string) (*Element, error) {
	framework.Lock()
	b := framework.backend
	if b == nil {
		framework.Unlock()
		return nil, ErrNotInitialized
	}
	if name == "" {
		name = fmt.Sprintf("%s%d", factory, framework.names[factory])
		framework.names[factory]++
	}
	framework.Unlock()

	impl, err := b.NewElement(factory, name)
	if err != nil {
		return nil, err
	}
	return newElement(name, factory, impl), nil
}

// NewPipeline creates a new empty pipeline in Null state.
func NewPipeline(name string) (*Pipeline, error) {
	framework.Lock()
	b := framework.backend
	if b == nil {
		framework.Unlock()
		return nil, ErrNotInitialized
	}
	if name == "" {
		name = fmt.Sprintf("pipeline%d", framework.names["pipeline"])
		framework.names["pipeline"]++
	}
	framework.Unlock()

	p := &Pipeline{
		bus:      newBus(),
		children: make(map[string]*Element),
		reserved: make(map[string]struct{}),
	}
	impl, err := b.NewPipeline(name, p.Post)
	if err != nil {
		return nil, err
	}
	p.Element.init(name, "pipeline", impl)
	p.impl = impl
	return p, nil
}
