package media

// Backend is the multimedia framework driven by this package.
type Backend interface {
	// Init prepares the framework. It's called once by Init.
	Init() error
	// Deinit releases the framework. It's called once by Deinit.
	Deinit()
	// NewElement creates an element from the named factory. ErrNoSuchFactory
	// must be wrapped into returned error if factory is unknown.
	NewElement(factory, name string) (ElementBackend, error)
	// NewPipeline creates an empty pipeline. Messages must be delivered
	// through post in the order they occur.
	NewPipeline(name string, post func(Message)) (PipelineBackend, error)
}

// ElementBackend is the backend part of an element.
type ElementBackend interface {
	SetProperty(name, value string) error
	StaticPad(name string) (PadBackend, bool)
	// Link links the element's source pad to a sink pad of dst.
	Link(dst ElementBackend) error
	// ConnectPadAdded registers fn to be called when a new pad appears.
	// fn is called on backend goroutines.
	ConnectPadAdded(fn func(PadBackend))
}

// PadBackend is the backend part of a pad.
type PadBackend interface {
	Name() string
	IsLinked() bool
	// CurrentCaps returns negotiated caps. False is returned if pad is not
	// negotiated yet.
	CurrentCaps() (Caps, bool)
	// Link links this source pad to sink pad.
	Link(sink PadBackend) error
}

// PipelineBackend is the backend part of a pipeline.
type PipelineBackend interface {
	ElementBackend
	Add(ElementBackend) error
	SetState(State) error
	State() State
	// Dispose releases all resources of the pipeline and its children.
	Dispose()
}
