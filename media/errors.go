package media

import "errors"

var (
	// ErrNotInitialized is returned when the framework is used before Init.
	ErrNotInitialized = errors.New("framework is not initialized")
	// ErrNoSuchFactory is returned when a factory lookup has no match.
	ErrNoSuchFactory = errors.New("no such element factory")
	// ErrNoSuchPad is returned when an element has no pad with requested name.
	ErrNoSuchPad = errors.New("no such pad")
	// ErrNoSuchProperty is returned when an element has no such property.
	ErrNoSuchProperty = errors.New("no such property")
	// ErrInvalidProperty is returned when a property value can't be parsed.
	ErrInvalidProperty = errors.New("invalid property value")
	// ErrWasLinked is returned when one of the pads is already linked.
	ErrWasLinked = errors.New("pad was already linked")
	// ErrNoFormat is returned when pads have no common format.
	ErrNoFormat = errors.New("pads have no common format")
	// ErrWrongDirection is returned when pads are linked in wrong direction.
	ErrWrongDirection = errors.New("pads have wrong direction")
	// ErrWrongHierarchy is returned when elements don't share a pipeline.
	ErrWrongHierarchy = errors.New("elements have no common parent")
	// ErrOwned is returned when an element already belongs to a pipeline.
	ErrOwned = errors.New("element already has a parent")
	// ErrDuplicateName is returned when a pipeline already has a child with
	// the same name.
	ErrDuplicateName = errors.New("duplicate element name")
	// ErrDisposed is returned when a disposed object is used.
	ErrDisposed = errors.New("object is disposed")
	// ErrStateChange is returned when a state change was rejected.
	ErrStateChange = errors.New("state change failed")
)
