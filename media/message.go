package media

import "fmt"

// MessageType identifies the kind of a bus message.
type MessageType int

// Message types.
const (
	MessageUnknown MessageType = iota
	MessageEOS
	MessageError
	MessageWarning
	MessageStateChanged
	MessageStreamStart
	MessageAsyncDone
)

func (t MessageType) String() string {
	switch t {
	case MessageEOS:
		return "eos"
	case MessageError:
		return "error"
	case MessageWarning:
		return "warning"
	case MessageStateChanged:
		return "state-changed"
	case MessageStreamStart:
		return "stream-start"
	case MessageAsyncDone:
		return "async-done"
	}
	return "unknown"
}

// Message is posted on the pipeline bus.
type Message interface {
	Type() MessageType
	// Source returns the element which posted the message. It's nil if
	// the source could not be resolved within the pipeline.
	Source() *Element
	// SourceName is the name of the posting object as reported by the
	// backend.
	SourceName() string
	header() *Header
}

// Header is embedded into every message. Backends only fill SrcName, the
// pipeline resolves the source element when the message is posted.
type Header struct {
	SrcName string
	src     *Element
}

// Source returns the element which posted the message.
func (h *Header) Source() *Element {
	return h.src
}

// SourceName returns the name of the object which posted the message.
func (h *Header) SourceName() string {
	return h.SrcName
}

func (h *Header) header() *Header {
	return h
}

type (
	// EOS is posted when the pipeline finished the stream.
	EOS struct {
		Header
	}

	// ErrorMessage is posted when an element fails. Streaming is stopped.
	ErrorMessage struct {
		Header
		Err   error
		Debug string
	}

	// Warning is posted when an element hits a recoverable problem.
	Warning struct {
		Header
		Err   error
		Debug string
	}

	// StateChanged is posted every time an element changed its state.
	StateChanged struct {
		Header
		Old     State
		New     State
		Pending State
	}

	// StreamStart is posted when a source starts streaming.
	StreamStart struct {
		Header
	}

	// AsyncDone is posted when an asynchronous state change completed.
	AsyncDone struct {
		Header
	}
)

// Type implements Message.
func (*EOS) Type() MessageType { return MessageEOS }

// Type implements Message.
func (*ErrorMessage) Type() MessageType { return MessageError }

// Type implements Message.
func (*Warning) Type() MessageType { return MessageWarning }

// Type implements Message.
func (*StateChanged) Type() MessageType { return MessageStateChanged }

// Type implements Message.
func (*StreamStart) Type() MessageType { return MessageStreamStart }

// Type implements Message.
func (*AsyncDone) Type() MessageType { return MessageAsyncDone }

func (m *ErrorMessage) Error() string {
	return fmt.Sprintf("%s: %v", m.SrcName, m.Err)
}

func (m *StateChanged) String() string {
	return fmt.Sprintf("%s: %v -> %v", m.SrcName, m.Old, m.New)
}
