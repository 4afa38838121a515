package media

import "fmt"

// State is the lifecycle state of an element or a pipeline.
type State int

// Lifecycle states. The order matters: every state change walks through
// the intermediate states one step at a time.
const (
	StateVoidPending State = iota
	StateNull
	StateReady
	StatePaused
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateVoidPending:
		return "VoidPending"
	case StateNull:
		return "Null"
	case StateReady:
		return "Ready"
	case StatePaused:
		return "Paused"
	case StatePlaying:
		return "Playing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Next returns the state that follows s on the way to target. If s
// already equals target, target is returned.
func (s State) Next(target State) State {
	switch {
	case s < target:
		return s + 1
	case s > target:
		return s - 1
	}
	return target
}

// Valid reports if s is one of the settable states.
func (s State) Valid() bool {
	return s >= StateNull && s <= StatePlaying
}
