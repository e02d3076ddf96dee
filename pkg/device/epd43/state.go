package epd43

import (
	"fmt"

	"github.com/pkg/errors"
)

// State of a Link. Links only move forward through these.
type State uint8

const (
	Disconnected State = iota
	Connected
	Ready
	Closed
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connected:
		return "connected"
	case Ready:
		return "ready"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

var ErrState = errors.New("operation not allowed in current link state")

// StateError is returned, without touching the port, when an operation is
// called in the wrong link state.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: link is %s", e.Op, e.State)
}

func (e *StateError) Unwrap() error {
	return ErrState
}

// HandshakeError means the module did not acknowledge Connect. The link
// that saw it is closed for good.
type HandshakeError struct {
	Got byte
}

func (e *HandshakeError) Error() string {
	return fmt.Sprintf("handshake failed: device answered 0x%02x", e.Got)
}
