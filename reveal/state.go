// Package reveal gates an organisation's address and phone behind a one-time
// code delivered to the visitor. Codes are generated, hashed and checked on the
// server; the client never holds a secret it can verify on its own.
package reveal

import (
	"errors"
	"fmt"
)

// State of a reveal session
type State string

// Session states
const (
	Idle              State = "Idle"
	CollectingDetails State = "CollectingDetails"
	AwaitingCode      State = "AwaitingCode"
	Revealed          State = "Revealed"
)

// Event drives a session from one state to the next
type Event string

// Session events
const (
	EventStart          Event = "start"
	EventSubmitDetails  Event = "submitDetails"
	EventCodeMatched    Event = "codeMatched"
	EventCodeMismatched Event = "codeMismatched"
	EventCancel         Event = "cancel"
)

// ErrInvalidTransition is returned for an event the current state does not accept
var ErrInvalidTransition = errors.New("invalid transition")

var transitions = map[State]map[Event]State{
	Idle: {
		EventStart: CollectingDetails,
	},
	CollectingDetails: {
		EventSubmitDetails: AwaitingCode,
	},
	AwaitingCode: {
		EventCodeMatched:    Revealed,
		EventCodeMismatched: AwaitingCode,
	},
}

// Next returns the state reached from s on ev. Cancel is accepted from any state.
func Next(s State, ev Event) (State, error) {
	if ev == EventCancel {
		return Idle, nil
	}
	if to, ok := transitions[s][ev]; ok {
		return to, nil
	}
	return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, ev, s)
}
