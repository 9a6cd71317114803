package workflow

import (
	"fmt"
	"sync"
)

type State string

const (
	StateIdle                 State = "idle"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateSubmitting           State = "submitting"
)

// Flow names one user-initiated workflow.
type Flow string

const (
	FlowCreateEvent  Flow = "create_event"
	FlowDeleteEvent  Flow = "delete_event"
	FlowViewBookings Flow = "view_bookings"
	FlowBookTicket   Flow = "book_ticket"
	FlowVerifyTicket Flow = "verify_ticket"
	FlowAddSponsor   Flow = "add_sponsor"
)

var allFlows = []Flow{
	FlowCreateEvent,
	FlowDeleteEvent,
	FlowViewBookings,
	FlowBookTicket,
	FlowVerifyTicket,
	FlowAddSponsor,
}

// Submitting returns to AwaitingConfirmation on a retryable failure and to
// Idle on success. Reopening a flow from AwaitingConfirmation is allowed
// because the info slot replaces its content.
var allowedTransitions = map[State]map[State]struct{}{
	StateIdle: {
		StateAwaitingConfirmation: {},
	},
	StateAwaitingConfirmation: {
		StateAwaitingConfirmation: {},
		StateSubmitting:           {},
		StateIdle:                 {},
	},
	StateSubmitting: {
		StateIdle:                 {},
		StateAwaitingConfirmation: {},
	},
}

func ValidateTransition(from, to State) error {
	next, ok := allowedTransitions[from]
	if !ok {
		return fmt.Errorf("invalid workflow state: %q", from)
	}
	if _, ok := allowedTransitions[to]; !ok {
		return fmt.Errorf("invalid workflow state: %q", to)
	}
	if _, ok := next[to]; !ok {
		return fmt.Errorf("invalid workflow transition: %s -> %s", from, to)
	}
	return nil
}

// machines tracks the state of every flow.
type machines struct {
	mu     sync.Mutex
	states map[Flow]State
}

func newMachines() *machines {
	m := &machines{states: make(map[Flow]State, len(allFlows))}
	for _, f := range allFlows {
		m.states[f] = StateIdle
	}
	return m
}

func (m *machines) get(f Flow) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[f]
}

func (m *machines) move(f Flow, to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	from := m.states[f]
	if err := ValidateTransition(from, to); err != nil {
		return fmt.Errorf("%s: %w", f, err)
	}
	m.states[f] = to
	return nil
}

// reset forces a flow back to Idle, used when its surface is dismissed or
// taken over by another flow.
func (m *machines) reset(f Flow) {
	m.mu.Lock()
	m.states[f] = StateIdle
	m.mu.Unlock()
}
