package checkout

import (
	pkgerrors "github.com/dannysckt/storefront-backend/pkg/errors"
)

// State tracks one checkout submission through its lifecycle. Transitions are
// explicit; anything not listed below is rejected.
type State string

const (
	StateIdle            State = "idle"
	StateSubmitting      State = "submitting"
	StateAwaitingPayment State = "awaiting_payment_confirmation"
	StateCompleted       State = "completed"
	StateFailed          State = "failed"
	StateCancelled       State = "cancelled"
)

var transitions = map[State][]State{
	StateIdle:            {StateSubmitting},
	StateSubmitting:      {StateAwaitingPayment, StateFailed, StateCancelled},
	StateAwaitingPayment: {StateCompleted, StateFailed, StateCancelled},
	StateCompleted:       {},
	StateFailed:          {},
	StateCancelled:       {},
}

// CanTransitionTo reports whether the move is allowed.
func (s State) CanTransitionTo(next State) bool {
	for _, candidate := range transitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the state accepts no further transitions.
func (s State) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Submission is the in-flight checkout lifecycle holder.
type Submission struct {
	state State
}

// NewSubmission starts at idle.
func NewSubmission() *Submission {
	return &Submission{state: StateIdle}
}

// State returns the current lifecycle state.
func (s *Submission) State() State {
	return s.state
}

// Advance moves to the next state or rejects the transition.
func (s *Submission) Advance(next State) error {
	if !s.state.CanTransitionTo(next) {
		return pkgerrors.New(pkgerrors.CodeConflict, "invalid checkout state transition").
			WithDetails(map[string]any{"from": string(s.state), "to": string(next)})
	}
	s.state = next
	return nil
}
