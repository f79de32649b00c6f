// Package console assembles repository rows and policy decisions into
// the annotated collections the presentation layer renders, and owns the
// per-screen fetch lifecycle.
package console

import "fmt"

// State is the lifecycle of one screen's collection. Screens move
// through explicit states instead of juggling ad hoc boolean flags.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateError
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	case StateSubmitting:
		return "submitting"
	}
	return "unknown"
}

// legal transitions: a screen loads from idle (or reloads from loaded /
// retries from error), submissions only start from a loaded screen, and
// both loading and submitting resolve to loaded or error.
var transitions = map[State][]State{
	StateIdle:       {StateLoading},
	StateLoading:    {StateLoaded, StateError},
	StateLoaded:     {StateLoading, StateSubmitting},
	StateError:      {StateLoading},
	StateSubmitting: {StateLoaded, StateError},
}

// CanTransition reports whether from -> to is a legal lifecycle step.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Screen holds one screen's collection together with its lifecycle
// state. A successful fetch replaces Data wholesale (last write wins);
// a failed fetch keeps the prior Data intact so the screen can keep
// rendering what it had.
type Screen[T any] struct {
	state State
	Data  T
	Err   error
}

func (s *Screen[T]) State() State { return s.state }

func (s *Screen[T]) transition(to State) error {
	if !CanTransition(s.state, to) {
		return fmt.Errorf("illegal screen transition: %s -> %s", s.state, to)
	}
	s.state = to
	return nil
}

// BeginLoad moves the screen into loading.
func (s *Screen[T]) BeginLoad() error {
	return s.transition(StateLoading)
}

// BeginSubmit moves a loaded screen into submitting.
func (s *Screen[T]) BeginSubmit() error {
	return s.transition(StateSubmitting)
}

// Succeed records a fetch/submit result and moves to loaded.
func (s *Screen[T]) Succeed(data T) error {
	if err := s.transition(StateLoaded); err != nil {
		return err
	}
	s.Data = data
	s.Err = nil
	return nil
}

// Fail records the error and moves to the error state. Data is left
// untouched.
func (s *Screen[T]) Fail(cause error) error {
	if err := s.transition(StateError); err != nil {
		return err
	}
	s.Err = cause
	return nil
}
