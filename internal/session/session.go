// Package session tracks the submission lifecycle of an interactive client:
// one submission at a time, and each outcome replaces the previous one.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/maverickalo/check-my-code/internal/review"
)

// State is the display state of a session.
type State string

const (
	StateIdle          State = "idle"
	StateSubmitting    State = "submitting"
	StateShowingResult State = "displaying-result"
	StateShowingError  State = "displaying-error"
)

var (
	// ErrInFlight is returned when a submission is already running.
	ErrInFlight = errors.New("a submission is already in flight")
	// ErrNotSubmitting is returned when an outcome arrives with nothing in flight.
	ErrNotSubmitting = errors.New("no submission in flight")
)

// Runner produces the outcome for one snippet.
type Runner interface {
	Run(ctx context.Context, code string) review.Outcome
}

// Session is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	state   State
	outcome review.Outcome
}

// New returns an idle session.
func New() *Session {
	return &Session{state: StateIdle}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Outcome returns the displayed outcome and whether one is being shown.
// While submitting, the previous outcome is cleared.
func (s *Session) Outcome() (review.Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateShowingResult, StateShowingError:
		return s.outcome, true
	}
	return review.Outcome{}, false
}

// Begin moves to submitting and clears the displayed outcome.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return ErrInFlight
	}
	s.state = StateSubmitting
	s.outcome = review.Outcome{}
	return nil
}

// Finish stores the outcome of the in-flight submission.
func (s *Session) Finish(o review.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSubmitting {
		return ErrNotSubmitting
	}
	s.outcome = o
	if o.Succeeded() {
		s.state = StateShowingResult
	} else {
		s.state = StateShowingError
	}
	return nil
}

// Submit runs one submission through r, guarding against overlap.
func (s *Session) Submit(ctx context.Context, r Runner, code string) (review.Outcome, error) {
	if err := s.Begin(); err != nil {
		return review.Outcome{}, err
	}
	o := r.Run(ctx, code)
	if err := s.Finish(o); err != nil {
		return review.Outcome{}, err
	}
	return o, nil
}
