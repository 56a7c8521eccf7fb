package contact

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultResetAfter is how long a success or failure stays on screen.
const DefaultResetAfter = 5 * time.Second

// Relay delivers a message to its destination.
type Relay interface {
	Send(ctx context.Context, msg Message) error
}

// Form is the form element a submission came from. Reset clears its fields.
type Form interface {
	Reset()
}

// Observer is notified after every state transition.
type Observer func(Status)

type Option func(*Submitter)

func WithClock(clock clockwork.Clock) Option {
	return func(s *Submitter) { s.clock = clock }
}

func WithResetAfter(d time.Duration) Option {
	return func(s *Submitter) { s.resetAfter = d }
}

func WithObserver(fn Observer) Option {
	return func(s *Submitter) { s.observers = append(s.observers, fn) }
}

// Submitter owns the submission state of one contact form.
type Submitter struct {
	relay      Relay
	clock      clockwork.Clock
	resetAfter time.Duration
	observers  []Observer

	mu     sync.Mutex
	status Status
	gen    uint64
	timer  clockwork.Timer
}

func NewSubmitter(relay Relay, opts ...Option) *Submitter {
	s := &Submitter{
		relay:      relay,
		clock:      clockwork.NewRealClock(),
		resetAfter: DefaultResetAfter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status returns the current submission status.
func (s *Submitter) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Submit sends msg through the relay and records the outcome. The switch to
// StateSending happens before the relay is called. Relay errors end up in the
// returned Status; the only error returned is ErrInFlight.
func (s *Submitter) Submit(ctx context.Context, msg Message, form Form) (Status, error) {
	s.mu.Lock()
	if s.status.State == StateSending {
		st := s.status
		s.mu.Unlock()
		return st, ErrInFlight
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	gen := s.gen
	s.status = Status{State: StateSending}
	s.mu.Unlock()
	s.notify(Status{State: StateSending})

	result := statusFor(s.relay.Send(ctx, msg))

	s.mu.Lock()
	s.status = result
	if result.State == StateSucceeded && form != nil {
		form.Reset()
	}
	s.timer = s.clock.AfterFunc(s.resetAfter, func() { s.reset(gen) })
	s.mu.Unlock()
	s.notify(result)

	return result, nil
}

func (s *Submitter) reset(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.status.State == StateSending {
		s.mu.Unlock()
		return
	}
	s.status = Status{}
	s.timer = nil
	s.mu.Unlock()
	s.notify(Status{})
}

func (s *Submitter) notify(st Status) {
	for _, fn := range s.observers {
		fn(st)
	}
}
