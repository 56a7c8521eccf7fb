package contact

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork marks relay failures where no response was received.
	ErrNetwork = errors.New("contact: relay unreachable")

	// ErrInFlight is returned by Submit while an earlier submission is still sending.
	ErrInFlight = errors.New("contact: submission already in flight")
)

// RejectedError is a resolved relay response that did not accept the message.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("contact: relay rejected message (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("contact: relay rejected message (status %d): %s", e.StatusCode, e.Message)
}

// statusFor maps a relay outcome to the status it produces.
func statusFor(err error) Status {
	if err == nil {
		return Status{State: StateSucceeded}
	}

	var rejected *RejectedError
	if errors.As(err, &rejected) {
		reason := rejected.Message
		if reason == "" {
			reason = ReasonFallback
		}
		return Status{State: StateFailed, Reason: reason}
	}

	return Status{State: StateFailed, Reason: ReasonConnection}
}
