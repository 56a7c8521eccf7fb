package contact

// Message is a single contact form submission.
type Message struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	Subject string `json:"subject" form:"subject" binding:"required"`
	Body    string `json:"message" form:"message" binding:"required"`
}

// State is a step of the submission lifecycle.
type State int

const (
	StateIdle State = iota
	StateSending
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSending:
		return "sending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

const (
	TextSending   = "Sending...."
	TextSucceeded = "Form Submitted Successfully..."

	// ReasonConnection is shown when no response came back from the relay.
	ReasonConnection = "connection error"
	// ReasonFallback is shown when the relay refused without saying why.
	ReasonFallback = "Something went wrong"
)

// Status is the observable submission state. Reason is only set for StateFailed.
type Status struct {
	State  State
	Reason string
}

// Text is what the page shows next to the submit button.
func (s Status) Text() string {
	switch s.State {
	case StateSending:
		return TextSending
	case StateSucceeded:
		return TextSucceeded
	case StateFailed:
		return s.Reason
	default:
		return ""
	}
}

// Busy reports whether the submit control must stay disabled.
func (s Status) Busy() bool { return s.State == StateSending }
