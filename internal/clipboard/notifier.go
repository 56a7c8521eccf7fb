// Package clipboard copies the contact address and keeps a short-lived
// status line describing how it went.
package clipboard

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	// Address is the text every copy writes.
	Address = "hello@bintang.ai"

	TextCopied = "Email copied to clipboard!"
	TextFailed = "Failed to copy email"

	DefaultClearAfter = 3 * time.Second
)

// ErrDenied is reported when the platform refuses the write.
var ErrDenied = errors.New("clipboard: write denied")

// Clipboard is a write-only platform clipboard.
type Clipboard interface {
	WriteText(text string) error
}

type Option func(*Notifier)

func WithClock(clock clockwork.Clock) Option {
	return func(n *Notifier) { n.clock = clock }
}

func WithClearAfter(d time.Duration) Option {
	return func(n *Notifier) { n.clearAfter = d }
}

type Notifier struct {
	clip       Clipboard
	clock      clockwork.Clock
	clearAfter time.Duration

	mu     sync.Mutex
	status string
	gen    uint64
	timer  clockwork.Timer
}

// NewNotifier returns a Notifier writing to clip. clip may be nil when the
// outcome is always supplied through Record.
func NewNotifier(clip Clipboard, opts ...Option) *Notifier {
	n := &Notifier{
		clip:       clip,
		clock:      clockwork.NewRealClock(),
		clearAfter: DefaultClearAfter,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Copy writes Address to the clipboard and returns the resulting status.
func (n *Notifier) Copy() string {
	if n.clip == nil {
		return n.Record(ErrDenied)
	}
	return n.Record(n.clip.WriteText(Address))
}

// Record sets the status for a copy attempt whose outcome is err and
// schedules the status to clear.
func (n *Notifier) Record(err error) string {
	status := TextCopied
	if err != nil {
		status = TextFailed
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	gen := n.gen
	n.status = status
	n.timer = n.clock.AfterFunc(n.clearAfter, func() { n.clear(gen) })

	return status
}

func (n *Notifier) Status() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.status
}

func (n *Notifier) clear(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.gen {
		return
	}
	n.status = ""
	n.timer = nil
}
