package theme

import (
	"context"
	"sync/atomic"
)

// Marker is the global palette switch for one rendered page. It is created
// with WithMarker and stops reporting as soon as its teardown runs.
type Marker struct {
	choice Choice
	active atomic.Bool
}

type markerKey struct{}

// WithMarker installs the marker for choice on ctx. The returned func tears
// it down; callers must invoke it when the page is done.
func WithMarker(ctx context.Context, choice Choice) (context.Context, func()) {
	m := &Marker{choice: choice}
	m.active.Store(true)
	return context.WithValue(ctx, markerKey{}, m), func() { m.active.Store(false) }
}

// MarkerFrom returns the live marker on ctx.
func MarkerFrom(ctx context.Context) (*Marker, bool) {
	m, ok := ctx.Value(markerKey{}).(*Marker)
	if !ok || !m.active.Load() {
		return nil, false
	}
	return m, true
}

func (m *Marker) Choice() Choice { return m.choice }

// Class is the root element class the stylesheet keys the dark palette on.
func (m *Marker) Class() string {
	if m.choice == Dark {
		return "dark"
	}
	return ""
}
