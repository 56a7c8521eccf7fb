// Package theme resolves the visitor's light/dark choice and carries the
// page-wide marker the templates use to pick a palette.
package theme

import (
	"fmt"
	"sync"
)

// Choice is a display mode. Its string form is what gets persisted.
type Choice string

const (
	Light Choice = "light"
	Dark  Choice = "dark"
)

// Key is the name the choice is persisted under.
const Key = "theme"

func Parse(s string) (Choice, bool) {
	switch Choice(s) {
	case Light, Dark:
		return Choice(s), true
	default:
		return "", false
	}
}

func (c Choice) Opposite() Choice {
	if c == Dark {
		return Light
	}
	return Dark
}

// Store persists a choice between visits.
type Store interface {
	Load() (Choice, bool)
	Save(Choice) error
}

// Environment reports the host's color-scheme preference, if it knows one.
type Environment interface {
	PrefersDark() (dark bool, known bool)
}

// Preference is the theme state of one visitor.
type Preference struct {
	store Store
	env   Environment

	once   sync.Once
	mu     sync.Mutex
	choice Choice
}

func NewPreference(store Store, env Environment) *Preference {
	return &Preference{store: store, env: env}
}

// Choice returns the current choice, resolving it on first use.
func (p *Preference) Choice() Choice {
	p.once.Do(p.resolve)
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.choice
}

func (p *Preference) resolve() {
	choice := Dark
	if c, ok := p.load(); ok {
		choice = c
	} else if p.env != nil {
		if dark, known := p.env.PrefersDark(); known && !dark {
			choice = Light
		}
	}
	p.mu.Lock()
	p.choice = choice
	p.mu.Unlock()
}

func (p *Preference) load() (Choice, bool) {
	if p.store == nil {
		return "", false
	}
	return p.store.Load()
}

// Toggle flips the choice and persists it right away.
func (p *Preference) Toggle() (Choice, error) {
	p.once.Do(p.resolve)

	p.mu.Lock()
	p.choice = p.choice.Opposite()
	next := p.choice
	p.mu.Unlock()

	if p.store == nil {
		return next, nil
	}
	if err := p.store.Save(next); err != nil {
		return next, fmt.Errorf("persist theme: %w", err)
	}
	return next, nil
}
