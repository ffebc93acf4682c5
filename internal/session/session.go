// Package session carries session state explicitly: a notifier that tells
// subscribers about sign-ins and sign-outs, and the navigation state machine
// that decides where a client belongs for a given session state.
package session

import (
	"context"
	"sync"

	"github.com/Dan9191/crypto-companion/internal/models"
)

// State is what a client knows about its session
type State struct {
	Session   *models.Session
	IsLoading bool
}

// EventKind says what happened to a session
type EventKind string

const (
	SignedIn  EventKind = "signed_in"
	SignedOut EventKind = "signed_out"
	Recovered EventKind = "password_recovery"
	Updated   EventKind = "user_updated"
)

// Event is published on every session change
type Event struct {
	Kind   EventKind
	UserID string
	State  State
}

// Notifier fans session events out to subscribers
type Notifier struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(Event)
}

// NewNotifier creates a notifier without subscribers
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(Event))}
}

// Subscribe registers fn and returns the function that removes it
func (n *Notifier) Subscribe(fn func(Event)) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	n.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
		})
	}
}

// Publish calls every subscriber synchronously
func (n *Notifier) Publish(e Event) {
	n.mu.RLock()
	subs := make([]func(Event), 0, len(n.subs))
	for _, fn := range n.subs {
		subs = append(subs, fn)
	}
	n.mu.RUnlock()

	for _, fn := range subs {
		fn(e)
	}
}

type contextKey struct{}

// WithSession returns a context carrying the authenticated session
func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by WithSession
func FromContext(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*models.Session)
	return s, ok && s != nil
}
