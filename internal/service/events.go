package service

import (
	"sync"

	domainauth "github.com/edutools/mark-register/internal/domain/auth"
)

// SessionEventType classifies session lifecycle notifications.
type SessionEventType string

const (
	// SessionSignedIn fires after a session snapshot is persisted for a login.
	SessionSignedIn SessionEventType = "signed_in"
	// SessionSignedOut fires after a session snapshot is cleared.
	SessionSignedOut SessionEventType = "signed_out"
	// SessionProfileUpdated fires after a profile fetch lands on a live session.
	SessionProfileUpdated SessionEventType = "profile_updated"
)

// SessionEvent describes one change to a session snapshot. Session is nil for
// sign-out events.
type SessionEvent struct {
	Type      SessionEventType
	SessionID string
	Session   *domainauth.Session
}

// SessionEvents fans session lifecycle notifications out to subscribers.
// Publishing never blocks: a subscriber whose buffer is full misses the event.
type SessionEvents struct {
	mu   sync.RWMutex
	subs map[int]chan SessionEvent
	next int
}

// NewSessionEvents creates an empty event stream.
func NewSessionEvents() *SessionEvents {
	return &SessionEvents{subs: make(map[int]chan SessionEvent)}
}

// Subscribe registers a buffered subscriber channel. The returned cancel
// function unregisters it and closes the channel; it is safe to call twice.
func (e *SessionEvents) Subscribe(buffer int) (<-chan SessionEvent, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan SessionEvent, buffer)

	e.mu.Lock()
	id := e.next
	e.next++
	e.subs[id] = ch
	e.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.subs, id)
			e.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber with buffer room.
func (e *SessionEvents) Publish(ev SessionEvent) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, ch := range e.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
