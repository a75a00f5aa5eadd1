package identity

import (
	"errors"
	"sync"
)

var ErrSessionClosed = errors.New("session is closed")

// Listener observes auth-state changes; nil means signed out.
type Listener func(*Identity)

// Session is one client's view of the provider: at most one signed-in
// identity plus the listeners interested in it.
type Session struct {
	name     string
	provider *Provider

	mu        sync.Mutex
	current   *Identity
	listeners map[int]Listener
	nextID    int
	closed    bool
}

func (s *Session) Name() string { return s.name }

func (s *Session) Current() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// OnAuthStateChanged registers l and immediately calls it with the current
// state. The returned func unsubscribes.
func (s *Session) OnAuthStateChanged(l Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	current := s.current
	s.mu.Unlock()

	l(current)

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Session) SignIn(email, password string) (*Identity, error) {
	if s.Closed() {
		return nil, ErrSessionClosed
	}
	id, err := s.provider.Authenticate(email, password)
	if err != nil {
		return nil, err
	}
	s.set(id)
	return id, nil
}

// CreateAccount provisions a new account and signs this session in as it.
func (s *Session) CreateAccount(email, password string) (*Identity, error) {
	if s.Closed() {
		return nil, ErrSessionClosed
	}
	id, err := s.provider.CreateAccount(email, password)
	if err != nil {
		return nil, err
	}
	s.set(id)
	return id, nil
}

func (s *Session) SignOut() {
	if s.Closed() {
		return
	}
	s.set(nil)
}

// Close signs out without notifying and drops every listener.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.listeners = make(map[int]Listener)
	s.closed = true
}

func (s *Session) set(id *Identity) {
	s.mu.Lock()
	s.current = id
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(id)
	}
}
