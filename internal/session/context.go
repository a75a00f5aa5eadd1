package session

import (
	"log/slog"
	"sync"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/identity"
)

// Context follows one identity session and keeps its resolved state
// current. The state is recomputed on every auth change.
type Context struct {
	session   *identity.Session
	resolver  *Resolver
	directory Directory

	mu          sync.RWMutex
	state       State
	unsubscribe func()
}

func NewContext(s *identity.Session, resolver *Resolver, directory Directory) *Context {
	c := &Context{
		session:   s,
		resolver:  resolver,
		directory: directory,
		state:     State{Role: RoleLoading},
	}
	c.unsubscribe = s.OnAuthStateChanged(c.onChange)
	return c
}

func (c *Context) onChange(id *identity.Identity) {
	st, err := c.resolver.Resolve(id)
	if err != nil {
		slog.Error("session role lookup failed", "session", c.session.Name(), "error", err)
	}
	c.mu.Lock()
	c.state = st
	c.mu.Unlock()

	if st.Role == RoleDisabledRejected {
		slog.Warn("disabled user signed out", "uid", id.UID)
		c.session.SignOut()
	}
}

func (c *Context) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Login signs in without an enabled check; allow-listed admins use it.
func (c *Context) Login(email, password string) (State, error) {
	if _, err := c.session.SignIn(email, password); err != nil {
		return State{Role: RoleAnonymous}, err
	}
	return c.State(), nil
}

// LoginAsUser signs in and then rejects disabled directory users,
// leaving the session signed out.
func (c *Context) LoginAsUser(email, password string) (State, error) {
	if _, err := c.session.SignIn(email, password); err != nil {
		return State{Role: RoleAnonymous}, err
	}

	enabled, err := c.directory.IsEnabled(email)
	if err != nil {
		c.session.SignOut()
		return c.State(), err
	}
	if !enabled {
		c.session.SignOut()
		return c.State(), ErrAccountDisabled
	}
	return c.State(), nil
}

func (c *Context) Logout() {
	c.session.SignOut()
}

// Close stops following the session and tears it down.
func (c *Context) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.session.Close()
}
