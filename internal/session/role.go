// Package session decides what a signed-in identity may do.
package session

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/identity"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/models"
)

type Role string

const (
	RoleLoading          Role = "loading"
	RoleAnonymous        Role = "anonymous"
	RoleAdmin            Role = "admin"
	RoleEnabledUser      Role = "user"
	RoleDisabledRejected Role = "disabled"
	// RoleUnassigned is an authenticated identity with no directory record.
	RoleUnassigned Role = "unassigned"
)

var ErrAccountDisabled = errors.New("account is disabled")

// State is the resolved view of one session.
type State struct {
	Identity *identity.Identity
	Role     Role
}

func (s State) IsAuthenticated() bool { return s.Identity != nil }
func (s State) IsAdmin() bool         { return s.Role == RoleAdmin }
func (s State) IsUser() bool          { return s.Role == RoleEnabledUser }

func (s State) CanEditCases() bool   { return s.IsAdmin() || s.IsUser() }
func (s State) CanTrashCases() bool  { return s.IsAdmin() }
func (s State) CanManageUsers() bool { return s.IsAdmin() }

// Capability is a check over a resolved state.
type Capability func(State) bool

var (
	EditCases   Capability = State.CanEditCases
	TrashCases  Capability = State.CanTrashCases
	ManageUsers Capability = State.CanManageUsers
)

// Directory is the part of the user directory the resolver reads.
type Directory interface {
	GetByEmail(email string) (*models.DirectoryUser, error)
	IsEnabled(email string) (bool, error)
}

type Resolver struct {
	adminEmails map[string]struct{}
	directory   Directory
	recheck     bool
}

// NewResolver builds a resolver. With recheck set, a disabled directory
// user resolves to RoleDisabledRejected instead of RoleEnabledUser.
func NewResolver(adminEmails []string, directory Directory, recheck bool) *Resolver {
	set := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		set[identity.NormalizeEmail(e)] = struct{}{}
	}
	return &Resolver{adminEmails: set, directory: directory, recheck: recheck}
}

func (r *Resolver) IsAllowListed(email string) bool {
	_, ok := r.adminEmails[identity.NormalizeEmail(email)]
	return ok
}

// Resolve maps an identity to its role. Allow-listed emails never touch
// the directory. A failed lookup yields RoleUnassigned with the error.
func (r *Resolver) Resolve(id *identity.Identity) (State, error) {
	if id == nil {
		return State{Role: RoleAnonymous}, nil
	}
	st := State{Identity: id}
	if r.IsAllowListed(id.Email) {
		st.Role = RoleAdmin
		return st, nil
	}

	user, err := r.directory.GetByEmail(id.Email)
	if err != nil {
		st.Role = RoleUnassigned
		return st, err
	}
	switch {
	case user == nil:
		st.Role = RoleUnassigned
	case user.IsAdmin:
		st.Role = RoleAdmin
	case !user.IsEnabled && r.recheck:
		st.Role = RoleDisabledRejected
	default:
		st.Role = RoleEnabledUser
	}
	return st, nil
}

// Recheck reports whether disabled users are expelled from live sessions.
func (r *Resolver) Recheck() bool { return r.recheck }
