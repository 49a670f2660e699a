package kernel

import (
	"errors"
)

var ErrSessionIsNotConstructed = errors.New("Session must be created via NewUserSession or NewAnonymousSession")

// Role is the privilege level of the caller as asserted by the auth service.
type Role int

const (
	RoleCustomer Role = iota + 1
	RoleAdmin
)

// Session is the caller identity injected into every core operation. The core never
// authenticates; it trusts what the auth/session collaborator supplies.
type Session struct {
	userID    UUID
	sessionID string
	role      Role
}

// NewUserSession returns a session for an authenticated user. sessionID may be
// empty; when set it identifies the anonymous cart to merge on login.
func NewUserSession(userID UUID, sessionID string, role Role) (Session, error) {
	if err := userID.Validate(); err != nil {
		return Session{}, err
	}
	if role != RoleAdmin {
		role = RoleCustomer
	}
	return Session{userID: userID, sessionID: sessionID, role: role}, nil
}

// NewAnonymousSession returns a session for a guest identified only by sessionID.
func NewAnonymousSession(sessionID string) (Session, error) {
	if sessionID == "" {
		return Session{}, ErrSessionIsNotConstructed
	}
	return Session{sessionID: sessionID, role: RoleCustomer}, nil
}

// Validate fails for the zero value.
func (s Session) Validate() error {
	if s.userID.IsZero() && s.sessionID == "" {
		return ErrSessionIsNotConstructed
	}
	return nil
}

// UserID returns the authenticated user and true, or false for anonymous sessions.
func (s Session) UserID() (UUID, bool) {
	return s.userID, !s.userID.IsZero()
}

func (s Session) SessionID() string {
	return s.sessionID
}

func (s Session) IsAuthenticated() bool {
	return !s.userID.IsZero()
}

func (s Session) IsAdmin() bool {
	return s.role == RoleAdmin && s.IsAuthenticated()
}

// ErrAuthenticationRequired is returned by operations that need a signed-in user.
var ErrAuthenticationRequired = errors.New("authentication required")

// RequireUser returns the user id or ErrAuthenticationRequired.
func (s Session) RequireUser() (UUID, error) {
	if err := s.Validate(); err != nil {
		return UUID{}, err
	}
	if s.userID.IsZero() {
		return UUID{}, ErrAuthenticationRequired
	}
	return s.userID, nil
}
