package cart

import (
	"errors"
	"strings"

	"checkout/internal/core/domain/model/kernel"
)

const (
	userOwnerPrefix    = "user:"
	sessionOwnerPrefix = "session:"
)

var ErrOwnerIsInvalid = errors.New("cart owner must be a user or an anonymous session")

// Owner identifies whose cart it is: an authenticated user or an anonymous session.
type Owner struct {
	userID    kernel.UUID
	sessionID string
}

// OwnerForSession returns the user owner for authenticated sessions and the
// anonymous session owner otherwise.
func OwnerForSession(s kernel.Session) (Owner, error) {
	if err := s.Validate(); err != nil {
		return Owner{}, err
	}
	if userID, ok := s.UserID(); ok {
		return Owner{userID: userID}, nil
	}
	return Owner{sessionID: s.SessionID()}, nil
}

// UserOwner returns the owner of a signed-in user's cart.
func UserOwner(userID kernel.UUID) (Owner, error) {
	if err := userID.Validate(); err != nil {
		return Owner{}, err
	}
	return Owner{userID: userID}, nil
}

// AnonymousOwner returns the owner of the guest cart for sessionID.
func AnonymousOwner(sessionID string) (Owner, error) {
	if sessionID == "" {
		return Owner{}, ErrOwnerIsInvalid
	}
	return Owner{sessionID: sessionID}, nil
}

// OwnerFromKey parses a persisted owner key.
func OwnerFromKey(key string) (Owner, error) {
	switch {
	case strings.HasPrefix(key, userOwnerPrefix):
		id, err := kernel.UUIDFromString(strings.TrimPrefix(key, userOwnerPrefix))
		if err != nil {
			return Owner{}, err
		}
		return Owner{userID: id}, nil
	case strings.HasPrefix(key, sessionOwnerPrefix):
		return AnonymousOwner(strings.TrimPrefix(key, sessionOwnerPrefix))
	default:
		return Owner{}, ErrOwnerIsInvalid
	}
}

// Key is the stable, unique persistence key of the owner.
func (o Owner) Key() string {
	if !o.userID.IsZero() {
		return userOwnerPrefix + o.userID.String()
	}
	return sessionOwnerPrefix + o.sessionID
}

func (o Owner) IsAnonymous() bool {
	return o.userID.IsZero()
}

func (o Owner) Validate() error {
	if o.userID.IsZero() && o.sessionID == "" {
		return ErrOwnerIsInvalid
	}
	return nil
}

// UserID is set only for signed-in owners.
func (o Owner) UserID() (kernel.UUID, bool) {
	return o.userID, !o.userID.IsZero()
}
