package commands

import (
	"checkout/internal/core/domain/model/kernel"
)

func requireAdmin(session kernel.Session) error {
	if _, err := session.RequireUser(); err != nil {
		return err
	}
	if !session.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
