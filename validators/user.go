// Package validators holds input checks shared by the HTTP layer and the
// services
package validators

import (
	"bitwise74/medflow-api/internal/model"
	"errors"
	"net/mail"
)

// Longest address most mail servers accept
const maxEmailLength = 254

var (
	ErrEmailEmpty   = errors.New("no email address provided")
	ErrEmailInvalid = errors.New("invalid email address provided")
	ErrRoleInvalid  = errors.New("role must be student or admin")
)

// EmailValidator accepts a bare address only. Display name forms such as
// "Ana <ana@example.com>" are rejected since the value is stored as is.
func EmailValidator(e string) error {
	if e == "" {
		return ErrEmailEmpty
	}

	if len(e) > maxEmailLength {
		return ErrEmailInvalid
	}

	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return ErrEmailInvalid
	}

	return nil
}

func RoleValidator(r string) error {
	if r != model.RoleStudent && r != model.RoleAdmin {
		return ErrRoleInvalid
	}

	return nil
}
