package service

import (
	"bitwise74/medflow-api/internal/store"
	"errors"
	"fmt"
)

var (
	// ErrInvalidVerification covers every way a verification link can be
	// wrong: unknown user, bad token, used token or expired token
	ErrInvalidVerification = errors.New("invalid or expired verification link")
	ErrNotVerified         = errors.New("account is awaiting admin approval")
	ErrCooldown            = errors.New("please wait before requesting another verification email")
	ErrUnauthorized        = errors.New("invalid identity token")
)

// ValidationError is returned for missing or malformed input
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

type ConflictError struct {
	Resource string
}

func (e *ConflictError) Error() string { return e.Resource + " already exists" }

// mapStoreErr turns store sentinels into the typed errors the HTTP layer
// understands. Anything else passes through untouched.
func mapStoreErr(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return &NotFoundError{Resource: resource}
	case errors.Is(err, store.ErrDuplicate):
		return &ConflictError{Resource: resource}
	}

	return err
}
