package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
)

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrNotFound               = fmt.Errorf("service: %w", store.ErrNotFound)
	ErrInvalidCredentials     = errors.New("invalid username or password")
)

// requireCaller is the access gate every operation passes before touching
// the store.
func requireCaller(caller *domain.CallerIdentity) error {
	if !caller.Authenticated() {
		return ErrAuthenticationRequired
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// validationOf returns the field errors carried by err, or an empty set.
func validationOf(err error) *domain.ValidationError {
	var v *domain.ValidationError
	if errors.As(err, &v) {
		return v
	}
	return &domain.ValidationError{}
}

// conflictMessages maps a unique-constraint column to its form message.
var conflictMessages = map[string]string{
	"username":       "A user with that username already exists.",
	"license_number": "Driver with this License number already exists.",
}

// mapConflict turns a store conflict into a field error.
func mapConflict(err error) error {
	var ce *store.ConflictError
	if !errors.As(err, &ce) {
		return err
	}
	msg, ok := conflictMessages[ce.Field]
	if !ok {
		return err
	}
	return domain.NewFieldError(ce.Field, msg)
}
