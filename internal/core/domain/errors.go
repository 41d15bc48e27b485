package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrInvalidToken         = errors.New("invalid token")
	ErrForbidden            = errors.New("access forbidden")
	ErrRegistrationExists   = errors.New("character already registered")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrCharacterNotFound    = errors.New("character not found")
	ErrItemNotFound         = errors.New("item not found")
	ErrInvalidIdentifier    = errors.New("server and character identifiers are required")
)

// AuthenticationError is returned when the backend rejects the caller's
// credentials (401/403). Callers must send the user back to login instead of
// rendering a degraded view.
type AuthenticationError struct {
	Status int
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication required (backend status %d)", e.Status)
}

// IsAuthenticationError reports whether err wraps an *AuthenticationError.
func IsAuthenticationError(err error) bool {
	var ae *AuthenticationError
	return errors.As(err, &ae)
}
