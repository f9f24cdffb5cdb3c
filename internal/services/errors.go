package services

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrAuthorizationDenied    = errors.New("authorization denied")
	ErrNotFound               = errors.New("not found")
	ErrValidation             = errors.New("validation failed")
	ErrProfileExists          = errors.New("profile already exists")
)

// lookupError turns a missing row into ErrNotFound and wraps anything else.
func lookupError(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return fmt.Errorf("finding %s: %w", what, err)
}
