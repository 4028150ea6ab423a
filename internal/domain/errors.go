package domain

import "fmt"

// ValidationError reports missing or malformed input fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError reports a uniqueness violation on a user field ("Username" or "Email").
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists.", e.Field)
}

// AuthError reports bad credentials or a bad, missing or expired token.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// ErrInvalidCredentials is returned for both unknown users and wrong passwords
// so callers cannot tell which one failed.
var ErrInvalidCredentials = &AuthError{Message: "Invalid username or password."}
