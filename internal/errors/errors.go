package errors

import "errors"

// Common error types for the auth relay
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Login flow errors
	ErrFlowExpired = errors.New("login flow expired")

	// General errors
	ErrNotFound = errors.New("not found")
)

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
