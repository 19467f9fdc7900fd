package google

import (
	"errors"
	"fmt"
)

// AuthError indicates that no valid or refreshable Google credential is
// available. It is fatal: the run aborts before any message is processed.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("google auth: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("google auth: %s", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
