package domain

import (
	"errors"
	"fmt"
)

// ErrNotEngaged signals normal non-engagement: the message did not pass
// the activation gate and must be dropped silently.
var ErrNotEngaged = errors.New("message does not engage the bot")

// BackendError wraps a failed completion call. Timeout marks deadline
// expiry, which callers treat the same as any other backend failure.
type BackendError struct {
	Provider string
	Timeout  bool
	Err      error
}

func (e *BackendError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s backend timeout: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s backend: %v", e.Provider, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
