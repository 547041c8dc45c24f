package store

import "fmt"

// ErrNoResume indicates no resume has been saved for a user.
type ErrNoResume struct {
	UserID string
}

func (e *ErrNoResume) Error() string {
	return fmt.Sprintf("no resume found for user %s", e.UserID)
}
