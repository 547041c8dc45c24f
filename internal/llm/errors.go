package llm

import "fmt"

// ErrOracleUnavailable wraps a provider failure on a request path where the
// failure cannot be absorbed and must surface to the caller.
type ErrOracleUnavailable struct {
	Stage string
	Err   error
}

func (e *ErrOracleUnavailable) Error() string {
	return fmt.Sprintf("oracle unavailable during %s: %v", e.Stage, e.Err)
}

func (e *ErrOracleUnavailable) Unwrap() error {
	return e.Err
}
