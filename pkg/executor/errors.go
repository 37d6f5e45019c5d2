package executor

import "fmt"

// ValidationError reports a request rejected before dispatch; no network
// attempt was made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

// ExecutionError reports a transport-level failure: no response was received
// (DNS, connection, timeout) or the outgoing request could not be built. A
// response carrying an error status code is never an ExecutionError.
type ExecutionError struct {
	URL string
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
