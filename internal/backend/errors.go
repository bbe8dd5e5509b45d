package backend

import "errors"

// ErrSessionExpired is returned for any 401 response. The session
// termination hook has already fired by the time a caller sees it.
var ErrSessionExpired = errors.New("session expired")

// ValidationError is a 4xx rejection with a detail message from the
// backend. The detail is surfaced to the user verbatim; the operation is
// recoverable by correcting the input and re-submitting.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}
