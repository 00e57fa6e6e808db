package client

import "github.com/pkg/errors"

// ErrRequest is matched by every error returned from [Client.Do].
var ErrRequest = errors.New("making request failed")

// Kinds of [ErrRequest].
var (
	ErrLookup           = errors.New("host lookup failed")
	ErrConnect          = errors.New("connection failed")
	ErrIO               = errors.New("connection i/o failed")
	ErrRequestTooLarge  = errors.New("request is too large")
	ErrResponseTooLarge = errors.New("response is too large")
	ErrParse            = errors.New("response is malformed")
)

type requestError struct {
	kind  error
	cause error
}

func newRequestError(kind, cause error) *requestError {
	return &requestError{kind: kind, cause: cause}
}

func (e *requestError) Error() string {
	if e.cause == nil {
		return e.kind.Error()
	}
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *requestError) Is(target error) bool { return target == ErrRequest || target == e.kind }
func (e *requestError) Unwrap() error        { return e.cause }
