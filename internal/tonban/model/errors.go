package model

import "errors"

var (
	// ErrMissingParameter is returned when a required parameter is absent or blank.
	ErrMissingParameter = errors.New("missing parameter")
	// ErrInvalidParameter is returned when a parameter fails validation.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrNotFound is returned when an exact code lookup matches no rows.
	ErrNotFound = errors.New("tonban not found")
	// ErrDatasetUnavailable is returned when the dataset has not been provisioned.
	ErrDatasetUnavailable = errors.New("dataset unavailable")
)

// RequestError pairs a taxonomy error with the message shown to the caller.
type RequestError struct {
	Kind    error
	Message string
}

func (e *RequestError) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Kind
}

// NewRequestError creates a RequestError of the given kind.
func NewRequestError(kind error, message string) *RequestError {
	return &RequestError{Kind: kind, Message: message}
}
