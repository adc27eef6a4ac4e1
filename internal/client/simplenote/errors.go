package simplenote

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestFailed matches every non-200 response.
	ErrRequestFailed = errors.New("API call failed")
	ErrInvalidKey    = errors.New("invalid note key")
)

// APIError reports a response with a status other than 200.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: API request failed with status %d", e.Op, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return ErrRequestFailed
}

// TransportError reports a request that never produced a response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a 200 response whose body could not be decoded.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
