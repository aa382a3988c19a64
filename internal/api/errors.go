package api

import (
	"errors"
	"fmt"
)

// ErrRequestFailed is the single failure kind reported by the client.
// Connection errors, non-2xx statuses and undecodable bodies all wrap it.
var ErrRequestFailed = errors.New("request failed")

// StatusError records a non-2xx response. It unwraps to ErrRequestFailed.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrRequestFailed }
