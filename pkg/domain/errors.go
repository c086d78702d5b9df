package domain

import (
	"errors"
	"fmt"
)

// ErrPageNotFound is returned when a page key is not in the catalog.
var ErrPageNotFound = errors.New("page not found")

// ErrMalformedStep is returned when a node cannot be converted into a step.
var ErrMalformedStep = errors.New("malformed step")

// ErrLocked is returned when an edit or execution is attempted before the backend was validated.
var ErrLocked = errors.New("editor is locked: validate the API status first")

// LookupError reports a catalog miss.
type LookupError struct {
	Key string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("page %q: %v", e.Key, ErrPageNotFound)
}

func (e *LookupError) Unwrap() error { return ErrPageNotFound }

// TransportError reports a network failure or a non-2xx answer from the backend.
type TransportError struct {
	Endpoint   string
	StatusCode int // zero when the request never got an answer
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedStepError reports a node whose id is not numeric or whose label lacks LabelPrefix.
type MalformedStepError struct {
	NodeID string
	Label  string
	Reason string
}

func (e *MalformedStepError) Error() string {
	return fmt.Sprintf("node %q (%q): %s", e.NodeID, e.Label, e.Reason)
}

func (e *MalformedStepError) Unwrap() error { return ErrMalformedStep }
