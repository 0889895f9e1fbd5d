// Package animeflv provides a typed client for the unofficial AnimeFLV catalog API.
package animeflv

import (
	"errors"
	"fmt"
)

// TransportError reports that the request never produced a usable response:
// the network or relay proxy failed, or the upstream answered with an
// unexpected HTTP status. A 404 on the search endpoint is not a transport
// error; the client maps it to an empty result before this type is raised.
type TransportError struct {
	Status int   // HTTP status code, 0 when the request itself failed
	Err    error // underlying network error, nil for status failures
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog api unreachable: %v", e.Err)
	}
	return fmt.Sprintf("catalog api returned status %d", e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedError reports that a response arrived but its JSON did not match
// the shape this client understands: a broken envelope, success:false where
// failure is not a defined outcome, or a missing nested field.
type MalformedError struct {
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected catalog api response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("unexpected catalog api response: %s", e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err stems from the network boundary rather than
// the payload shape. The TUI uses the distinction to pick user-facing text.
func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}

// IsMalformed reports whether err stems from an unexpected payload shape.
func IsMalformed(err error) bool {
	var m *MalformedError
	return errors.As(err, &m)
}
