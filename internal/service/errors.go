package service

import (
	"errors"
	"strings"
)

var (
	// ErrMissingFields is returned when a required request field is absent.
	ErrMissingFields = errors.New("missing required fields")

	// ErrUnauthorized is returned when the phone/bus pair fails the
	// coordinator check. The message is deliberately generic so callers
	// cannot probe which half of the pair was wrong.
	ErrUnauthorized = errors.New("unauthorized coordinator")

	// ErrInvalidCredentials is returned for both an unknown USN and a wrong
	// password, so login failures never reveal whether a user exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrLocationNotFound is the single read-miss result: a bus that never
	// reported, a stale record and a deactivated bus all look identical to
	// a reading student.
	ErrLocationNotFound = errors.New("bus location not found or outdated")
)

// ValidationError enumerates everything wrong with a request at once, so a
// client can correct its input without guessing.
type ValidationError struct {
	MissingFields []string
	Violations    []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.MissingFields) > 0 {
		parts = append(parts, "missing fields: "+strings.Join(e.MissingFields, ", "))
	}
	parts = append(parts, e.Violations...)
	return strings.Join(parts, "; ")
}

func (e *ValidationError) empty() bool {
	return len(e.MissingFields) == 0 && len(e.Violations) == 0
}
