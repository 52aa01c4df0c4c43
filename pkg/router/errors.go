package router

import (
	"errors"
	"fmt"
)

// Sentinel errors for router failure conditions.
var (
	// ErrAlreadyListening is returned when Listen is called a second time.
	ErrAlreadyListening = errors.New("router: already listening")

	// ErrUnknownPattern is returned when GotoURL is given a pattern that
	// was never registered.
	ErrUnknownPattern = errors.New("router: pattern not registered")

	// ErrNoRoute is returned when no registered pattern matches a path
	// and no error-stream subscriber is attached to absorb the failure.
	ErrNoRoute = errors.New("router: no route matches path")

	// ErrUnknownEvent is returned when an unrecognized event shape
	// reaches the broadcast step. With only two event kinds this should
	// be unreachable.
	ErrUnknownEvent = errors.New("router: unknown event type")
)

// NoRouteError reports the path that matched no registered route.
type NoRouteError struct {
	Path string
}

func (e *NoRouteError) Error() string {
	return fmt.Sprintf("router: no route matches path %q", e.Path)
}

// Unwrap returns ErrNoRoute for errors.Is.
func (e *NoRouteError) Unwrap() error {
	return ErrNoRoute
}

// UnknownPatternError reports a GotoURL call with an unregistered pattern.
type UnknownPatternError struct {
	Pattern string
}

func (e *UnknownPatternError) Error() string {
	return fmt.Sprintf("router: pattern %q not registered", e.Pattern)
}

// Unwrap returns ErrUnknownPattern for errors.Is.
func (e *UnknownPatternError) Unwrap() error {
	return ErrUnknownPattern
}
