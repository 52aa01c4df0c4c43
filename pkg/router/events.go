package router

import "github.com/gurugeek/m4d-router/pkg/pattern"

// EnterFunc is a route's entry callback.
type EnterFunc func(*EnterEvent)

// Route is an immutable pairing of a name, a URL pattern, and an entry
// callback. Routes are owned by the router's registry; events carry
// references to them.
type Route struct {
	name    string
	pattern *pattern.Pattern
	onEnter EnterFunc
}

// Name returns the route's display name, which may be empty.
func (r *Route) Name() string {
	return r.name
}

// Pattern returns the route's compiled pattern.
func (r *Route) Pattern() *pattern.Pattern {
	return r.pattern
}

// Event is the closed set of events a router broadcasts: *EnterEvent and
// *ErrorEvent.
type Event interface {
	routerEvent()
}

// EnterEvent is fired once per successful resolution. It is constructed
// per dispatch and not retained by the router after firing.
type EnterEvent struct {
	// Route is the matched route.
	Route *Route

	// Path is the fully expanded canonical path, in fragment form when
	// the router runs in fragment mode.
	Path string

	// Params are the ordered parameter values extracted from the path.
	Params []string
}

func (*EnterEvent) routerEvent() {}

// ErrorEvent is fired when a path resolves to no registered route and an
// error-stream subscriber is attached.
type ErrorEvent struct {
	// Err describes the failure.
	Err error

	// Path is the path that failed to resolve.
	Path string
}

func (*ErrorEvent) routerEvent() {}
