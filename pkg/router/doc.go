// Package router implements a client-side URL router: it maps registered
// URL patterns to handlers, reacts to navigation notifications from a
// host, and broadcasts route-enter and route-error events.
//
// # Usage
//
//	r := router.New(h)
//	r.AddRoute("user", "/users/:id", func(e *router.EnterEvent) {
//	    showUser(e.Params[0])
//	})
//	if err := r.Listen(false); err != nil {
//	    log.Fatal(err)
//	}
//
// Registration order is significant: resolution scans patterns in insertion
// order and the first match wins. With "/users/:id" registered before
// "/users/new", the path "/users/new" resolves to the first route with
// "new" as the id value — register more specific patterns first.
//
// # Navigation modes
//
// A router navigates either through full-path history entries (path mode)
// or through the URL fragment (fragment mode, for hosts without a usable
// history API). The mode is fixed at construction; when not set explicitly
// it is derived from the host's push-state support.
//
// # Events
//
// A successful resolution fires an EnterEvent to the matched route's own
// callback, always and exactly once, and to any enter-stream subscribers.
// An unresolved path fires an ErrorEvent when someone subscribes to the
// error stream; with no subscriber the failure is returned to the caller
// instead, so unmatched paths fail loud during development.
//
// # Concurrency
//
// A Router is single-threaded by design: all calls and host notifications
// must come from one goroutine, mirroring the browser event loop it
// front-ends. Routes must not be added from inside an OnEnter callback
// while the resolution that triggered it is still running.
package router
