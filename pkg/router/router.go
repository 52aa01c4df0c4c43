package router

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/gurugeek/m4d-router/pkg/broadcast"
	"github.com/gurugeek/m4d-router/pkg/host"
	"github.com/gurugeek/m4d-router/pkg/metrics"
	"github.com/gurugeek/m4d-router/pkg/pattern"
)

// defaultTracerName is used by WithTracing when no name is given.
const defaultTracerName = "m4d-router"

// Router owns the route registry, drives navigation through its host, and
// broadcasts enter and error events. See the package documentation for the
// threading contract.
type Router struct {
	host        host.Host
	useFragment bool
	listening   bool
	logger      *slog.Logger
	tracer      trace.Tracer

	// Registry: pattern source → route, with insertion order preserved.
	// Re-registering a pattern replaces the route in place.
	order  []string
	routes map[string]*Route

	enterStream broadcast.Stream[*EnterEvent]
	errorStream broadcast.Stream[*ErrorEvent]
}

// Option configures a Router at construction.
type Option func(*Router)

// WithFragment fixes the navigation mode explicitly instead of deriving it
// from the host's push-state support.
func WithFragment(useFragment bool) Option {
	return func(r *Router) {
		r.useFragment = useFragment
	}
}

// WithLogger sets the logger used for swallowed notification failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithTracing enables an OpenTelemetry span around each resolution.
// An empty name selects the default tracer name.
func WithTracing(tracerName string) Option {
	return func(r *Router) {
		if tracerName == "" {
			tracerName = defaultTracerName
		}
		r.tracer = otel.Tracer(tracerName)
	}
}

// New creates a Router on the given host. Without WithFragment the mode is
// derived from the host: fragment navigation when push-state is missing.
func New(h host.Host, opts ...Option) *Router {
	r := &Router{
		host:        h,
		useFragment: !h.SupportsPushState(),
		routes:      make(map[string]*Route),
		logger:      slog.Default().With("component", "router"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// UseFragment reports the navigation mode fixed at construction.
func (r *Router) UseFragment() bool {
	return r.useFragment
}

// Listening reports whether Listen has been called.
func (r *Router) Listening() bool {
	return r.listening
}

// AddRoute compiles path and registers it with the given entry callback.
// Registering a pattern identical to an existing one replaces its route;
// the original registry position is kept.
func (r *Router) AddRoute(name, path string, onEnter EnterFunc) {
	r.AddPattern(name, pattern.Compile(path), onEnter)
}

// AddPattern registers a precompiled pattern with the given entry callback.
func (r *Router) AddPattern(name string, p *pattern.Pattern, onEnter EnterFunc) {
	key := p.String()
	if _, exists := r.routes[key]; !exists {
		r.order = append(r.order, key)
	}
	r.routes[key] = &Route{name: name, pattern: p, onEnter: onEnter}
}

// OnEnter subscribes to the enter event stream.
func (r *Router) OnEnter(fn func(*EnterEvent)) *broadcast.Subscription {
	return r.enterStream.Subscribe(fn)
}

// OnError subscribes to the error event stream. While at least one
// subscriber is attached, unresolved paths are reported here instead of
// failing the caller.
func (r *Router) OnError(fn func(*ErrorEvent)) *broadcast.Subscription {
	return r.errorStream.Subscribe(fn)
}

// Listen subscribes the router to its host's navigation notifications.
// It may be called at most once; a second call returns ErrAlreadyListening
// and leaves the existing subscriptions active.
//
// In fragment mode the router also resolves the current path immediately,
// because the initial page load produces no hash-change notification. In
// path mode the initial render is assumed already handled by the host page.
func (r *Router) Listen(ignoreClick bool) error {
	if r.listening {
		return ErrAlreadyListening
	}
	r.listening = true

	if r.useFragment {
		r.host.OnHashChange(func() {
			r.handle(r.host.CurrentPath())
		})
		r.handle(r.host.CurrentPath())
	} else {
		r.host.OnPopState(func() {
			r.handle(r.host.CurrentPath())
		})
	}

	if !ignoreClick {
		r.host.OnClick(func(c host.Click) bool {
			if !c.SameHost {
				return false
			}
			if err := r.GotoPath(c.Path, c.Title); err != nil {
				r.logger.Warn("click navigation failed", "path", c.Path, "error", err)
			}
			return true
		})
	}
	return nil
}

// GotoURL expands a registered pattern with the given parameter values,
// navigates to the result, and fires the enter event. The event fires
// unconditionally: GotoURL does not wait for a host notification.
// The pattern must be a registry key; otherwise ErrUnknownPattern.
func (r *Router) GotoURL(p *pattern.Pattern, params []string, title string) error {
	key := p.String()
	rt, ok := r.routes[key]
	if !ok {
		return &UnknownPatternError{Pattern: key}
	}
	url, err := rt.pattern.Expand(params, r.useFragment)
	if err != nil {
		return err
	}
	metrics.RecordNavigation(key, "match")
	r.navigate(url, title)
	return r.fire(&EnterEvent{Route: rt, Path: url, Params: params})
}

// GotoPath resolves path against the registry, navigates on a match, and
// fires the enter event — except when the router is listening in fragment
// mode, where the hash-change notification triggered by the navigation is
// expected to produce the event instead. If the target path equals the
// current one some hosts emit no such notification and the event is
// silently dropped; this is a known limitation of fragment mode.
func (r *Router) GotoPath(path, title string) error {
	res, err := r.resolve(path)
	if err != nil {
		return err
	}
	if res == nil {
		// Already reported to the error stream.
		return nil
	}
	r.navigate(path, title)
	if r.listening && r.useFragment {
		return nil
	}
	return r.fire(&EnterEvent{Route: res.route, Path: res.canonical, Params: res.params})
}

// ClickHandler returns a reusable click callback that claims the event and
// performs GotoURL with the given arguments. Attach it to anchor
// activation notifications.
func (r *Router) ClickHandler(p *pattern.Pattern, params []string, title string) func(host.Click) bool {
	return func(host.Click) bool {
		if err := r.GotoURL(p, params, title); err != nil {
			r.logger.Warn("click navigation failed", "pattern", p.String(), "error", err)
		}
		return true
	}
}

// navigate performs the mode-appropriate navigation. An absent title is
// the empty string.
func (r *Router) navigate(url, title string) {
	if r.useFragment {
		r.host.AssignLocation(url)
		r.host.SetDocumentTitle(title)
		return
	}
	r.host.PushHistory(title, url)
}

// handle is the notification-driven entry point. It never fails: a path
// with no route is logged and swallowed, because a notification callback
// has no caller to receive an error.
func (r *Router) handle(path string) {
	res, err := r.resolve(path)
	if err != nil {
		r.logger.Warn("no route for path", "path", path)
		return
	}
	if res == nil {
		return
	}
	_ = r.fire(&EnterEvent{Route: res.route, Path: res.canonical, Params: res.params})
}

// resolution is the outcome of matching a path against the registry.
type resolution struct {
	route     *Route
	params    []string
	canonical string
}

// resolve scans the registry in insertion order and returns the first
// matching route, its ordered parameters, and the canonical re-expanded
// path. On no match it either fires an ErrorEvent and returns (nil, nil),
// when the error stream has a subscriber, or returns a NoRouteError.
func (r *Router) resolve(path string) (*resolution, error) {
	start := time.Now()

	var span trace.Span
	if r.tracer != nil {
		_, span = r.tracer.Start(context.Background(), "router.resolve",
			trace.WithAttributes(attribute.String("router.path", path)))
		defer span.End()
	}

	for _, key := range r.order {
		rt := r.routes[key]
		params, ok := rt.pattern.Parse(path)
		if !ok {
			continue
		}
		canonical, err := rt.pattern.Expand(params, r.useFragment)
		if err != nil {
			// Unreachable: params came from this pattern's own Parse.
			return nil, err
		}

		metrics.ObserveResolveDuration(key, time.Since(start).Seconds())
		metrics.RecordNavigation(key, "match")
		if span != nil {
			span.SetAttributes(
				attribute.String("router.route", rt.name),
				attribute.String("router.pattern", key),
			)
		}
		return &resolution{route: rt, params: params, canonical: canonical}, nil
	}

	metrics.ObserveResolveDuration(path, time.Since(start).Seconds())
	metrics.RecordNavigation(path, "no_match")
	metrics.RecordRouteError(path)

	err := &NoRouteError{Path: path}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "no route")
	}

	if r.errorStream.HasSubscribers() {
		_ = r.fire(&ErrorEvent{Err: err, Path: path})
		return nil, nil
	}
	return nil, err
}

// fire dispatches an event over the closed event set. Enter events reach
// the enter-stream subscribers and, unconditionally, the matched route's
// own callback; error events reach the error-stream subscribers or are
// dropped. Anything else is rejected.
func (r *Router) fire(ev Event) error {
	switch e := ev.(type) {
	case *EnterEvent:
		r.enterStream.Publish(e)
		if e.Route != nil && e.Route.onEnter != nil {
			e.Route.onEnter(e)
		}
		return nil
	case *ErrorEvent:
		r.errorStream.Publish(e)
		return nil
	default:
		return ErrUnknownEvent
	}
}
