// Package host defines the navigation host contract the router drives.
//
// A Host is the router's window onto the browsing environment: it exposes
// the current location, accepts navigation instructions, and delivers
// pop-state, hash-change, and click notifications. Two implementations
// ship with this module: memhost (in-memory, for tests and headless use)
// and wshost (a real browser bridged over a WebSocket).
package host

// Click describes an intercepted anchor activation.
type Click struct {
	// SameHost reports whether the anchor points at the current host.
	// Cross-host clicks are never routed.
	SameHost bool

	// Path is the anchor's pathname plus hash.
	Path string

	// Title is the anchor's title attribute, used as the document title
	// after navigation.
	Title string
}

// CancelFunc detaches a notification subscription.
type CancelFunc func()

// Host is the minimal navigation surface the router needs.
//
// Hosts deliver all notifications from a single goroutine, in the order the
// underlying environment produced them. The router relies on that ordering
// and performs no locking of its own.
type Host interface {
	// CurrentPath returns the observable path: pathname plus hash.
	CurrentPath() string

	// OnPopState subscribes to history-pop notifications.
	OnPopState(fn func()) CancelFunc

	// OnHashChange subscribes to fragment-change notifications.
	OnHashChange(fn func()) CancelFunc

	// OnClick subscribes to intercepted click notifications. A callback
	// returning true claims the click: the host suppresses the default
	// navigation where it is able to.
	OnClick(fn func(Click) bool) CancelFunc

	// PushHistory pushes a new history entry without reloading.
	PushHistory(title, path string)

	// AssignLocation assigns a new location, as a plain (non-history-
	// preserving) navigation would.
	AssignLocation(path string)

	// SetDocumentTitle sets the document title directly.
	SetDocumentTitle(title string)

	// SupportsPushState reports whether the environment has a usable
	// history API. Routers default to fragment mode when it is false.
	SupportsPushState() bool
}
