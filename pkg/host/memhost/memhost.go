// Package memhost provides an in-memory navigation host for tests and
// headless use. It models the parts of a browser the router observes:
// a current location, a history stack, a document title, and pop-state,
// hash-change, and click notifications.
//
// Notification behavior mirrors a real browser where the router cares:
// assigning a location that differs only in its fragment emits a
// hash-change, assigning the identical location emits nothing, and pushing
// a history entry emits nothing at all.
package memhost

import (
	"sync"

	"github.com/gurugeek/m4d-router/pkg/host"
	"github.com/gurugeek/m4d-router/pkg/routepath"
)

// Entry is one record on the in-memory history stack.
type Entry struct {
	Title string
	Path  string
}

// Option configures a Host.
type Option func(*Host)

// WithoutPushState makes the host report no history API support, which
// steers routers into fragment mode by default.
func WithoutPushState() Option {
	return func(h *Host) {
		h.pushState = false
	}
}

// Host is an in-memory implementation of host.Host.
type Host struct {
	mu        sync.Mutex
	path      string
	title     string
	history   []Entry
	pushState bool

	pop    subscribers[func()]
	hash   subscribers[func()]
	clicks subscribers[func(host.Click) bool]
}

// New creates a Host positioned at the given observable path.
func New(path string, opts ...Option) *Host {
	h := &Host{
		path:      path,
		pushState: true,
		history:   []Entry{{Path: path}},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// CurrentPath returns the observable path: pathname plus hash.
func (h *Host) CurrentPath() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.path
}

// Title returns the current document title.
func (h *Host) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}

// HistoryLen returns the number of entries on the history stack.
func (h *Host) HistoryLen() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.history)
}

// OnPopState subscribes to history-pop notifications.
func (h *Host) OnPopState(fn func()) host.CancelFunc {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pop.add(&h.mu, fn)
}

// OnHashChange subscribes to fragment-change notifications.
func (h *Host) OnHashChange(fn func()) host.CancelFunc {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hash.add(&h.mu, fn)
}

// OnClick subscribes to click notifications.
func (h *Host) OnClick(fn func(host.Click) bool) host.CancelFunc {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clicks.add(&h.mu, fn)
}

// PushHistory pushes a new history entry and moves to path. Like the
// browser API it notifies nobody.
func (h *Host) PushHistory(title, path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.history = append(h.history, Entry{Title: title, Path: path})
	h.path = path
}

// AssignLocation assigns a new location. A path beginning with "#" is
// resolved against the current pathname. The assignment emits a
// hash-change when only the fragment changed; an identical URL emits
// nothing, matching browsers that skip the event in that case.
func (h *Host) AssignLocation(path string) {
	h.mu.Lock()
	oldPath := h.path
	newPath := path
	if len(path) > 0 && path[0] == '#' {
		base, _ := routepath.SplitPathAndFragment(oldPath)
		newPath = base + path
	}
	if newPath == oldPath {
		h.mu.Unlock()
		return
	}
	h.path = newPath
	h.history = append(h.history, Entry{Path: newPath})

	oldBase, _ := routepath.SplitPathAndFragment(oldPath)
	newBase, _ := routepath.SplitPathAndFragment(newPath)
	fns := h.hash.snapshot()
	h.mu.Unlock()

	if oldBase == newBase {
		for _, fn := range fns {
			fn()
		}
	}
}

// SetDocumentTitle sets the document title.
func (h *Host) SetDocumentTitle(title string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.title = title
}

// SupportsPushState reports whether the host has a history API.
func (h *Host) SupportsPushState() bool {
	return h.pushState
}

// Back pops the top history entry and emits a pop-state notification,
// like the browser back button. It is a no-op at the bottom of the stack.
func (h *Host) Back() {
	h.mu.Lock()
	if len(h.history) < 2 {
		h.mu.Unlock()
		return
	}
	h.history = h.history[:len(h.history)-1]
	h.path = h.history[len(h.history)-1].Path
	fns := h.pop.snapshot()
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Click feeds a click through the subscribers and reports whether any of
// them claimed it.
func (h *Host) Click(c host.Click) bool {
	h.mu.Lock()
	fns := h.clicks.snapshot()
	h.mu.Unlock()

	claimed := false
	for _, fn := range fns {
		if fn(c) {
			claimed = true
		}
	}
	return claimed
}

// subscribers is an ordered subscriber list with stable delivery order.
type subscribers[F any] struct {
	entries []subEntry[F]
	nextID  int
}

type subEntry[F any] struct {
	id int
	fn F
}

// add registers fn and returns a cancel that removes it. The caller must
// hold mu; the returned cancel acquires it.
func (s *subscribers[F]) add(mu *sync.Mutex, fn F) host.CancelFunc {
	id := s.nextID
	s.nextID++
	s.entries = append(s.entries, subEntry[F]{id: id, fn: fn})

	return func() {
		mu.Lock()
		defer mu.Unlock()
		for i, e := range s.entries {
			if e.id == id {
				s.entries = append(s.entries[:i], s.entries[i+1:]...)
				return
			}
		}
	}
}

// snapshot returns the current callbacks in registration order.
func (s *subscribers[F]) snapshot() []F {
	fns := make([]F, len(s.entries))
	for i, e := range s.entries {
		fns[i] = e.fn
	}
	return fns
}
