// Package wshost bridges a real browser to the router over a WebSocket.
//
// The embedded bridge client (see BridgeJS) intercepts pop-state,
// hash-change, and same-host anchor clicks in the page and forwards them as
// JSON frames; navigation instructions flow back on the same socket. The
// bridge thus implements host.Host for a page it never shares a process
// with.
//
// Anchor clicks are a special case: suppressing a click's default action
// cannot wait for a server round trip, so the client prevents it before
// sending the frame. The OnClick callback's return value is therefore
// advisory for this host.
//
// A Bridge serves one page at a time; a new connection replaces the
// previous one. All notifications are delivered from the connection's
// single read goroutine, in arrival order.
package wshost

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/gurugeek/m4d-router/pkg/broadcast"
	"github.com/gurugeek/m4d-router/pkg/host"
	"github.com/gurugeek/m4d-router/pkg/routepath"
)

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the bridge's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// WithCheckOrigin sets the WebSocket origin check. The default accepts
// same-origin requests only (the gorilla/websocket default).
func WithCheckOrigin(check func(*http.Request) bool) Option {
	return func(b *Bridge) {
		b.upgrader.CheckOrigin = check
	}
}

// Bridge is a host.Host backed by a browser page over a WebSocket.
// It is also an http.Handler: mount it on the route the bridge client
// connects to.
type Bridge struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	path      string
	pushState bool

	connects broadcast.Stream[struct{}]
	pops     broadcast.Stream[struct{}]
	hashes   broadcast.Stream[struct{}]
	clicks   broadcast.Stream[host.Click]
}

// New creates a Bridge with no connected page. Until a client completes
// its hello, CurrentPath is empty and navigation instructions are dropped.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: slog.Default().With("component", "wshost"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ServeHTTP upgrades the request and runs the connection's read loop.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	var hello Frame
	if err := conn.ReadJSON(&hello); err != nil || hello.Type != FrameHello {
		b.logger.Warn("bridge client sent no hello", "error", err)
		conn.Close()
		return
	}

	b.mu.Lock()
	if b.conn != nil {
		b.conn.Close()
	}
	b.conn = conn
	b.path = hello.Path
	b.pushState = hello.PushState
	b.mu.Unlock()

	b.logger.Info("bridge connected", "path", hello.Path, "pushState", hello.PushState)
	b.connects.Publish(struct{}{})

	b.readLoop(conn)
}

// readLoop dispatches inbound frames until the connection dies.
func (b *Bridge) readLoop(conn *websocket.Conn) {
	defer func() {
		b.mu.Lock()
		if b.conn == conn {
			b.conn = nil
		}
		b.mu.Unlock()
		conn.Close()
	}()

	for {
		var f Frame
		if err := conn.ReadJSON(&f); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				b.logger.Warn("bridge read failed", "error", err)
			}
			return
		}

		switch f.Type {
		case FramePopState:
			b.setPath(f.Path)
			b.pops.Publish(struct{}{})
		case FrameHashChange:
			b.setPath(f.Path)
			b.hashes.Publish(struct{}{})
		case FrameClick:
			// The client only forwards same-host anchors, and has
			// already suppressed the default action.
			b.clicks.Publish(host.Click{SameHost: true, Path: f.Path, Title: f.Title})
		default:
			b.logger.Warn("unknown bridge frame", "type", f.Type)
		}
	}
}

// OnConnect subscribes to page connections. Useful for starting the
// router's initial dispatch once a page is actually attached.
func (b *Bridge) OnConnect(fn func()) host.CancelFunc {
	sub := b.connects.Subscribe(func(struct{}) { fn() })
	return sub.Cancel
}

// setPath records the path reported by the page.
func (b *Bridge) setPath(path string) {
	b.mu.Lock()
	b.path = path
	b.mu.Unlock()
}

// CurrentPath returns the last path reported by the page.
func (b *Bridge) CurrentPath() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.path
}

// OnPopState subscribes to history-pop notifications.
func (b *Bridge) OnPopState(fn func()) host.CancelFunc {
	sub := b.pops.Subscribe(func(struct{}) { fn() })
	return sub.Cancel
}

// OnHashChange subscribes to fragment-change notifications.
func (b *Bridge) OnHashChange(fn func()) host.CancelFunc {
	sub := b.hashes.Subscribe(func(struct{}) { fn() })
	return sub.Cancel
}

// OnClick subscribes to intercepted click notifications.
func (b *Bridge) OnClick(fn func(host.Click) bool) host.CancelFunc {
	sub := b.clicks.Subscribe(func(c host.Click) { fn(c) })
	return sub.Cancel
}

// PushHistory instructs the page to push a history entry.
func (b *Bridge) PushHistory(title, path string) {
	b.mu.Lock()
	b.path = path
	b.mu.Unlock()
	b.send(Frame{Type: FramePush, Path: path, Title: title})
}

// AssignLocation instructs the page to assign a new location. A path
// beginning with "#" is tracked against the current pathname, mirroring
// what the browser will do with it.
func (b *Bridge) AssignLocation(path string) {
	b.mu.Lock()
	if len(path) > 0 && path[0] == '#' {
		base, _ := routepath.SplitPathAndFragment(b.path)
		b.path = base + path
	} else {
		b.path = path
	}
	b.mu.Unlock()
	b.send(Frame{Type: FrameAssign, Path: path})
}

// SetDocumentTitle instructs the page to set its document title.
func (b *Bridge) SetDocumentTitle(title string) {
	b.send(Frame{Type: FrameTitle, Title: title})
}

// SupportsPushState reports the history API support announced on hello.
func (b *Bridge) SupportsPushState() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pushState
}

// send writes a frame to the connected page, dropping it when no page is
// attached.
func (b *Bridge) send(f Frame) {
	b.mu.Lock()
	conn := b.conn
	b.mu.Unlock()
	if conn == nil {
		return
	}
	if err := conn.WriteJSON(f); err != nil {
		b.logger.Warn("bridge write failed", "type", f.Type, "error", err)
	}
}
