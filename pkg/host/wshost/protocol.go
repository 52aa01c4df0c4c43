package wshost

// Frame types exchanged with the bridge client. The client opens the
// socket with a hello frame, then streams navigation notifications up;
// the server streams navigation instructions down.
const (
	// Client → server.
	FrameHello      = "hello"
	FramePopState   = "popstate"
	FrameHashChange = "hashchange"
	FrameClick      = "click"

	// Server → client.
	FramePush   = "push"
	FrameAssign = "assign"
	FrameTitle  = "title"
)

// Frame is the single JSON message shape used in both directions.
// Unused fields are omitted on the wire.
type Frame struct {
	Type string `json:"type"`

	// Path carries the observable path (pathname + hash) on hello,
	// popstate, hashchange, and click frames, and the navigation target
	// on push and assign frames.
	Path string `json:"path,omitempty"`

	// Title carries the anchor title on click frames and the document
	// title on push and title frames.
	Title string `json:"title,omitempty"`

	// PushState reports history API support; set on hello frames only.
	PushState bool `json:"pushState,omitempty"`
}
