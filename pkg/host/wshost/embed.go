package wshost

import _ "embed"

// BridgeJS is the browser side of the bridge protocol.
//
// Serve it from the page and point it at the Bridge's WebSocket endpoint
// with a data-endpoint attribute on its script tag (default: "/ws").
//go:embed bridge.js
var BridgeJS []byte
