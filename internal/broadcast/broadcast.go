package broadcast

import "sync"

// Broadcaster delivers event messages to whatever surface is attached
// (the WebSocket hub in practice). Core packages send through this
// indirection so they never import the webserver.
type Broadcaster interface {
	BroadcastMessage(message interface{})
}

var (
	mu      sync.RWMutex
	current Broadcaster
)

// SetBroadcaster attaches the active broadcaster.
func SetBroadcaster(b Broadcaster) {
	mu.Lock()
	defer mu.Unlock()
	current = b
}

// Send delivers a message to the attached broadcaster, dropping it silently
// when none is attached yet.
func Send(message map[string]interface{}) {
	mu.RLock()
	b := current
	mu.RUnlock()

	if b != nil {
		b.BroadcastMessage(message)
	}
}
