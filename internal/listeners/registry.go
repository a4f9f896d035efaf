// Package listeners routes live room events to UI callbacks. Each
// (room, event kind) pair holds at most one callback: the UI shows one room
// view at a time, so subscribing replaces any prior callback. This is
// intentionally non-multiplexing.
package listeners

import (
	"sync"

	"chat-client/internal/models"
)

// Event kinds delivered to listeners.
const (
	KindNewMessage    = "new-message"
	KindDeleteMessage = "delete-message"
	KindEditMessage   = "edit-message"
)

// Callback receives a live room event.
type Callback func(models.RoomEvent)

type key struct {
	roomID string
	kind   string
}

// Registry is the per-room, per-kind single-subscriber callback table.
type Registry struct {
	mu        sync.RWMutex
	callbacks map[key]Callback
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{callbacks: make(map[key]Callback)}
}

// Subscribe stores the callback for (roomID, kind), silently replacing any
// existing one.
func (r *Registry) Subscribe(roomID, kind string, cb Callback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks[key{roomID: roomID, kind: kind}] = cb
}

// Unsubscribe clears the callback for (roomID, kind).
func (r *Registry) Unsubscribe(roomID, kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.callbacks, key{roomID: roomID, kind: kind})
}

// Dispatch invokes the stored callback for the event's room and kind.
// Absence of a callback means the room view is not mounted; that is a normal,
// silent no-op. The callback runs outside the registry lock.
func (r *Registry) Dispatch(event models.RoomEvent) {
	r.mu.RLock()
	cb := r.callbacks[key{roomID: event.RoomID, kind: event.Kind}]
	r.mu.RUnlock()
	if cb != nil {
		cb(event)
	}
}
