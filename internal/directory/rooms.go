// Package directory holds the session-scoped room and user indexes. Both are
// populated by one-shot fetches and answer lookups without touching the
// network.
package directory

import (
	"context"
	"sync"

	"chat-client/internal/api"
	"chat-client/internal/models"
)

// RoomDirectory maps room ids to room metadata.
type RoomDirectory struct {
	api api.RoomAPI

	mu    sync.RWMutex
	rooms map[string]models.Room
}

// NewRoomDirectory constructs an empty RoomDirectory.
func NewRoomDirectory(roomAPI api.RoomAPI) *RoomDirectory {
	return &RoomDirectory{
		api:   roomAPI,
		rooms: make(map[string]models.Room),
	}
}

// Load fetches the room list and merges it into the index by room id. On
// failure the index is left untouched.
func (d *RoomDirectory) Load(ctx context.Context) ([]models.Room, error) {
	rooms, err := d.api.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	for _, room := range rooms {
		d.rooms[room.ID] = room
	}
	d.mu.Unlock()
	return rooms, nil
}

// List returns a snapshot of all rooms in the index.
func (d *RoomDirectory) List() []models.Room {
	d.mu.RLock()
	defer d.mu.RUnlock()
	rooms := make([]models.Room, 0, len(d.rooms))
	for _, room := range d.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

// Lookup returns the room for id from the local index. It never triggers
// network I/O; an unknown id reports false rather than failing.
func (d *RoomDirectory) Lookup(id string) (models.Room, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	room, ok := d.rooms[id]
	return room, ok
}
