// Package store keeps the per-room in-memory message cache. A room's cache
// exists only after its history has been loaded; live events for never-loaded
// rooms are discarded, since there is nowhere coherent to insert them.
package store

import (
	"context"
	"sync"

	"chat-client/internal/api"
	"chat-client/internal/models"
)

// MessageStore maps room ids to ordered message lists, most-recent-first.
type MessageStore struct {
	api api.RoomAPI

	mu     sync.RWMutex
	byRoom map[string][]models.Message
}

// NewMessageStore constructs an empty MessageStore.
func NewMessageStore(roomAPI api.RoomAPI) *MessageStore {
	return &MessageStore{
		api:    roomAPI,
		byRoom: make(map[string][]models.Message),
	}
}

// LoadHistory fetches a room's history and overwrites any cached sequence for
// that room. On failure the previous cache, if any, is left untouched.
// Overlapping calls for the same room are last-write-wins by completion
// order.
func (s *MessageStore) LoadHistory(ctx context.Context, roomID string) (models.RoomHistory, error) {
	history, err := s.api.GetRoomMessages(ctx, roomID)
	if err != nil {
		return models.RoomHistory{}, err
	}

	messages := make([]models.Message, len(history.Messages))
	copy(messages, history.Messages)

	s.mu.Lock()
	s.byRoom[roomID] = messages
	s.mu.Unlock()

	return history, nil
}

// ApplyInsert prepends a message to the room's sequence. No-op when the room
// has never been loaded.
func (s *MessageStore) ApplyInsert(roomID string, msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	messages, ok := s.byRoom[roomID]
	if !ok {
		return
	}
	s.byRoom[roomID] = append([]models.Message{msg}, messages...)
}

// ApplyEdit replaces a message's body in place and reports the updated copy.
// Not found is a no-op.
func (s *MessageStore) ApplyEdit(roomID, messageID, newBody string) (models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	messages, ok := s.byRoom[roomID]
	if !ok {
		return models.Message{}, false
	}
	for i := range messages {
		if messages[i].ID == messageID {
			messages[i].Body = newBody
			return messages[i], true
		}
	}
	return models.Message{}, false
}

// ApplyDelete removes a message by id. Not found is a no-op.
func (s *MessageStore) ApplyDelete(roomID, messageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	messages, ok := s.byRoom[roomID]
	if !ok {
		return false
	}
	for i := range messages {
		if messages[i].ID == messageID {
			s.byRoom[roomID] = append(messages[:i:i], messages[i+1:]...)
			return true
		}
	}
	return false
}

// Read returns a snapshot of the room's cached sequence. ok is false when the
// room has never been loaded, which is distinct from an empty room.
func (s *MessageStore) Read(roomID string) ([]models.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	messages, ok := s.byRoom[roomID]
	if !ok {
		return nil, false
	}
	snapshot := make([]models.Message, len(messages))
	copy(snapshot, messages)
	return snapshot, true
}
