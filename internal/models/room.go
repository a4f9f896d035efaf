package models

// Room represents a chat room known to the session.
type Room struct {
	ID             string          `json:"_id"`
	Name           string          `json:"name"`
	UserRoomConfig *UserRoomConfig `json:"userRoomConfig,omitempty"`
}

// UserRoomConfig carries per-user read state. The sync layer passes this
// through untouched; only the UI interprets it.
type UserRoomConfig struct {
	LastReadMessageID string `json:"lastReadMessageId"`
}
