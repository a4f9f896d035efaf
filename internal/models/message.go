package models

import "time"

// Message represents a chat message. Field names on the wire follow the
// server contract.
type Message struct {
	ID        string    `json:"_id"`
	AuthorID  string    `json:"user"`
	Body      string    `json:"body"`
	RoomID    string    `json:"room"`
	CreatedAt time.Time `json:"createdAt"`
}

// RoomHistory is the result of a room history fetch.
type RoomHistory struct {
	Messages       []Message      `json:"messages"`
	UserRoomConfig UserRoomConfig `json:"userRoomConfig"`
}

// RoomEvent is delivered to room listeners. New-message and edit-message
// events carry Message; delete-message events carry MessageID.
type RoomEvent struct {
	Kind      string   `json:"kind"`
	RoomID    string   `json:"room"`
	Message   *Message `json:"message,omitempty"`
	MessageID string   `json:"message_id,omitempty"`
}
