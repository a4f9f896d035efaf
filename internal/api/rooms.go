package api

import (
	"context"
	"net/http"

	"chat-client/internal/models"
)

// RoomAPI defines the room endpoints of the chat server.
type RoomAPI interface {
	ListRooms(ctx context.Context) ([]models.Room, error)
	GetRoomMessages(ctx context.Context, roomID string) (models.RoomHistory, error)
	SendMessage(ctx context.Context, roomID, body string) error
	DeleteMessage(ctx context.Context, roomID, messageID string) error
	EditMessage(ctx context.Context, roomID, messageID, body string) error
}

// RoomClient is the HTTP implementation of RoomAPI.
type RoomClient struct {
	client *Client
}

// NewRoomClient constructs RoomClient.
func NewRoomClient(client *Client) *RoomClient {
	return &RoomClient{client: client}
}

// ListRooms fetches the rooms visible to the session.
func (r *RoomClient) ListRooms(ctx context.Context) ([]models.Room, error) {
	var resp struct {
		Data []models.Room `json:"data"`
	}
	if err := r.client.do(ctx, http.MethodGet, "rooms", "/api/rooms", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetRoomMessages fetches a room's history, most-recent-first.
func (r *RoomClient) GetRoomMessages(ctx context.Context, roomID string) (models.RoomHistory, error) {
	var resp models.RoomHistory
	if err := r.client.do(ctx, http.MethodGet, "room_messages", "/api/rooms/"+roomID+"/messages", nil, &resp); err != nil {
		return models.RoomHistory{}, err
	}
	return resp, nil
}

// SendMessage posts a new message to a room.
func (r *RoomClient) SendMessage(ctx context.Context, roomID, body string) error {
	req := struct {
		Body string `json:"body"`
	}{Body: body}
	return r.client.do(ctx, http.MethodPost, "send_message", "/api/rooms/"+roomID+"/messages", req, nil)
}

// DeleteMessage removes a message from a room.
func (r *RoomClient) DeleteMessage(ctx context.Context, roomID, messageID string) error {
	req := struct {
		ID string `json:"id"`
	}{ID: messageID}
	return r.client.do(ctx, http.MethodDelete, "delete_message", "/api/rooms/"+roomID+"/messages", req, nil)
}

// EditMessage replaces the body of an existing message.
func (r *RoomClient) EditMessage(ctx context.Context, roomID, messageID, body string) error {
	req := struct {
		ID   string `json:"id"`
		Body string `json:"body"`
	}{ID: messageID, Body: body}
	return r.client.do(ctx, http.MethodPut, "edit_message", "/api/rooms/"+roomID+"/messages", req, nil)
}

var _ RoomAPI = (*RoomClient)(nil)
