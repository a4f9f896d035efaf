package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"chat-client/internal/api"
	"chat-client/internal/models"
	"chat-client/internal/notify"
)

type RoomAPIMock struct {
	mock.Mock
}

func (m *RoomAPIMock) ListRooms(ctx context.Context) ([]models.Room, error) {
	args := m.Called(ctx)
	var rooms []models.Room
	if val := args.Get(0); val != nil {
		rooms = val.([]models.Room)
	}
	return rooms, args.Error(1)
}

func (m *RoomAPIMock) GetRoomMessages(ctx context.Context, roomID string) (models.RoomHistory, error) {
	args := m.Called(ctx, roomID)
	var history models.RoomHistory
	if val := args.Get(0); val != nil {
		history = val.(models.RoomHistory)
	}
	return history, args.Error(1)
}

func (m *RoomAPIMock) SendMessage(ctx context.Context, roomID, body string) error {
	args := m.Called(ctx, roomID, body)
	return args.Error(0)
}

func (m *RoomAPIMock) DeleteMessage(ctx context.Context, roomID, messageID string) error {
	args := m.Called(ctx, roomID, messageID)
	return args.Error(0)
}

func (m *RoomAPIMock) EditMessage(ctx context.Context, roomID, messageID, body string) error {
	args := m.Called(ctx, roomID, messageID, body)
	return args.Error(0)
}

type UserAPIMock struct {
	mock.Mock
}

func (m *UserAPIMock) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *UserAPIMock) Self(ctx context.Context) (models.User, error) {
	args := m.Called(ctx)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) Notify(title, body string) error {
	args := m.Called(title, body)
	return args.Error(0)
}

var _ api.RoomAPI = (*RoomAPIMock)(nil)
var _ api.UserAPI = (*UserAPIMock)(nil)
var _ notify.Notifier = (*NotifierMock)(nil)
