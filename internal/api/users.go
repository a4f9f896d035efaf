package api

import (
	"context"
	"net/http"

	"chat-client/internal/models"
)

// UserAPI defines the user-directory endpoints of the chat server.
type UserAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	Self(ctx context.Context) (models.User, error)
}

// UserClient is the HTTP implementation of UserAPI.
type UserClient struct {
	client *Client
}

// NewUserClient constructs UserClient.
func NewUserClient(client *Client) *UserClient {
	return &UserClient{client: client}
}

// ListUsers fetches all users known to the session.
func (u *UserClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var resp struct {
		Data []models.User `json:"data"`
	}
	if err := u.client.do(ctx, http.MethodGet, "users", "/api/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Self fetches the session's own identity.
func (u *UserClient) Self(ctx context.Context) (models.User, error) {
	var resp models.User
	if err := u.client.do(ctx, http.MethodGet, "self", "/api/users/me", nil, &resp); err != nil {
		return models.User{}, err
	}
	return resp, nil
}

var _ UserAPI = (*UserClient)(nil)
