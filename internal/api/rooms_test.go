package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRoomsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/rooms", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		w.Write([]byte(`{"data":[{"_id":"r1","name":"General"},{"_id":"r2","name":"Random"}]}`))
	}))
	defer srv.Close()

	rooms, err := NewRoomClient(NewClient(srv.URL, "")).ListRooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "r1", rooms[0].ID)
	assert.Equal(t, "General", rooms[0].Name)
}

func TestListRoomsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewRoomClient(NewClient(srv.URL, "")).ListRooms(context.Background())
	require.ErrorIs(t, err, ErrNetwork)
}

func TestListRoomsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewRoomClient(NewClient(srv.URL, "")).ListRooms(context.Background())
	require.ErrorIs(t, err, ErrNetwork)
}

func TestListRoomsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": not json`))
	}))
	defer srv.Close()

	_, err := NewRoomClient(NewClient(srv.URL, "")).ListRooms(context.Background())
	require.ErrorIs(t, err, ErrDecode)
}

func TestGetRoomMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/rooms/r1/messages", r.URL.Path)
		w.Write([]byte(`{
			"messages":[
				{"_id":"m2","user":"u2","body":"later","room":"r1"},
				{"_id":"m1","user":"u1","body":"earlier","room":"r1"}
			],
			"userRoomConfig":{"lastReadMessageId":"m1"}
		}`))
	}))
	defer srv.Close()

	history, err := NewRoomClient(NewClient(srv.URL, "")).GetRoomMessages(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, "m2", history.Messages[0].ID)
	assert.Equal(t, "m1", history.UserRoomConfig.LastReadMessageID)
}

func TestSendMessage(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/rooms/r1/messages", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := NewRoomClient(NewClient(srv.URL, "")).SendMessage(context.Background(), "r1", "hello")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"body": "hello"}, got)
}

func TestDeleteMessage(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
	}))
	defer srv.Close()

	err := NewRoomClient(NewClient(srv.URL, "")).DeleteMessage(context.Background(), "r1", "m1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"id": "m1"}, got)
}

func TestEditMessage(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
	}))
	defer srv.Close()

	err := NewRoomClient(NewClient(srv.URL, "")).EditMessage(context.Background(), "r1", "m1", "new body")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"id": "m1", "body": "new body"}, got)
}

func TestBearerTokenHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	_, err := NewRoomClient(NewClient(srv.URL, "secret")).ListRooms(context.Background())
	require.NoError(t, err)
}
