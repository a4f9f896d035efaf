package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chat-client/internal/mocks"
	"chat-client/internal/models"
)

func history(messages ...models.Message) models.RoomHistory {
	return models.RoomHistory{
		Messages:       messages,
		UserRoomConfig: models.UserRoomConfig{LastReadMessageID: "m1"},
	}
}

func TestNeverLoadedRoomIsAbsent(t *testing.T) {
	s := NewMessageStore(new(mocks.RoomAPIMock))

	s.ApplyInsert("r1", models.Message{ID: "m0"})
	_, found := s.ApplyEdit("r1", "m0", "new")
	assert.False(t, found)
	assert.False(t, s.ApplyDelete("r1", "m0"))

	msgs, ok := s.Read("r1")
	assert.False(t, ok)
	assert.Nil(t, msgs)
}

func TestLoadHistoryStoresMessages(t *testing.T) {
	roomAPI := new(mocks.RoomAPIMock)
	s := NewMessageStore(roomAPI)

	roomAPI.On("GetRoomMessages", mock.Anything, "r1").
		Return(history(models.Message{ID: "m1"}, models.Message{ID: "m2"}), nil).Once()

	got, err := s.LoadHistory(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "m1", got.UserRoomConfig.LastReadMessageID)

	msgs, ok := s.Read("r1")
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m1", msgs[0].ID)
	roomAPI.AssertExpectations(t)
}

func TestLoadHistoryEmptyRoomIsPresent(t *testing.T) {
	roomAPI := new(mocks.RoomAPIMock)
	s := NewMessageStore(roomAPI)

	roomAPI.On("GetRoomMessages", mock.Anything, "r1").Return(history(), nil).Once()

	_, err := s.LoadHistory(context.Background(), "r1")
	require.NoError(t, err)

	msgs, ok := s.Read("r1")
	assert.True(t, ok)
	assert.Empty(t, msgs)
}

func TestLoadHistoryOverwritesPriorCache(t *testing.T) {
	roomAPI := new(mocks.RoomAPIMock)
	s := NewMessageStore(roomAPI)

	roomAPI.On("GetRoomMessages", mock.Anything, "r1").
		Return(history(models.Message{ID: "m1"}), nil).Once()
	_, err := s.LoadHistory(context.Background(), "r1")
	require.NoError(t, err)

	s.ApplyInsert("r1", models.Message{ID: "m0"})

	// A repeated load is a full overwrite, discarding prior live inserts.
	roomAPI.On("GetRoomMessages", mock.Anything, "r1").
		Return(history(models.Message{ID: "m2"}, models.Message{ID: "m1"}), nil).Once()
	_, err = s.LoadHistory(context.Background(), "r1")
	require.NoError(t, err)

	msgs, ok := s.Read("r1")
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m2", msgs[0].ID)
}

func TestLoadHistoryFailureLeavesCacheUntouched(t *testing.T) {
	roomAPI := new(mocks.RoomAPIMock)
	s := NewMessageStore(roomAPI)

	roomAPI.On("GetRoomMessages", mock.Anything, "r1").
		Return(history(models.Message{ID: "m1"}), nil).Once()
	_, err := s.LoadHistory(context.Background(), "r1")
	require.NoError(t, err)

	roomAPI.On("GetRoomMessages", mock.Anything, "r1").
		Return(models.RoomHistory{}, assert.AnError).Once()
	_, err = s.LoadHistory(context.Background(), "r1")
	require.Error(t, err)

	msgs, ok := s.Read("r1")
	require.True(t, ok)
	require.Len(t, msgs, 1)
	assert.Equal(t, "m1", msgs[0].ID)
}

func TestApplyInsertPrepends(t *testing.T) {
	roomAPI := new(mocks.RoomAPIMock)
	s := NewMessageStore(roomAPI)

	roomAPI.On("GetRoomMessages", mock.Anything, "r1").
		Return(history(
			models.Message{ID: "m1"},
			models.Message{ID: "m2"},
			models.Message{ID: "m3"},
		), nil).Once()
	_, err := s.LoadHistory(context.Background(), "r1")
	require.NoError(t, err)

	s.ApplyInsert("r1", models.Message{ID: "m0"})

	msgs, ok := s.Read("r1")
	require.True(t, ok)
	require.Len(t, msgs, 4)
	assert.Equal(t, []string{"m0", "m1", "m2", "m3"}, ids(msgs))
}

func TestApplyDeleteRemovesByID(t *testing.T) {
	roomAPI := new(mocks.RoomAPIMock)
	s := NewMessageStore(roomAPI)

	roomAPI.On("GetRoomMessages", mock.Anything, "r1").
		Return(history(
			models.Message{ID: "m0"},
			models.Message{ID: "m1"},
			models.Message{ID: "m2"},
			models.Message{ID: "m3"},
		), nil).Once()
	_, err := s.LoadHistory(context.Background(), "r1")
	require.NoError(t, err)

	assert.True(t, s.ApplyDelete("r1", "m2"))

	msgs, _ := s.Read("r1")
	assert.Equal(t, []string{"m0", "m1", "m3"}, ids(msgs))

	// Deleting a nonexistent id is a no-op.
	assert.False(t, s.ApplyDelete("r1", "m9"))
	msgs, _ = s.Read("r1")
	assert.Equal(t, []string{"m0", "m1", "m3"}, ids(msgs))
}

func TestApplyEditReplacesBodyOnly(t *testing.T) {
	roomAPI := new(mocks.RoomAPIMock)
	s := NewMessageStore(roomAPI)

	roomAPI.On("GetRoomMessages", mock.Anything, "r1").
		Return(history(
			models.Message{ID: "m0", Body: "zero"},
			models.Message{ID: "m1", Body: "one", AuthorID: "u1"},
			models.Message{ID: "m2", Body: "two"},
		), nil).Once()
	_, err := s.LoadHistory(context.Background(), "r1")
	require.NoError(t, err)

	updated, found := s.ApplyEdit("r1", "m1", "new body")
	require.True(t, found)
	assert.Equal(t, "new body", updated.Body)
	assert.Equal(t, "u1", updated.AuthorID)

	msgs, _ := s.Read("r1")
	assert.Equal(t, []string{"m0", "m1", "m2"}, ids(msgs))
	assert.Equal(t, "zero", msgs[0].Body)
	assert.Equal(t, "new body", msgs[1].Body)
	assert.Equal(t, "two", msgs[2].Body)

	_, found = s.ApplyEdit("r1", "m9", "whatever")
	assert.False(t, found)
}

func TestReadReturnsSnapshot(t *testing.T) {
	roomAPI := new(mocks.RoomAPIMock)
	s := NewMessageStore(roomAPI)

	roomAPI.On("GetRoomMessages", mock.Anything, "r1").
		Return(history(models.Message{ID: "m1", Body: "one"}), nil).Once()
	_, err := s.LoadHistory(context.Background(), "r1")
	require.NoError(t, err)

	msgs, _ := s.Read("r1")
	msgs[0].Body = "tampered"

	fresh, _ := s.Read("r1")
	assert.Equal(t, "one", fresh[0].Body)
}

func ids(msgs []models.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.ID)
	}
	return out
}
