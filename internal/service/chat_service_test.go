package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"flix-n-chill-be/internal/dto"
	"flix-n-chill-be/internal/entity"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test doubles ---

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		repo.users[u.Id] = u
	}
	return repo
}

func (r *fakeUserRepo) FindById(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

type fakeRoomRepo struct {
	users *fakeUserRepo
	rooms map[[2]uuid.UUID]*entity.ChatRoom
}

func newFakeRoomRepo(users *fakeUserRepo) *fakeRoomRepo {
	return &fakeRoomRepo{users: users, rooms: make(map[[2]uuid.UUID]*entity.ChatRoom)}
}

func pairKey(a, b uuid.UUID) [2]uuid.UUID {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return [2]uuid.UUID{a, b}
}

func (r *fakeRoomRepo) GetOrCreate(_ context.Context, userA, userB uuid.UUID) (*entity.ChatRoom, bool, error) {
	key := pairKey(userA, userB)
	if room, ok := r.rooms[key]; ok {
		return room, false, nil
	}
	now := time.Now()
	room := &entity.ChatRoom{
		Id:             uuid.New(),
		ParticipantAId: key[0],
		ParticipantBId: key[1],
		ParticipantA:   r.users.users[key[0]],
		ParticipantB:   r.users.users[key[1]],
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.rooms[key] = room
	return room, true, nil
}

func (r *fakeRoomRepo) FindById(_ context.Context, id uuid.UUID) (*entity.ChatRoom, error) {
	for _, room := range r.rooms {
		if room.Id == id {
			return room, nil
		}
	}
	return nil, nil
}

func (r *fakeRoomRepo) FindLatestByUser(_ context.Context, userID uuid.UUID) (*entity.ChatRoom, error) {
	var latest *entity.ChatRoom
	for _, room := range r.rooms {
		if !room.IsParticipant(userID) {
			continue
		}
		if latest == nil || room.UpdatedAt.After(latest.UpdatedAt) {
			latest = room
		}
	}
	return latest, nil
}

func (r *fakeRoomRepo) FindAllByUser(_ context.Context, userID uuid.UUID) ([]*entity.ChatRoom, error) {
	var found []*entity.ChatRoom
	for _, room := range r.rooms {
		if room.IsParticipant(userID) {
			found = append(found, room)
		}
	}
	return found, nil
}

func (r *fakeRoomRepo) Touch(_ context.Context, id uuid.UUID) error {
	for _, room := range r.rooms {
		if room.Id == id {
			room.UpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}

type fakeMessageRepo struct {
	messages   []*entity.Message
	failCreate error
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *entity.Message) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	msg.Id = uuid.New()
	msg.Timestamp = time.Now()
	r.messages = append(r.messages, msg)
	return nil
}

func (r *fakeMessageRepo) FindRecentByRoom(_ context.Context, roomID uuid.UUID, limit int) ([]*entity.Message, error) {
	var inRoom []*entity.Message
	for _, msg := range r.messages {
		if msg.RoomId == roomID {
			inRoom = append(inRoom, msg)
		}
	}
	if len(inRoom) > limit {
		inRoom = inRoom[len(inRoom)-limit:]
	}
	return inRoom, nil
}

func (r *fakeMessageRepo) FindLatestByRoom(_ context.Context, roomID uuid.UUID) (*entity.Message, error) {
	var latest *entity.Message
	for _, msg := range r.messages {
		if msg.RoomId == roomID {
			latest = msg
		}
	}
	return latest, nil
}

func (r *fakeMessageRepo) CountByRoom(_ context.Context, roomID uuid.UUID) (int64, error) {
	var count int64
	for _, msg := range r.messages {
		if msg.RoomId == roomID {
			count++
		}
	}
	return count, nil
}

type capturedPublish struct {
	topic   string
	payload []byte
}

type fakePublisher struct {
	published []capturedPublish
}

func (p *fakePublisher) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		p.published = append(p.published, capturedPublish{topic: topic, payload: msg.Payload})
	}
	return nil
}

func (p *fakePublisher) Close() error { return nil }

// --- Fixtures ---

func testUser(username string) *entity.User {
	return &entity.User{Id: uuid.New(), Username: username, Email: username + "@example.com"}
}

func newChatFixture(t *testing.T, users ...*entity.User) (IChatService, *fakeRoomRepo, *fakeMessageRepo, *fakePublisher) {
	t.Helper()
	userRepo := newFakeUserRepo(users...)
	roomRepo := newFakeRoomRepo(userRepo)
	msgRepo := &fakeMessageRepo{}
	pub := &fakePublisher{}
	svc := NewChatService(roomRepo, msgRepo, userRepo, pub, nil, noopLogger{}, 50)
	return svc, roomRepo, msgRepo, pub
}

// --- Tests ---

func TestGetOrCreateRoom(t *testing.T) {
	ctx := context.Background()
	alice := testUser("alice")
	bob := testUser("bob")

	t.Run("creates once and is order-insensitive", func(t *testing.T) {
		svc, _, _, _ := newChatFixture(t, alice, bob)

		first, created, err := svc.GetOrCreateRoom(ctx, alice.Id, bob.Id)
		require.NoError(t, err)
		assert.True(t, created)

		second, created, err := svc.GetOrCreateRoom(ctx, bob.Id, alice.Id)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.Id, second.Id)
	})

	t.Run("shows the peer from the caller's perspective", func(t *testing.T) {
		svc, _, _, _ := newChatFixture(t, alice, bob)

		room, _, err := svc.GetOrCreateRoom(ctx, alice.Id, bob.Id)
		require.NoError(t, err)
		assert.Equal(t, bob.Id, room.OtherParticipant.Id)

		room, _, err = svc.GetOrCreateRoom(ctx, bob.Id, alice.Id)
		require.NoError(t, err)
		assert.Equal(t, alice.Id, room.OtherParticipant.Id)
	})

	t.Run("rejects self-chat", func(t *testing.T) {
		svc, _, _, _ := newChatFixture(t, alice)

		_, _, err := svc.GetOrCreateRoom(ctx, alice.Id, alice.Id)
		assert.ErrorIs(t, err, ErrSelfChat)
	})

	t.Run("rejects unknown peer", func(t *testing.T) {
		svc, _, _, _ := newChatFixture(t, alice)

		_, _, err := svc.GetOrCreateRoom(ctx, alice.Id, uuid.New())
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAuthorizeRoom(t *testing.T) {
	ctx := context.Background()
	alice := testUser("alice")
	bob := testUser("bob")
	mallory := testUser("mallory")

	svc, _, _, _ := newChatFixture(t, alice, bob, mallory)
	room, _, err := svc.GetOrCreateRoom(ctx, alice.Id, bob.Id)
	require.NoError(t, err)

	_, err = svc.AuthorizeRoom(ctx, room.Id, alice.Id)
	assert.NoError(t, err)

	_, err = svc.AuthorizeRoom(ctx, room.Id, mallory.Id)
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = svc.AuthorizeRoom(ctx, uuid.New(), alice.Id)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestSaveMessage(t *testing.T) {
	ctx := context.Background()
	alice := testUser("alice")
	bob := testUser("bob")
	mallory := testUser("mallory")

	t.Run("persists then publishes the broadcast frame", func(t *testing.T) {
		svc, roomRepo, msgRepo, pub := newChatFixture(t, alice, bob)
		room, _, err := svc.GetOrCreateRoom(ctx, alice.Id, bob.Id)
		require.NoError(t, err)
		roomBefore, err := roomRepo.FindById(ctx, room.Id)
		require.NoError(t, err)
		updatedBefore := roomBefore.UpdatedAt

		res, err := svc.SaveMessage(ctx, room.Id, alice.Id, "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", res.Content)
		assert.Equal(t, alice.Id, res.Sender.Id)
		assert.Len(t, msgRepo.messages, 1)

		require.Len(t, pub.published, 1)
		assert.Equal(t, ChatMessageTopic, pub.published[0].topic)

		var broadcast chatBroadcast
		require.NoError(t, json.Unmarshal(pub.published[0].payload, &broadcast))
		assert.Equal(t, room.Id, broadcast.RoomId)

		var frame dto.MessageFrame
		require.NoError(t, json.Unmarshal(broadcast.Frame, &frame))
		assert.Equal(t, "chat_message", frame.Type)
		assert.Equal(t, res.Id, frame.Message.Id)

		roomAfter, err := roomRepo.FindById(ctx, room.Id)
		require.NoError(t, err)
		assert.False(t, roomAfter.UpdatedAt.Before(updatedBefore))
	})

	t.Run("rejects empty content without persisting", func(t *testing.T) {
		svc, _, msgRepo, pub := newChatFixture(t, alice, bob)
		room, _, err := svc.GetOrCreateRoom(ctx, alice.Id, bob.Id)
		require.NoError(t, err)

		_, err = svc.SaveMessage(ctx, room.Id, alice.Id, "")
		assert.ErrorIs(t, err, ErrEmptyContent)
		assert.Empty(t, msgRepo.messages)
		assert.Empty(t, pub.published)
	})

	t.Run("rejects non-participant senders", func(t *testing.T) {
		svc, _, msgRepo, pub := newChatFixture(t, alice, bob, mallory)
		room, _, err := svc.GetOrCreateRoom(ctx, alice.Id, bob.Id)
		require.NoError(t, err)

		_, err = svc.SaveMessage(ctx, room.Id, mallory.Id, "hi")
		assert.ErrorIs(t, err, ErrNotParticipant)
		assert.Empty(t, msgRepo.messages)
		assert.Empty(t, pub.published)
	})

	t.Run("publishes nothing when persistence fails", func(t *testing.T) {
		svc, _, msgRepo, pub := newChatFixture(t, alice, bob)
		room, _, err := svc.GetOrCreateRoom(ctx, alice.Id, bob.Id)
		require.NoError(t, err)

		msgRepo.failCreate = errors.New("disk full")
		_, err = svc.SaveMessage(ctx, room.Id, alice.Id, "hello")
		assert.Error(t, err)
		assert.Empty(t, pub.published)
	})
}

func TestFindLatestRoomFor(t *testing.T) {
	ctx := context.Background()
	alice := testUser("alice")
	bob := testUser("bob")
	carol := testUser("carol")

	t.Run("explicit null room when the user has none", func(t *testing.T) {
		svc, _, _, _ := newChatFixture(t, alice)

		res, err := svc.FindLatestRoomFor(ctx, alice.Id)
		require.NoError(t, err)
		assert.Nil(t, res.Room)
	})

	t.Run("returns the most recently active room", func(t *testing.T) {
		svc, roomRepo, _, _ := newChatFixture(t, alice, bob, carol)

		older, _, err := svc.GetOrCreateRoom(ctx, alice.Id, bob.Id)
		require.NoError(t, err)
		newer, _, err := svc.GetOrCreateRoom(ctx, alice.Id, carol.Id)
		require.NoError(t, err)

		// Activity in the older room makes it the latest again.
		roomBefore, err := roomRepo.FindById(ctx, newer.Id)
		require.NoError(t, err)
		roomBefore.UpdatedAt = time.Now().Add(-time.Hour)

		_, err = svc.SaveMessage(ctx, older.Id, alice.Id, "ping")
		require.NoError(t, err)

		res, err := svc.FindLatestRoomFor(ctx, alice.Id)
		require.NoError(t, err)
		require.NotNil(t, res.Room)
		assert.Equal(t, older.Id, res.Room.Id)
		require.NotNil(t, res.Room.LastMessage)
		assert.Equal(t, "ping", res.Room.LastMessage.Content)
	})
}

func TestRoomHistory(t *testing.T) {
	ctx := context.Background()
	alice := testUser("alice")
	bob := testUser("bob")

	t.Run("oldest-first and bounded", func(t *testing.T) {
		userRepo := newFakeUserRepo(alice, bob)
		roomRepo := newFakeRoomRepo(userRepo)
		msgRepo := &fakeMessageRepo{}
		svc := NewChatService(roomRepo, msgRepo, userRepo, &fakePublisher{}, nil, noopLogger{}, 3)

		room, _, err := svc.GetOrCreateRoom(ctx, alice.Id, bob.Id)
		require.NoError(t, err)

		for _, content := range []string{"one", "two", "three", "four", "five"} {
			_, err := svc.SaveMessage(ctx, room.Id, alice.Id, content)
			require.NoError(t, err)
		}

		history, err := svc.RoomHistory(ctx, room.Id)
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.Equal(t, "three", history[0].Content)
		assert.Equal(t, "four", history[1].Content)
		assert.Equal(t, "five", history[2].Content)
	})

	t.Run("empty room yields empty history", func(t *testing.T) {
		svc, _, _, _ := newChatFixture(t, alice, bob)
		room, _, err := svc.GetOrCreateRoom(ctx, alice.Id, bob.Id)
		require.NoError(t, err)

		history, err := svc.RoomHistory(ctx, room.Id)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}

func TestListRooms(t *testing.T) {
	ctx := context.Background()
	alice := testUser("alice")
	bob := testUser("bob")
	carol := testUser("carol")

	svc, _, _, _ := newChatFixture(t, alice, bob, carol)

	_, _, err := svc.GetOrCreateRoom(ctx, alice.Id, bob.Id)
	require.NoError(t, err)
	_, _, err = svc.GetOrCreateRoom(ctx, alice.Id, carol.Id)
	require.NoError(t, err)
	_, _, err = svc.GetOrCreateRoom(ctx, bob.Id, carol.Id)
	require.NoError(t, err)

	rooms, err := svc.ListRooms(ctx, alice.Id)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)
	for _, room := range rooms {
		assert.NotEqual(t, alice.Id, room.OtherParticipant.Id)
	}
}
