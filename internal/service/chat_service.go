package service

import (
	"context"
	"encoding/json"
	"time"

	"flix-n-chill-be/internal/dto"
	"flix-n-chill-be/internal/entity"
	"flix-n-chill-be/internal/mapper"
	"flix-n-chill-be/internal/pkg/logger"
	"flix-n-chill-be/internal/repository/contract"
	"flix-n-chill-be/pkg/events"
	pktNats "flix-n-chill-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// ChatMessageTopic is the in-process topic carrying persisted messages
// from the service to the fan-out consumer. FIFO delivery on this topic
// is what keeps persist happens-before broadcast per message.
const ChatMessageTopic = "CHAT_MESSAGE_CREATED"

// chatBroadcast is the topic payload: the target room plus the exact
// frame every subscriber receives.
type chatBroadcast struct {
	RoomId uuid.UUID       `json:"room_id"`
	Frame  json.RawMessage `json:"frame"`
}

type IChatService interface {
	// GetOrCreateRoom resolves the 1:1 room between the principal and a
	// peer, creating it lazily on first contact. Fails with ErrSelfChat
	// when both ids are equal.
	GetOrCreateRoom(ctx context.Context, userID, participantID uuid.UUID) (*dto.RoomResponse, bool, error)

	ListRooms(ctx context.Context, userID uuid.UUID) ([]dto.RoomResponse, error)

	// FindLatestRoomFor returns the principal's most recently updated
	// room, with an explicit null room when none exists.
	FindLatestRoomFor(ctx context.Context, userID uuid.UUID) (*dto.LatestRoomResponse, error)

	// AuthorizeRoom checks the room exists and the user is one of its
	// two participants. Used by the transport gateway before upgrade.
	AuthorizeRoom(ctx context.Context, roomID, userID uuid.UUID) (*entity.ChatRoom, error)

	// RoomHistory returns the bounded message history, oldest-first.
	RoomHistory(ctx context.Context, roomID uuid.UUID) ([]dto.MessageResponse, error)

	// SaveMessage persists a message and, only after the row exists,
	// publishes it for fan-out. A persistence failure publishes nothing.
	SaveMessage(ctx context.Context, roomID, senderID uuid.UUID, content string) (*dto.MessageResponse, error)
}

type chatService struct {
	rooms        contract.ChatRoomRepository
	messages     contract.MessageRepository
	users        contract.UserRepository
	publisher    message.Publisher
	natsPub      *pktNats.Publisher
	logger       logger.ILogger
	historyLimit int
}

func NewChatService(
	rooms contract.ChatRoomRepository,
	messages contract.MessageRepository,
	users contract.UserRepository,
	publisher message.Publisher,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
	historyLimit int,
) IChatService {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &chatService{
		rooms:        rooms,
		messages:     messages,
		users:        users,
		publisher:    publisher,
		natsPub:      natsPub,
		logger:       log,
		historyLimit: historyLimit,
	}
}

func (s *chatService) GetOrCreateRoom(ctx context.Context, userID, participantID uuid.UUID) (*dto.RoomResponse, bool, error) {
	if userID == participantID {
		return nil, false, ErrSelfChat
	}

	peer, err := s.users.FindById(ctx, participantID)
	if err != nil {
		return nil, false, err
	}
	if peer == nil {
		return nil, false, ErrUserNotFound
	}

	room, created, err := s.rooms.GetOrCreate(ctx, userID, participantID)
	if err != nil {
		return nil, false, err
	}

	if created {
		s.publishIntegrationEvent("CHAT_ROOM_CREATED", map[string]interface{}{
			"room_id":        room.Id.String(),
			"participant_a":  room.ParticipantAId.String(),
			"participant_b":  room.ParticipantBId.String(),
			"initiated_by":   userID.String(),
		})
	}

	res, err := s.roomResponse(ctx, room, userID)
	if err != nil {
		return nil, false, err
	}
	return res, created, nil
}

func (s *chatService) ListRooms(ctx context.Context, userID uuid.UUID) ([]dto.RoomResponse, error) {
	rooms, err := s.rooms.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		res, err := s.roomResponse(ctx, room, userID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *res)
	}
	return responses, nil
}

func (s *chatService) FindLatestRoomFor(ctx context.Context, userID uuid.UUID) (*dto.LatestRoomResponse, error) {
	room, err := s.rooms.FindLatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return &dto.LatestRoomResponse{Room: nil}, nil
	}

	res, err := s.roomResponse(ctx, room, userID)
	if err != nil {
		return nil, err
	}
	return &dto.LatestRoomResponse{Room: res}, nil
}

func (s *chatService) AuthorizeRoom(ctx context.Context, roomID, userID uuid.UUID) (*entity.ChatRoom, error) {
	room, err := s.rooms.FindById(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	if !room.IsParticipant(userID) {
		return nil, ErrNotParticipant
	}
	return room, nil
}

func (s *chatService) RoomHistory(ctx context.Context, roomID uuid.UUID) ([]dto.MessageResponse, error) {
	messages, err := s.messages.FindRecentByRoom(ctx, roomID, s.historyLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MessageResponse, len(messages))
	for i, msg := range messages {
		responses[i] = messageResponse(msg)
	}
	return responses, nil
}

func (s *chatService) SaveMessage(ctx context.Context, roomID, senderID uuid.UUID, content string) (*dto.MessageResponse, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	// The sender-participant invariant is enforced here, at write time,
	// not by storage.
	room, err := s.AuthorizeRoom(ctx, roomID, senderID)
	if err != nil {
		return nil, err
	}

	msg := &entity.Message{
		RoomId:   room.Id,
		SenderId: senderID,
		Content:  content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		s.logger.Error("ChatService", "Failed to persist message", map[string]interface{}{
			"room_id": roomID,
			"error":   err.Error(),
		})
		return nil, err
	}

	if err := s.rooms.Touch(ctx, room.Id); err != nil {
		s.logger.Warn("ChatService", "Failed to bump room updated_at", map[string]interface{}{
			"room_id": roomID,
			"error":   err.Error(),
		})
	}

	res := messageResponse(msg)
	if err := s.publishBroadcast(room.Id, res); err != nil {
		// The row exists; subscribers just miss the live push. Surfaced
		// to the sender so the client can refetch.
		return nil, err
	}

	s.publishIntegrationEvent("CHAT_MESSAGE_CREATED", map[string]interface{}{
		"room_id":    room.Id.String(),
		"message_id": msg.Id.String(),
		"sender_id":  senderID.String(),
	})

	return &res, nil
}

func (s *chatService) publishBroadcast(roomID uuid.UUID, res dto.MessageResponse) error {
	frame, err := json.Marshal(dto.MessageFrame{Type: "chat_message", Message: res})
	if err != nil {
		return err
	}
	payload, err := json.Marshal(chatBroadcast{RoomId: roomID, Frame: frame})
	if err != nil {
		return err
	}
	return s.publisher.Publish(ChatMessageTopic, message.NewMessage(watermill.NewUUID(), payload))
}

// publishIntegrationEvent notifies collaborating services over NATS.
// Fire-and-forget: chat keeps working when the bus is down.
func (s *chatService) publishIntegrationEvent(eventType string, data map[string]interface{}) {
	if s.natsPub == nil {
		return
	}
	evt := events.BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.natsPub.Publish(ctx, evt); err != nil {
		s.logger.Warn("ChatService", "Failed to publish integration event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func (s *chatService) roomResponse(ctx context.Context, room *entity.ChatRoom, viewerID uuid.UUID) (*dto.RoomResponse, error) {
	last, err := s.messages.FindLatestByRoom(ctx, room.Id)
	if err != nil {
		return nil, err
	}

	res := &dto.RoomResponse{
		Id:               room.Id,
		OtherParticipant: mapper.UserToChatProfile(room.OtherParticipant(viewerID)),
		CreatedAt:        room.CreatedAt,
		UpdatedAt:        room.UpdatedAt,
	}
	if last != nil {
		lastRes := messageResponse(last)
		res.LastMessage = &lastRes
	}
	return res, nil
}

func messageResponse(msg *entity.Message) dto.MessageResponse {
	sender := mapper.UserToChatProfile(msg.Sender)
	if msg.Sender == nil {
		sender.Id = msg.SenderId
	}
	return dto.MessageResponse{
		Id:        msg.Id,
		Content:   msg.Content,
		Sender:    sender,
		Timestamp: msg.Timestamp,
		IsRead:    msg.IsRead,
	}
}
