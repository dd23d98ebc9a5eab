package service

import (
	"context"
	"encoding/json"

	"flix-n-chill-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// RoomBroadcaster delivers a frame to every live connection of a room.
// Implemented by the websocket Hub.
type RoomBroadcaster interface {
	BroadcastToRoom(roomID uuid.UUID, data []byte)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// chatFanoutService drains the chat message topic and hands each
// persisted frame to the Hub. Running it as a single consumer preserves
// the topic's FIFO order, so subscribers observe messages in persistence
// order.
type chatFanoutService struct {
	subscriber message.Subscriber
	hub        RoomBroadcaster
	logger     logger.ILogger
}

func NewChatFanoutService(subscriber message.Subscriber, hub RoomBroadcaster, log logger.ILogger) IConsumerService {
	return &chatFanoutService{
		subscriber: subscriber,
		hub:        hub,
		logger:     log,
	}
}

func (s *chatFanoutService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, ChatMessageTopic)
	if err != nil {
		return err
	}

	s.logger.Info("ChatFanout", "Listening for persisted chat messages", nil)

	for msg := range messages {
		var payload chatBroadcast
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			s.logger.Error("ChatFanout", "Dropping malformed broadcast payload", map[string]interface{}{
				"error": err.Error(),
			})
			msg.Ack()
			continue
		}

		s.hub.BroadcastToRoom(payload.RoomId, payload.Frame)
		msg.Ack()
	}

	return nil
}
