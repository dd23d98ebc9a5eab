package dto

import (
	"time"

	"github.com/google/uuid"
)

// ChatProfile is the public slice of a user carried on chat payloads.
type ChatProfile struct {
	Id              uuid.UUID `json:"id"`
	Nickname        string    `json:"nickname"`
	ProfileImageURL *string   `json:"profile_image_url"`
}

type MessageResponse struct {
	Id        uuid.UUID   `json:"id"`
	Content   string      `json:"content"`
	Sender    ChatProfile `json:"sender"`
	Timestamp time.Time   `json:"timestamp"`
	IsRead    bool        `json:"is_read"`
}

// InboundFrame is the client-to-server websocket payload. Unknown types
// are ignored.
type InboundFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// HistoryFrame is pushed once, immediately after a connection turns
// active, ordered oldest-first.
type HistoryFrame struct {
	Type     string            `json:"type"` // "message_history"
	Messages []MessageResponse `json:"messages"`
}

// MessageFrame carries one persisted message to every room subscriber.
type MessageFrame struct {
	Type    string          `json:"type"` // "chat_message"
	Message MessageResponse `json:"message"`
}

// ErrorFrame is a connection-local failure indication; it is never
// broadcast.
type ErrorFrame struct {
	Type  string `json:"type"` // "error"
	Error string `json:"error"`
}

type CreateRoomRequest struct {
	ParticipantId uuid.UUID `json:"participant_id" validate:"required"`
}

type RoomResponse struct {
	Id               uuid.UUID        `json:"id"`
	OtherParticipant ChatProfile      `json:"other_participant"`
	LastMessage      *MessageResponse `json:"last_message,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// LatestRoomResponse reports the most recently updated room, with an
// explicit null room when the user has none.
type LatestRoomResponse struct {
	Room *RoomResponse `json:"room"`
}
