package websocket

import (
	"context"
	"encoding/json"
	"time"

	"flix-n-chill-be/internal/dto"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// MessageStore persists inbound chat messages and serves the bounded
// history batch. Implemented by the chat service; persistence must
// complete before any broadcast happens.
type MessageStore interface {
	SaveMessage(ctx context.Context, roomID, senderID uuid.UUID, content string) (*dto.MessageResponse, error)
	RoomHistory(ctx context.Context, roomID uuid.UUID) ([]dto.MessageResponse, error)
}

// Client is one authenticated connection bound to exactly one room.
type Client struct {
	Hub *Hub

	Conn *websocket.Conn

	UserID uuid.UUID
	RoomID uuid.UUID

	// Buffered channel of outbound frames.
	Send chan []byte

	store MessageStore
}

// joinRoom enters the room's fan-out group, then snapshots the history
// batch. Registration comes first: a message persisted while the
// snapshot is read is already flowing to the Send channel, so the
// client can receive a message twice but never miss one.
func (c *Client) joinRoom() {
	c.Hub.register <- c

	history, err := c.store.RoomHistory(context.Background(), c.RoomID)
	if err != nil {
		c.sendError("failed to load history")
		return
	}
	frame, err := json.Marshal(dto.HistoryFrame{Type: "message_history", Messages: history})
	if err != nil {
		c.sendError("failed to load history")
		return
	}
	c.Send <- frame
}

// readPump drains inbound frames until the connection closes. Well-formed
// chat messages are persisted through the store; everything else is
// answered locally or ignored, never persisted, never broadcast.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var frame dto.InboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.sendError("malformed payload")
			continue
		}

		// Unknown frame types are ignored.
		if frame.Type != "chat_message" {
			continue
		}
		if frame.Message == "" {
			c.sendError("message must not be empty")
			continue
		}

		// Persist first; the fan-out consumer broadcasts only rows that
		// durably exist. On failure the originator alone hears about it.
		if _, err := c.store.SaveMessage(context.Background(), c.RoomID, c.UserID, frame.Message); err != nil {
			c.sendError("failed to send message")
		}
	}
}

// sendError queues a connection-local error frame. Best-effort: a full
// buffer drops the frame rather than blocking the read loop.
func (c *Client) sendError(reason string) {
	data, _ := json.Marshal(dto.ErrorFrame{Type: "error", Error: reason})
	select {
	case c.Send <- data:
	default:
	}
}

// writePump pushes queued frames to the peer and keeps the connection
// alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
