package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"flix-n-chill-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisChannel = "chat_events"

// Hub owns the room fan-out registry: room id -> set of live
// connections. Entries are created on first join and removed when the
// last member leaves. With Redis available, frames are bridged to other
// instances; the origin id keeps an instance from re-delivering its own
// publishes.
type Hub struct {
	rooms map[uuid.UUID]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb        *redis.Client
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.RoomID] == nil {
				h.rooms[client.RoomID] = make(map[*Client]bool)
			}
			h.rooms[client.RoomID][client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Client joined room", map[string]interface{}{
				"room_id": client.RoomID,
				"user_id": client.UserID,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if members, ok := h.rooms[client.RoomID]; ok {
				if members[client] {
					delete(members, client)
					close(client.Send)
				}
				if len(members) == 0 {
					delete(h.rooms, client.RoomID)
				}
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client left room", map[string]interface{}{
				"room_id": client.RoomID,
				"user_id": client.UserID,
			})
		}
	}
}

// BroadcastToRoom delivers a frame to every connection registered in the
// room, including the sender's own connections. Delivery is best-effort
// per peer: a full or closed peer is dropped without aborting the rest.
func (h *Hub) BroadcastToRoom(roomID uuid.UUID, data []byte) {
	h.deliverLocal(roomID, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(redisEnvelope{
			Origin: h.instanceID,
			RoomID: roomID.String(),
			Frame:  data,
		})
		h.rdb.Publish(context.Background(), redisChannel, payload)
	}
}

func (h *Hub) deliverLocal(roomID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[roomID] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{
				"room_id": roomID,
				"user_id": client.UserID,
			})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

// RoomSize reports the number of live connections in a room.
func (h *Hub) RoomSize(roomID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

type redisEnvelope struct {
	Origin string          `json:"origin"`
	RoomID string          `json:"room_id"`
	Frame  json.RawMessage `json:"frame"`
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var envelope redisEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			h.logger.Warn("Hub", "Malformed cross-instance frame", map[string]interface{}{"error": err.Error()})
			continue
		}

		// Local clients already got this frame via BroadcastToRoom.
		if envelope.Origin == h.instanceID {
			continue
		}

		roomID, err := uuid.Parse(envelope.RoomID)
		if err != nil {
			continue
		}
		h.deliverLocal(roomID, envelope.Frame)
	}
}
