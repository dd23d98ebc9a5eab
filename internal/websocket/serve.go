package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs binds an authorized connection to its room: register in the
// fan-out group, snapshot and queue the history batch, then run the
// pumps. Returns when the connection closes; the deferred unregister in
// readPump releases the group membership.
func ServeWs(hub *Hub, conn *websocket.Conn, userID, roomID uuid.UUID, store MessageStore) {
	client := &Client{
		Hub:    hub,
		Conn:   conn,
		UserID: userID,
		RoomID: roomID,
		Send:   make(chan []byte, 256),
		store:  store,
	}
	client.joinRoom()

	go client.writePump()
	client.readPump()
}
