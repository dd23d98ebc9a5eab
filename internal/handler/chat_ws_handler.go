package handler

import (
	"errors"

	"flix-n-chill-be/internal/pkg/logger"
	"flix-n-chill-be/internal/pkg/serverutils"
	"flix-n-chill-be/internal/service"
	internalWS "flix-n-chill-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ChatWsHandler is the transport gateway: it is the only place the
// bearer credential of a websocket connection is resolved. The hub and
// client trust the principal attached here.
type ChatWsHandler struct {
	service service.IChatService
	hub     *internalWS.Hub
	logger  logger.ILogger
}

func NewChatWsHandler(service service.IChatService, hub *internalWS.Hub, log logger.ILogger) *ChatWsHandler {
	return &ChatWsHandler{
		service: service,
		hub:     hub,
		logger:  log,
	}
}

// ServeWs authenticates and authorizes the connection, then hands it to
// the room's fan-out group. Rejections close the connection attempt
// before any group membership or persistence happens.
func (h *ChatWsHandler) ServeWs(c *fiber.Ctx) error {
	// Gate on the upgrade before any credential or storage work.
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	roomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid room id"))
	}

	// Token from query param (browser standard) with header fallback.
	// No credential resolves to the anonymous principal, which is
	// rejected below — never granted a group membership.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "missing token"))
	}

	userID, err := serverutils.ResolveToken(tokenStr)
	if err != nil {
		h.logger.Warn("ChatWsHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid token"))
	}

	if _, err := h.service.AuthorizeRoom(c.Context(), roomID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrRoomNotFound):
			return c.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "room not found"))
		case errors.Is(err, service.ErrNotParticipant):
			return c.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "not a participant of this room"))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "internal server error"))
		}
	}

	// History is read after the connection joins the fan-out group, not
	// here: a snapshot taken before membership would miss anything
	// persisted during the handshake.
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("ChatWsHandler", "WebSocket session started", map[string]interface{}{
			"room_id": roomID,
			"user_id": userID,
		})
		internalWS.ServeWs(h.hub, conn, userID, roomID, h.service)
		h.logger.Info("ChatWsHandler", "WebSocket session ended", map[string]interface{}{
			"room_id": roomID,
			"user_id": userID,
		})
	})(c)
}

// RegisterRoutes mounts the websocket entry point.
func (h *ChatWsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/chat/rooms/:id/ws", h.ServeWs)
}
