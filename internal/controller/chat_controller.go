package controller

import (
	"errors"

	"flix-n-chill-be/internal/dto"
	"flix-n-chill-be/internal/pkg/serverutils"
	"flix-n-chill-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateRoom(ctx *fiber.Ctx) error
	ListRooms(ctx *fiber.Ctx) error
	LatestRoom(ctx *fiber.Ctx) error
	RoomMessages(ctx *fiber.Ctx) error
}

type chatController struct {
	service  service.IChatService
	validate *validator.Validate
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{
		service:  service,
		validate: validator.New(),
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/rooms", c.CreateRoom)
	h.Get("/rooms", c.ListRooms)
	h.Get("/rooms/latest", c.LatestRoom)
	h.Get("/rooms/:id/messages", c.RoomMessages)
}

func (c *chatController) CreateRoom(ctx *fiber.Ctx) error {
	userID, ok := serverutils.PrincipalID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "unauthorized"))
	}

	var req dto.CreateRoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "participant_id is required"))
	}

	room, created, err := c.service.GetOrCreateRoom(ctx.Context(), userID, req.ParticipantId)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfChat):
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, service.ErrSelfChat.Error()))
		case errors.Is(err, service.ErrUserNotFound):
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, service.ErrUserNotFound.Error()))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "internal server error"))
		}
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return ctx.Status(status).JSON(serverutils.SuccessResponse(status, "ok", room))
}

func (c *chatController) ListRooms(ctx *fiber.Ctx) error {
	userID, ok := serverutils.PrincipalID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "unauthorized"))
	}

	rooms, err := c.service.ListRooms(ctx.Context(), userID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "internal server error"))
	}
	return ctx.JSON(serverutils.SuccessResponse(200, "ok", rooms))
}

func (c *chatController) LatestRoom(ctx *fiber.Ctx) error {
	userID, ok := serverutils.PrincipalID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "unauthorized"))
	}

	res, err := c.service.FindLatestRoomFor(ctx.Context(), userID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "internal server error"))
	}
	return ctx.JSON(serverutils.SuccessResponse(200, "ok", res))
}

func (c *chatController) RoomMessages(ctx *fiber.Ctx) error {
	userID, ok := serverutils.PrincipalID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "unauthorized"))
	}

	roomID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid room id"))
	}

	if _, err := c.service.AuthorizeRoom(ctx.Context(), roomID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrRoomNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "room not found"))
		case errors.Is(err, service.ErrNotParticipant):
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "not a participant of this room"))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "internal server error"))
		}
	}

	messages, err := c.service.RoomHistory(ctx.Context(), roomID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "internal server error"))
	}
	return ctx.JSON(serverutils.SuccessResponse(200, "ok", messages))
}
