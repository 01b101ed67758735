package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/services"
)

type RoomHandler struct {
	rooms *services.RoomService
	log   *zap.SugaredLogger
}

func NewRoomHandler(rooms *services.RoomService, log *zap.SugaredLogger) *RoomHandler {
	return &RoomHandler{rooms: rooms, log: log}
}

func (h *RoomHandler) Register(r fiber.Router) {
	r.Get("/rooms", h.List)
	r.Get("/rooms/:roomId", h.Get)
}

func (h *RoomHandler) List(c *fiber.Ctx) error {
	rooms, err := h.rooms.ListPublished(c.Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, rooms)
}

func (h *RoomHandler) Get(c *fiber.Ctx) error {
	room, err := h.rooms.Get(c.Context(), c.Params("roomId"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, room)
}
