package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/middleware"
	"github.com/DuongTranDang1004/SEPM/internal/services"
)

type ConversationHandler struct {
	convs *services.ConversationService
	log   *zap.SugaredLogger
}

func NewConversationHandler(convs *services.ConversationService, log *zap.SugaredLogger) *ConversationHandler {
	return &ConversationHandler{convs: convs, log: log}
}

func (h *ConversationHandler) Register(r fiber.Router) {
	r.Get("/conversations", h.List)
	r.Get("/conversations/:convId/messages", h.ListMessages)
	r.Post("/conversations/:convId/messages", h.SendMessage)
}

func (h *ConversationHandler) List(c *fiber.Ctx) error {
	convs, err := h.convs.ListConversations(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, convs)
}

func (h *ConversationHandler) ListMessages(c *fiber.Ctx) error {
	limit := int64(c.QueryInt("limit"))
	msgs, err := h.convs.ListMessages(c.Context(), middleware.UserID(c), c.Params("convId"), limit)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, msgs)
}

func (h *ConversationHandler) SendMessage(c *fiber.Ctx) error {
	content := c.FormValue("content")
	if content == "" {
		var body struct {
			Content string `json:"content"`
		}
		if err := c.BodyParser(&body); err == nil {
			content = body.Content
		}
	}
	attachments, err := formFiles(c, "attachments")
	if err != nil {
		return fail(c, h.log, err)
	}
	msg, err := h.convs.SendMessage(c.Context(), middleware.UserID(c), c.Params("convId"), content, attachments)
	if err != nil {
		return fail(c, h.log, err)
	}
	return created(c, msg)
}
