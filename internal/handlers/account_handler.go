package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/middleware"
	"github.com/DuongTranDang1004/SEPM/internal/services"
)

type AccountHandler struct {
	accounts *services.AccountService
	log      *zap.SugaredLogger
}

func NewAccountHandler(accounts *services.AccountService, log *zap.SugaredLogger) *AccountHandler {
	return &AccountHandler{accounts: accounts, log: log}
}

func (h *AccountHandler) Register(r fiber.Router) {
	r.Put("/account/password", h.ChangePassword)
	r.Post("/account/deactivate", h.Deactivate)
	r.Post("/account/activate", h.Activate)
}

func (h *AccountHandler) ChangePassword(c *fiber.Ctx) error {
	var body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	err := h.accounts.ChangePassword(c.Context(), middleware.UserID(c),
		body.CurrentPassword, body.NewPassword, body.ConfirmPassword)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.Map{"status": "password changed"})
}

func (h *AccountHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.accounts.Deactivate(c.Context(), middleware.UserID(c)); err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.Map{"status": "deactivated"})
}

func (h *AccountHandler) Activate(c *fiber.Ctx) error {
	if err := h.accounts.Activate(c.Context(), middleware.UserID(c)); err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.Map{"status": "activated"})
}
