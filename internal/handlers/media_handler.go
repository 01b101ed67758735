package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/storage"
)

// MediaHandler exchanges stored media URLs for readable ones. With a
// publicly readable bucket the stored URL already works and is returned
// as-is; otherwise the store signs it for a limited time.
type MediaHandler struct {
	signer     storage.Signer
	ttl        time.Duration
	publicRead bool
	log        *zap.SugaredLogger
}

func NewMediaHandler(signer storage.Signer, ttl time.Duration, publicRead bool, log *zap.SugaredLogger) *MediaHandler {
	return &MediaHandler{signer: signer, ttl: ttl, publicRead: publicRead, log: log}
}

func (h *MediaHandler) Register(r fiber.Router) {
	r.Get("/media/signed-url", h.SignedURL)
}

func (h *MediaHandler) SignedURL(c *fiber.Ctx) error {
	raw := c.Query("url")
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "url is required"})
	}
	if h.publicRead {
		return ok(c, fiber.Map{"url": raw})
	}
	signed, err := h.signer.SignURL(c.Context(), raw, h.ttl)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.Map{"url": signed, "expiresInSeconds": int(h.ttl.Seconds())})
}
