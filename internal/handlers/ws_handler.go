package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/auth"
	"github.com/DuongTranDang1004/SEPM/internal/notify"
)

// WSHandler upgrades /ws connections and plugs them into the hub.
// Clients authenticate with ?token=<jwt> because browsers cannot set
// headers on websocket upgrades.
type WSHandler struct {
	hub    *notify.Hub
	tokens *auth.Manager
	log    *zap.SugaredLogger
}

func NewWSHandler(hub *notify.Hub, tokens *auth.Manager, log *zap.SugaredLogger) *WSHandler {
	return &WSHandler{hub: hub, tokens: tokens, log: log}
}

func (h *WSHandler) Register(r fiber.Router) {
	r.Use("/ws", h.Upgrade)
	r.Get("/ws", websocket.New(h.Serve))
}

func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *WSHandler) Serve(conn *websocket.Conn) {
	defer conn.Close()
	claims, err := h.tokens.VerifyToken(conn.Query("token"))
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
		return
	}

	client := h.hub.Register(claims.UserID)
	defer h.hub.Unregister(client)

	go h.hub.WritePump(client, conn)

	// events flow server to client only; the read loop just detects the
	// close and discards anything sent upstream
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
