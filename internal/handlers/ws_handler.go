package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/wavely/backend/internal/realtime"
	"github.com/anonto42/wavely/backend/internal/repositories"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// WebSocketHandler upgrades authenticated clients to a realtime channel and
// keeps the presence registry in sync with the connection lifecycle.
type WebSocketHandler struct {
	hub                *realtime.Hub
	presenceRepository repositories.PresenceRepository
	log                zerolog.Logger
	upgrader           websocket.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *realtime.Hub, presenceRepo repositories.PresenceRepository, log zerolog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:                hub,
		presenceRepository: presenceRepo,
		log:                log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// RegisterWebSocketRoutes registers the realtime connection route
func (h *WebSocketHandler) RegisterWebSocketRoutes(g *echo.Group) {
	g.GET("/ws", h.Connect)
}

// Connect upgrades the request and blocks until the client disconnects.
// The presence entry exists exactly as long as the socket is open; a
// reconnect upserts the same user with the new socket id.
func (h *WebSocketHandler) Connect(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	socketID := h.hub.Register(conn)
	if err := h.presenceRepository.Upsert(c.Request().Context(), currentUserID, socketID); err != nil {
		h.log.Error().Err(err).Uint("user_id", currentUserID).Msg("failed to record presence")
	}

	// Clients never send application data; the read loop just watches for
	// the close frame.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	if err := h.presenceRepository.Remove(context.Background(), socketID); err != nil {
		h.log.Error().Err(err).Str("socket_id", socketID).Msg("failed to clear presence")
	}
	h.hub.Unregister(socketID)
	return nil
}
