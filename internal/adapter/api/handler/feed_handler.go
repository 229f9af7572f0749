package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	ws "sunstone/internal/infrastructure/websocket"
	"sunstone/pkg/errors"
)

// FeedHandler upgrades browsers onto the live comment/reply feed. The feed
// is read-only and visible to anonymous viewers, so no auth is required;
// each connection gets its own id.
type FeedHandler struct {
	wsManager *ws.Manager
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // restricted by the CORS layer in front
	},
}

func NewFeedHandler(wsManager *ws.Manager) *FeedHandler {
	return &FeedHandler{
		wsManager: wsManager,
	}
}

func (h *FeedHandler) HandleFeed(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := ws.NewClient(uuid.New().String(), conn)

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
