package ws

import (
	"net/http"

	"codepair/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced by the router middleware
	},
}

// Handler upgrades HTTP requests to websocket connections
type Handler struct {
	hub      *Hub
	sessions *service.SessionService
	logger   *zap.Logger
}

// NewHandler creates a new websocket handler
func NewHandler(hub *Hub, sessions *service.SessionService, logger *zap.Logger) *Handler {
	return &Handler{
		hub:      hub,
		sessions: sessions,
		logger:   logger,
	}
}

// ServeWS handles GET /ws
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	connID := uuid.NewString()
	client := &Client{
		id:      connID,
		hub:     h.hub,
		conn:    wsConn,
		send:    make(chan []byte, sendBufferSize),
		session: h.sessions.NewConn(connID),
		logger:  h.logger,
	}

	h.hub.register(client)
	h.logger.Info("client connected", zap.String("conn", connID))

	go client.writePump()
	go client.readPump()
}
