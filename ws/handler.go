package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"hela9_backend/internal/logger"
	"hela9_backend/internal/middleware"
	"hela9_backend/pkg/apperrors"
)

type WebSocketHandler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler принимает список разрешенных Origin; пустой список
// пропускает только запросы без Origin или с тем же хостом.
func NewWebSocketHandler(hub *Hub, allowedOrigins []string) *WebSocketHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowed[origin] {
					return true
				}
				return origin == "http://"+r.Host || origin == "https://"+r.Host
			},
		},
	}
}

func (h *WebSocketHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/ws", middleware.RequireAuth(), h.ServeWS)
}

// ServeWS подключает вошедшего пользователя к hub.
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Login required"))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "WebSocket upgrade failed", err)
		return
	}

	client := &Client{
		hub:    h.hub,
		userID: userID,
		conn:   conn,
		send:   make(chan Message, sendBuffer),
	}
	if !h.hub.add(client) {
		_ = conn.Close()
		return
	}
	logger.CtxInfo(c.Request.Context(), "WebSocket client connected")

	go client.writePump()
	go client.readPump()
}
