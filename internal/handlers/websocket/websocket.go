// internal/handlers/websocket_handler.go
package handlers

import (
	"net/http"
	"strings"
	"time"

	"crm-service/internal/domain/identity"
	"crm-service/internal/pkg/response"
	ws "crm-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: Implement proper origin checking for production
		// For now, allow all origins
		return true
	},
}

type WebSocketHandler struct {
	hub    *ws.Hub
	logger *zap.Logger
}

func NewWebSocketHandler(hub *ws.Hub, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		logger: logger,
	}
}

// HandleConnection upgrades the request and binds the connection to the
// caller's partition. Guests connect without a token and land on the
// shared public partition; a bad token degrades to guest the same way the
// HTTP middleware does.
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	id := identity.Guest()
	jti := ""

	if token := h.extractToken(c); token != "" {
		authID, authJTI, err := h.hub.Authenticate(c.Request.Context(), token)
		if err != nil {
			h.logger.Warn("websocket token rejected, continuing as guest",
				zap.Error(err),
				zap.String("ip", c.ClientIP()),
			)
		} else {
			id = authID
			jti = authJTI
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		return
	}

	client := ws.NewClient(h.hub, conn, id, jti)
	h.hub.Register <- client

	h.logger.Info("WebSocket client connected",
		zap.String("partition", client.Partition()),
		zap.String("mode", string(id.Mode)),
	)

	go client.WritePump()
	go client.ReadPump()
}

// extractToken extracts token from query param or Authorization header
func (h *WebSocketHandler) extractToken(c *gin.Context) string {
	// Try query parameter first (common for WebSocket)
	token := c.Query("token")
	if token != "" {
		return token
	}

	// Fallback to Authorization header
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	return ""
}

// GetStats returns WebSocket connection statistics (admin only)
func (h *WebSocketHandler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"total_connections": h.hub.TotalClients(),
		"timestamp":         time.Now(),
	}

	response.Success(c, http.StatusOK, "WebSocket stats", stats)
}
