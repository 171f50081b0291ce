package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yourusername/vidfetch-go/internal/domain"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// ProgressWebSocketHandler streams download lifecycle events to
// connected clients. A client may filter to one job with ?job_id=.
type ProgressWebSocketHandler struct {
	logger  *zap.Logger
	mu      sync.RWMutex
	clients map[*wsClient]bool
}

type wsClient struct {
	conn  *websocket.Conn
	jobID string
	send  chan domain.ProgressEvent
}

// NewProgressWebSocketHandler creates a new WebSocket handler
func NewProgressWebSocketHandler(logger *zap.Logger) *ProgressWebSocketHandler {
	return &ProgressWebSocketHandler{
		logger:  logger,
		clients: make(map[*wsClient]bool),
	}
}

// Broadcast delivers one pipeline event to every interested client.
// Slow clients are dropped rather than blocking the pipeline.
func (h *ProgressWebSocketHandler) Broadcast(event domain.ProgressEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if client.jobID != "" && client.jobID != event.JobID {
			continue
		}
		select {
		case client.send <- event:
		default:
			h.logger.Warn("dropping slow websocket client",
				zap.String("job_id", client.jobID))
		}
	}
}

// HandleWebSocket handles GET /ws/progress
func (h *ProgressWebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade WebSocket", zap.Error(err))
		return
	}
	defer conn.Close()

	client := &wsClient{
		conn:  conn,
		jobID: c.Query("job_id"),
		send:  make(chan domain.ProgressEvent, 64),
	}

	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, client)
		h.mu.Unlock()
	}()

	h.logger.Info("WebSocket client connected",
		zap.String("job_id", client.jobID),
		zap.String("remote_addr", c.Request.RemoteAddr))

	// read loop detects client disconnects
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event := <-client.send:
			if err := conn.WriteJSON(event); err != nil {
				h.logger.Debug("WebSocket write failed", zap.Error(err))
				return
			}
		case <-done:
			return
		}
	}
}
