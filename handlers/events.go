package handlers

import (
	"net/http"

	"vita-server/logger"
	"vita-server/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Event is the envelope pushed to connected clients.
type Event struct {
	Event string      `json:"event"` // level_up | badge_unlocked | group_notice
	Data  interface{} `json:"data,omitempty"`
}

// EventsHandler owns the realtime push channel. It also implements the
// usecases.Notifier interface.
type EventsHandler struct {
	mgr *ws.Manager
	log *logger.Logger
}

func NewEventsHandler(mgr *ws.Manager, log *logger.Logger) *EventsHandler {
	return &EventsHandler{mgr: mgr, log: log}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleWS upgrades to websocket and keeps the connection registered
// until the client goes away. GET /ws?username=<name>
func (h *EventsHandler) HandleWS(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing username"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	h.mgr.Register(username, conn)
	h.log.Debug("client connected", "username", username)

	defer func() {
		h.mgr.Unregister(username)
		h.log.Debug("client disconnected", "username", username)
	}()

	// The push channel is one-way; drain client frames until close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket read ended", "username", username, "error", err)
			}
			return
		}
	}
}

// NotifyLevelUp pushes a single celebration event. Best effort; an offline
// user simply misses it.
func (h *EventsHandler) NotifyLevelUp(username string, level int) {
	err := h.mgr.SendToUser(username, Event{
		Event: "level_up",
		Data:  gin.H{"level": level},
	})
	if err != nil {
		h.log.Debug("level up event not delivered", "username", username)
	}
}

// GetConnectedUsers GET /api/v1/users/connected
func (h *EventsHandler) GetConnectedUsers(c *gin.Context) {
	users := h.mgr.List()
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}
