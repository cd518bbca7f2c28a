package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	v1 "github.com/lumina-home/lumina-console/api/v1"
)

const (
	watchBuffer       = 32
	watchPongWait     = 60 * time.Second
	watchPingInterval = 30 * time.Second
	watchWriteWait    = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	// the console API is served on the operator's own network
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ListHosts returns the host directory
// (GET /hosts)
func (h *Handler) ListHosts(c *gin.Context) {
	var resp v1.HostList
	resp.FromModel(h.directory.List())
	c.JSON(http.StatusOK, resp)
}

// GetHost returns one host with its plugins and configuration
// (GET /hosts/:id)
func (h *Handler) GetHost(c *gin.Context, id string) {
	rec, ok := h.directory.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, v1.Error{Error: "host " + id + " not found"})
		return
	}

	var resp v1.Host
	resp.FromModel(rec)
	c.JSON(http.StatusOK, resp)
}

// WatchHosts streams directory updates over a websocket
// (GET /hosts/watch)
func (h *Handler) WatchHosts(c *gin.Context) {
	logger := zap.S().Named("watch")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnw("websocket upgrade failed", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	updates, unsubscribe := h.directory.Subscribe(watchBuffer)
	defer unsubscribe()

	logger.Debugw("directory watcher connected", "remote", c.Request.RemoteAddr)

	_ = conn.SetReadDeadline(time.Now().Add(watchPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(watchPongWait))
	})

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Debugw("websocket read failed", "error", err)
				}
				return
			}
		}
	}()

	ping := time.NewTicker(watchPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(watchWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case update, ok := <-updates:
			if !ok {
				return
			}
			var msg v1.HostUpdate
			msg.FromModel(update)

			_ = conn.SetWriteDeadline(time.Now().Add(watchWriteWait))
			if err := conn.WriteJSON(msg); err != nil {
				logger.Debugw("failed to send host update", "error", err)
				return
			}
		}
	}
}
