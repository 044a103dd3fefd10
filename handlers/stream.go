package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/kit/log/level"
	"github.com/gorilla/websocket"
)

const writeWait = 2 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 8192,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Stream pushes the latest frame to a websocket client whenever a new one
// has been published, at most once per stream interval. Slow clients skip
// frames instead of queueing them.
func (h *Handler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		level.Warn(h.logger).Log("msg", "websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	remote := c.ClientIP()
	level.Debug(h.logger).Log("msg", "stream opened", "remote", remote)

	// Inbound messages are ignored; reading only detects the close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.streamInterval)
	defer ticker.Stop()

	var last uint64
	for {
		select {
		case <-done:
			level.Debug(h.logger).Log("msg", "stream closed", "remote", remote)
			return
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
			f := h.engine.Frame()
			if f == nil || f.Seq == last {
				continue
			}
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				level.Debug(h.logger).Log("msg", "stream deadline failed", "remote", remote, "err", err)
				return
			}
			if err := conn.WriteJSON(f); err != nil {
				level.Debug(h.logger).Log("msg", "stream write failed", "remote", remote, "err", err)
				return
			}
			last = f.Seq
		}
	}
}
