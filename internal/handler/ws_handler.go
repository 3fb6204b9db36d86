package handler

import (
	"log"
	"net/http"

	"github.com/anusasana/portal/internal/realtime"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for now
			},
		},
	}
}

// Handle upgrades the connection and starts its pumps. The connection is
// roomless until it sends a join event.
func (h *WSHandler) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket: %v", err)
		return
	}

	client := realtime.NewClient(h.hub, conn)
	go client.WritePump()
	// Block in the read loop so the request context stays live for the
	// connection's lifetime.
	client.ReadPump(c.Request.Context())
}
