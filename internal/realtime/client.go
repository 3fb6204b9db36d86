package realtime

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 16
)

// Client is one websocket connection. Joining binds it to a room; until then
// it can send but receives nothing.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	userID string

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

// enqueue hands a payload to the write pump, dropping it if the connection is
// gone or the buffer is full.
func (c *Client) enqueue(payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// ReadPump consumes inbound events until the connection drops. It runs on the
// connection's own goroutine; room membership changes only from here and from
// the hub loop.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read error: %v", err)
			}
			return
		}

		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			continue
		}

		c.dispatch(ctx, ev)
	}
}

func (c *Client) dispatch(ctx context.Context, ev Event) {
	switch ev.Event {
	case "join":
		var in joinInput
		if err := json.Unmarshal(ev.Data, &in); err != nil {
			return
		}
		c.hub.Join(c, in.UserID)

	case "message":
		var in messageInput
		if err := json.Unmarshal(ev.Data, &in); err != nil {
			return
		}
		if _, err := c.hub.RelayMessage(ctx, in.SenderID, in.ReceiverID, in.Text); err != nil {
			log.Printf("message relay error: %v", err)
		}

	case "supportMessage":
		var in supportInput
		if err := json.Unmarshal(ev.Data, &in); err != nil {
			return
		}
		if err := c.hub.RelaySupportMessage(ctx, c, in.UserID, in.Text); err != nil {
			log.Printf("support relay error: %v", err)
		}
	}
}

// WritePump pushes queued payloads and keepalive pings to the peer.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
