// Package realtime relays chat and support messages between connected
// clients. A room is the set of live connections for one user ID; delivery
// into a room is at-most-once and non-durable. The persisted record written
// before each push is the durability mechanism: clients that were offline
// recover by re-fetching their message list.
package realtime

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/anusasana/portal/internal/dto"
	"github.com/anusasana/portal/internal/entity"
	"github.com/anusasana/portal/internal/service"
	"github.com/redis/go-redis/v9"
)

const channelPrefix = "user_messages:"

// Event is the JSON envelope on the websocket, both directions.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type joinInput struct {
	UserID string `json:"userId"`
}

type messageInput struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Text       string `json:"text"`
}

type supportInput struct {
	UserID string `json:"userId"`
	Text   string `json:"text"`
}

type newMessagePayload struct {
	SenderID  string    `json:"senderId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type supportResponsePayload struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type registration struct {
	client *Client
	userID string
}

type delivery struct {
	userID  string
	payload []byte
}

type Hub struct {
	rooms map[string]map[*Client]struct{}

	register   chan registration
	unregister chan *Client
	deliver    chan delivery

	messages   service.MessageService
	support    service.SupportService
	rdb        *redis.Client
	replyDelay time.Duration
}

func NewHub(messages service.MessageService, support service.SupportService, rdb *redis.Client, replyDelay time.Duration) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan registration),
		unregister: make(chan *Client),
		deliver:    make(chan delivery, 64),
		messages:   messages,
		support:    support,
		rdb:        rdb,
		replyDelay: replyDelay,
	}
}

// Run owns the room table. Joins, disconnects and deliveries are serialized
// here, so the map needs no lock.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribe(ctx)
	}

	for {
		select {
		case reg := <-h.register:
			// A connection belongs to at most one room.
			h.removeClient(reg.client)
			reg.client.userID = reg.userID
			if h.rooms[reg.userID] == nil {
				h.rooms[reg.userID] = make(map[*Client]struct{})
			}
			h.rooms[reg.userID][reg.client] = struct{}{}

		case c := <-h.unregister:
			h.removeClient(c)
			c.closeSend()

		case d := <-h.deliver:
			// enqueue drops for slow consumers rather than block the hub.
			for c := range h.rooms[d.userID] {
				c.enqueue(d.payload)
			}

		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) removeClient(c *Client) {
	if c.userID == "" {
		return
	}
	if room, ok := h.rooms[c.userID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, c.userID)
		}
	}
}

// Join places the connection in the room for userID. The claimed ID is
// trusted as-is; it is never verified against the session token, matching
// the lack of authorization on the REST routes.
func (h *Hub) Join(c *Client, userID string) {
	if userID == "" {
		return
	}
	h.register <- registration{client: c, userID: userID}
}

// RelayMessage persists the message, then pushes a newMessage event to the
// receiver's room. With redis configured the push goes through pub/sub so
// every instance holding a room for the receiver delivers it.
func (h *Hub) RelayMessage(ctx context.Context, senderID, receiverID, text string) (*entity.Message, error) {
	msg, err := h.messages.Send(ctx, dto.CreateMessageInput{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
	})
	if err != nil {
		return nil, err
	}

	payload, err := marshalEvent("newMessage", newMessagePayload{
		SenderID:  msg.SenderID,
		Text:      msg.Text,
		Timestamp: msg.Timestamp,
	})
	if err != nil {
		return msg, err
	}

	if h.rdb != nil {
		if err := h.rdb.Publish(ctx, channelPrefix+receiverID, payload).Err(); err != nil {
			log.Printf("failed to publish message for %s: %v", receiverID, err)
		}
		return msg, nil
	}

	h.push(receiverID, payload)
	return msg, nil
}

// RelaySupportMessage persists the inbound message, then after the configured
// delay persists and pushes exactly one canned bot reply back to the same
// connection.
func (h *Hub) RelaySupportMessage(ctx context.Context, c *Client, userID, text string) error {
	if _, err := h.support.Append(ctx, userID, text, true); err != nil {
		return err
	}

	go func() {
		time.Sleep(h.replyDelay)

		respText := h.support.PickResponse()
		resp, err := h.support.Append(context.Background(), userID, respText, false)
		if err != nil {
			log.Printf("failed to persist support response for %s: %v", userID, err)
			return
		}

		payload, err := marshalEvent("supportResponse", supportResponsePayload{
			Text:      resp.Text,
			Timestamp: resp.Timestamp,
		})
		if err != nil {
			return
		}
		c.enqueue(payload)
	}()

	return nil
}

// subscribe forwards redis-published messages into the local rooms.
func (h *Hub) subscribe(ctx context.Context) {
	pubsub := h.rdb.PSubscribe(ctx, channelPrefix+"*")
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			userID := strings.TrimPrefix(msg.Channel, channelPrefix)
			h.push(userID, []byte(msg.Payload))
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) push(userID string, payload []byte) {
	h.deliver <- delivery{userID: userID, payload: payload}
}

func marshalEvent(name string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Event: name, Data: raw})
}
