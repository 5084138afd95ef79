package websocket

import (
	"context"
	"log"
	"sync"

	"github.com/anjiri1684/tutoring_center/models"
	"github.com/google/uuid"
)

const EventMessage = "message"

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Client struct {
	UserID uuid.UUID
	Conn   Conn
}

type MessagePayload struct {
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
}

// Event is the frame pushed to a client.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type ParticipantLookup interface {
	ConversationParticipants(ctx context.Context, conversationID uuid.UUID) ([]uuid.UUID, error)
}

type direct struct {
	userID uuid.UUID
	event  Event
}

// Hub owns every live connection and is the only writer to them.
type Hub struct {
	participants ParticipantLookup

	register   chan *Client
	unregister chan *Client
	broadcast  chan *models.Message
	direct     chan direct

	mu      sync.RWMutex
	clients map[uuid.UUID]Conn
}

func NewHub(participants ParticipantLookup) *Hub {
	return &Hub{
		participants: participants,
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		broadcast:    make(chan *models.Message, 64),
		direct:       make(chan direct, 256),
		clients:      make(map[uuid.UUID]Conn),
	}
}

func (h *Hub) Register(c *Client)   { h.register <- c }
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

// Broadcast delivers a chat message to the other participants of its conversation.
func (h *Hub) Broadcast(m *models.Message) { h.broadcast <- m }

// SendToUser queues an event for one user. Events for users without a live
// connection are dropped, as are events that arrive while the queue is full.
func (h *Hub) SendToUser(userID uuid.UUID, eventType string, payload interface{}) {
	select {
	case h.direct <- direct{userID: userID, event: Event{Type: eventType, Payload: payload}}:
	default:
		log.Printf("WebSocket queue full, dropping %s event for %s", eventType, userID)
	}
}

func (h *Hub) Connected(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			log.Printf("Client registered: %s", client.UserID)
			h.mu.Lock()
			if old, ok := h.clients[client.UserID]; ok && old != client.Conn {
				old.Close()
			}
			h.clients[client.UserID] = client.Conn
			h.mu.Unlock()
		case client := <-h.unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			h.mu.Lock()
			if conn, ok := h.clients[client.UserID]; ok && conn == client.Conn {
				delete(h.clients, client.UserID)
			}
			h.mu.Unlock()
		case d := <-h.direct:
			h.write(d.userID, d.event)
		case message := <-h.broadcast:
			participantIDs, err := h.participants.ConversationParticipants(ctx, message.ConversationID)
			if err != nil {
				log.Printf("Error fetching participant IDs for conversation %s: %v", message.ConversationID, err)
				continue
			}
			for _, participantID := range participantIDs {
				if participantID == message.SenderID {
					continue
				}
				h.write(participantID, Event{Type: EventMessage, Payload: message})
			}
		}
	}
}

func (h *Hub) write(userID uuid.UUID, event Event) {
	h.mu.RLock()
	conn, ok := h.clients[userID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	if err := conn.WriteJSON(event); err != nil {
		log.Printf("Error sending %s to client %s: %v", event.Type, userID, err)
		conn.Close()
		h.mu.Lock()
		if current, ok := h.clients[userID]; ok && current == conn {
			delete(h.clients, userID)
		}
		h.mu.Unlock()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.clients {
		conn.Close()
		delete(h.clients, id)
	}
}
